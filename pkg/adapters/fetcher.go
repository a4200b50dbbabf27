package adapters

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/gemini-fitting-kit/pkg/domain"
	"github.com/shouni/gemini-fitting-kit/pkg/imgutil"
)

const cacheKeyGarment = "garment_image:"

// 転送前のJPEG再圧縮の設定です。
const (
	useImageCompression     = true
	imageCompressionQuality = imgutil.DefaultJPEGQuality
)

// GarmentFetcher はガーメントの画像ロケーターを ImageRef に解決します。
// http(s) は httpkit 経由、gs:// は remoteio 経由で取得し、結果をキャッシュします。
type GarmentFetcher struct {
	reader     remoteio.InputReader
	httpClient httpkit.ClientInterface
	cache      ImageCacher
	expiration time.Duration
}

// NewGarmentFetcher は依存関係を注入して GarmentFetcher を初期化します。
func NewGarmentFetcher(reader remoteio.InputReader, httpClient httpkit.ClientInterface, cache ImageCacher, cacheTTL time.Duration) (*GarmentFetcher, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	return &GarmentFetcher{
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		expiration: cacheTTL,
	}, nil
}

// Resolve は locator の画像を取得し、MIME タイプ付きの ImageRef を返します。
// 取得した画像が圧縮対象の場合は JPEG に再圧縮してから返します。
func (f *GarmentFetcher) Resolve(ctx context.Context, locator string) (domain.ImageRef, error) {
	cacheKey := cacheKeyGarment + locator
	if f.cache != nil {
		if val, ok := f.cache.Get(cacheKey); ok {
			if ref, ok := val.(domain.ImageRef); ok {
				return ref, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "locator", locator, "type", fmt.Sprintf("%T", val))
		}
	}

	data, err := f.fetch(ctx, locator)
	if err != nil {
		return domain.ImageRef{}, err
	}

	if useImageCompression {
		if compressed, err := imgutil.CompressToJPEG(data, imageCompressionQuality); err == nil {
			data = compressed
		}
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.ImageRef{}, fmt.Errorf("取得したデータが画像ではありません: %s", mimeType)
	}

	ref := domain.ImageRef{Data: data, MIMEType: mimeType}
	if f.cache != nil {
		f.cache.Set(cacheKey, ref, f.expiration)
	}
	return ref, nil
}

func (f *GarmentFetcher) fetch(ctx context.Context, locator string) ([]byte, error) {
	if strings.HasPrefix(locator, "gs://") {
		rc, err := f.reader.Open(ctx, locator)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := isSafeURL(locator); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return f.httpClient.FetchBytes(ctx, locator)
}

// isSafeURL は SSRF 対策として URL を検証します。
// 名前解決されたすべての IP アドレスに対してプライベート IP チェックを行います。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	host := parsedURL.Hostname()
	var ips []net.IP

	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		resolvedIPs, err := net.LookupIP(host)
		if err != nil {
			return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", host, err)
		}
		ips = resolvedIPs
	}

	if len(ips) == 0 {
		return false, fmt.Errorf("IPが見つかりません")
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
