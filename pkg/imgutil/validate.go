package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
)

// アップロード画像の検証エラー。リモート呼び出しの前に検出され、
// 状態は一切変更されません。
var (
	ErrUnsupportedType = errors.New("サポートされていない画像形式です (PNG / JPEG / GIF のみ)")
	ErrTooLarge        = errors.New("画像サイズが上限を超えています")
	ErrBadAspectRatio  = errors.New("対応していないアスペクト比です")
)

// アップロード検証の既定値。
const (
	DefaultMaxUploadBytes = 10 << 20 // 10 MiB

	// 縦横比の許容範囲。極端に細長い画像は着せ替えの参照に使えません。
	minAspectRatio = 1.0 / 3.0
	maxAspectRatio = 3.0
)

// acceptedTypes は受け付ける MIME タイプの集合です。
var acceptedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
}

// ValidateUpload はユーザーがアップロードした画像を検証し、検出した MIME タイプを
// 返します。形式・サイズ・アスペクト比の順で検査し、最初の違反をエラーとして
// 返します。maxBytes が 0 以下の場合は DefaultMaxUploadBytes を使用します。
func ValidateUpload(data []byte, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	mimeType := http.DetectContentType(data)
	if _, ok := acceptedTypes[mimeType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes (上限 %d bytes)", ErrTooLarge, len(data), maxBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrBadAspectRatio
	}
	ratio := float64(cfg.Width) / float64(cfg.Height)
	if ratio < minAspectRatio || ratio > maxAspectRatio {
		return "", fmt.Errorf("%w: %d:%d", ErrBadAspectRatio, cfg.Width, cfg.Height)
	}

	return mimeType, nil
}
