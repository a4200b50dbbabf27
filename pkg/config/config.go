// Package config は環境変数（および任意の .env ファイル）からキットの
// チューニング値を読み込みます。依存コンポーネント自体はコンストラクタ注入で、
// ここで扱うのはモデル名や上限値などの設定値のみです。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// 環境変数名の定義。
const (
	envRenderModel    = "FITTING_RENDER_MODEL"
	envAnalysisModel  = "FITTING_ANALYSIS_MODEL"
	envMaxUploadBytes = "FITTING_MAX_UPLOAD_BYTES"
	envCacheTTL       = "FITTING_CACHE_TTL"
)

// デフォルト値の定義。
const (
	DefaultRenderModel    = "gemini-2.5-flash-image-preview"
	DefaultAnalysisModel  = "gemini-2.5-flash"
	DefaultMaxUploadBytes = 10 << 20
	DefaultCacheTTL       = 30 * time.Minute
)

// Config はキット全体のチューニング値です。
type Config struct {
	RenderModel    string        // 着せ替えレンダリングに使う画像生成モデル
	AnalysisModel  string        // 分類・検証に使うテキストモデル
	MaxUploadBytes int64         // アップロード画像の上限バイト数
	CacheTTL       time.Duration // ガーメント画像キャッシュの有効期限
}

// Load は .env（存在する場合のみ）と環境変数から Config を構築します。
// 未設定の値にはデフォルトを適用します。
func Load() (*Config, error) {
	// .env はローカル開発用。無ければ環境変数のみで動作します。
	_ = godotenv.Load()

	cfg := &Config{
		RenderModel:    getEnv(envRenderModel, DefaultRenderModel),
		AnalysisModel:  getEnv(envAnalysisModel, DefaultAnalysisModel),
		MaxUploadBytes: DefaultMaxUploadBytes,
		CacheTTL:       DefaultCacheTTL,
	}

	if raw := os.Getenv(envMaxUploadBytes); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s の値が不正です: %q", envMaxUploadBytes, raw)
		}
		cfg.MaxUploadBytes = n
	}

	if raw := os.Getenv(envCacheTTL); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%s の値が不正です: %q", envCacheTTL, raw)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
