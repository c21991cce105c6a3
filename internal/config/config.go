package config

import (
	"log/slog"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/asset"
	"github.com/shouni/gemini-image-studio/pkg/generator"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義
const (
	DefaultImageModel      = generator.DefaultModel
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultOutputDir       = "output"
	DefaultCanvasWidth     = 1024
	DefaultCacheExpiration = 30 * time.Minute
	DefaultCacheCleanup    = 1 * time.Hour
)

// Config はアプリケーション全体の環境設定を保持する構造体です。
type Config struct {
	GeminiAPIKey     string
	GeminiImageModel string
	OutputDir        string
	ProductName      string
	HTTPTimeout      time.Duration

	Options Options
}

// Options は CLI フラグから渡される実行時のパラメータです。
type Options struct {
	Prompt          string // --prompt
	Style           string // --style
	Image           string // --image: ローカル / gs:// / http(s)
	Script          string // --script: スケッチスクリプト
	OutputDir       string // --output-dir
	ImageModel      string // --image-model
	CanvasWidth     int    // --canvas-width
	CompressQuality int    // --compress-quality: 0 で無効
	Upscale         bool   // --upscale: 生成後に続けてアップスケール
	Verbose         bool   // --verbose
	HTTPTimeout     time.Duration
}

// LoadConfig は .env と環境変数から設定を読み込みます。
// .env が無い場合は環境変数のみを使います。
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env を読み込めなかったため環境変数のみを使用します", "error", err)
	}

	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		OutputDir:        envutil.GetEnv("STUDIO_OUTPUT_DIR", DefaultOutputDir),
		ProductName:      envutil.GetEnv("STUDIO_PRODUCT_NAME", asset.DefaultProductName),
		HTTPTimeout:      parseDuration(envutil.GetEnv("STUDIO_HTTP_TIMEOUT", ""), DefaultHTTPTimeout),
	}
}

// ApplyOptions は明示されたフラグで環境変数の値を上書きします。
func (c *Config) ApplyOptions(opts Options) {
	c.Options = opts
	if opts.ImageModel != "" {
		c.GeminiImageModel = opts.ImageModel
	}
	if opts.OutputDir != "" {
		c.OutputDir = opts.OutputDir
	}
	if opts.HTTPTimeout > 0 {
		c.HTTPTimeout = opts.HTTPTimeout
	}
	if c.Options.CanvasWidth <= 0 {
		c.Options.CanvasWidth = DefaultCanvasWidth
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		slog.Warn("不正な期間指定のため既定値を使います", "value", s, "default", fallback)
		return fallback
	}
	return d
}
