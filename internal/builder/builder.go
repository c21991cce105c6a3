package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-studio/internal/config"
	"github.com/shouni/gemini-image-studio/pkg/asset"
	"github.com/shouni/gemini-image-studio/pkg/canvas"
	"github.com/shouni/gemini-image-studio/pkg/generator"
	"github.com/shouni/gemini-image-studio/pkg/session"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"
)

// defaultGeminiTemperature は画像生成リクエストの温度です。
const defaultGeminiTemperature = float32(0.4)

// AppContext は、1回のコマンド実行に必要な共通コンポーネントを保持します。
type AppContext struct {
	Config     *config.Config
	Session    *session.Session
	Surface    *canvas.Surface
	Loader     *generator.SourceLoader
	Downloader *asset.Downloader
	Storage    *Storage
}

// NewAppContext は設定から各コンポーネントを組み立てます。
// 使い終わったら Close を呼んでください。
func NewAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	httpClient := httpkit.New(cfg.HTTPTimeout)
	storage := NewStorage()

	gen, err := InitializeImageGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(gen)
	if err != nil {
		return nil, err
	}

	surface, err := canvas.NewWideSurface(cfg.Options.CanvasWidth, sess.SetSourceImage)
	if err != nil {
		return nil, fmt.Errorf("キャンバスの初期化に失敗しました: %w", err)
	}
	sess.AttachSurface(surface)

	var loaderOpts []generator.LoaderOption
	if cfg.Options.CompressQuality > 0 {
		loaderOpts = append(loaderOpts, generator.WithCompression(cfg.Options.CompressQuality))
	}
	imgCache := cache.New(config.DefaultCacheExpiration, config.DefaultCacheCleanup)
	loader, err := generator.NewSourceLoader(storage, httpClient, imgCache, config.DefaultCacheExpiration, loaderOpts...)
	if err != nil {
		return nil, fmt.Errorf("SourceLoader の初期化に失敗しました: %w", err)
	}

	downloader, err := asset.NewDownloader(storage, cfg.OutputDir, cfg.ProductName)
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Config:     cfg,
		Session:    sess,
		Surface:    surface,
		Loader:     loader,
		Downloader: downloader,
		Storage:    storage,
	}, nil
}

// Close は作成済みのクライアントを解放します。
func (a *AppContext) Close() error {
	return a.Storage.Close()
}

// InitializeImageGenerator は GeminiGenerator を初期化します。
// API キーが無い場合はクライアントを作らず、生成時に設定エラーとして報告させます。
func InitializeImageGenerator(ctx context.Context, cfg *config.Config) (*generator.GeminiGenerator, error) {
	var aiClient generator.ImageModel
	if cfg.GeminiAPIKey != "" {
		c, err := InitializeAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		aiClient = c
	} else {
		slog.WarnContext(ctx, "GEMINI_API_KEY が設定されていません。生成リクエストは失敗します")
	}

	return generator.NewGeminiGenerator(generator.Config{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiImageModel,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}, aiClient)
}

// InitializeAIClient は Gemini API のクライアントを初期化し、generateContent の窓口を返します。
// 応答はそのまま GeminiGenerator に渡り、自動リトライも行いません。
func InitializeAIClient(ctx context.Context, apiKey string) (generator.ImageModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return client.Models, nil
}
