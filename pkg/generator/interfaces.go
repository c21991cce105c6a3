package generator

import (
	"context"
	"io"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/prompt"

	"google.golang.org/genai"
)

// ImageGenerator はセッション層が利用する画像生成の窓口です。
type ImageGenerator interface {
	// Generate はプロンプトと任意のソース画像から画像を生成します。
	Generate(ctx context.Context, userPrompt string, source *domain.SourceImage, style prompt.Style) (*domain.ImageResponse, error)
	// Upscale は画像の内容を変えずに解像度と鮮明さを高めます。
	Upscale(ctx context.Context, source *domain.SourceImage) (*domain.ImageResponse, error)
}

// ImageModel は Gemini の generateContent 呼び出しです。*genai.Models がこれを満たします。
// 応答は加工せずに返し、安全性ブロックや空応答の判定は呼び出し側で行います。
type ImageModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// SourceReader はローカルや GCS 上のファイルを開くためのインターフェースです。
// remoteio.InputReader はこれを満たします。
type SourceReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// HTTPClient は、URLからデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ImageCacher は、取得済みの画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}
