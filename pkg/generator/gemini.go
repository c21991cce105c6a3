package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/prompt"

	"google.golang.org/genai"
)

// GeminiGenerator は、プロンプトからの生成(Generate)と
// アップスケール(Upscale)の両方を担当するジェネレーターです。
type GeminiGenerator struct {
	cfg      Config
	aiClient ImageModel
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
// API キーが空でも構築はでき、その場合は各リクエストが設定エラーになります。
func NewGeminiGenerator(cfg Config, aiClient ImageModel) (*GeminiGenerator, error) {
	if aiClient == nil && cfg.APIKey != "" {
		return nil, fmt.Errorf("aiClient (ImageModel) is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &GeminiGenerator{cfg: cfg, aiClient: aiClient}, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiGenerator) Model() string {
	return g.cfg.Model
}

// Generate はソース画像（あれば）と合成した指示文を順に並べて生成をリクエストします。
func (g *GeminiGenerator) Generate(ctx context.Context, userPrompt string, source *domain.SourceImage, style prompt.Style) (*domain.ImageResponse, error) {
	parts := make([]*genai.Part, 0, 2)
	if source != nil {
		parts = append(parts, toPart(source))
	}
	parts = append(parts, &genai.Part{Text: prompt.Compose(userPrompt, style)})

	slog.InfoContext(ctx, "画像生成をリクエストします",
		"model", g.cfg.Model, "style", string(style), "has_source", source != nil)
	return g.executeRequest(ctx, parts, generateMessages)
}

// Upscale は画像と固定のアップスケール指示を送ります。
func (g *GeminiGenerator) Upscale(ctx context.Context, source *domain.SourceImage) (*domain.ImageResponse, error) {
	if source == nil {
		return nil, fmt.Errorf("upscale requires a source image")
	}
	parts := []*genai.Part{
		toPart(source),
		{Text: prompt.UpscaleInstruction},
	}

	slog.InfoContext(ctx, "アップスケールをリクエストします", "model", g.cfg.Model, "bytes", source.Len())
	return g.executeRequest(ctx, parts, upscaleMessages)
}

func (g *GeminiGenerator) executeRequest(ctx context.Context, parts []*genai.Part, msgs failureMessages) (*domain.ImageResponse, error) {
	if strings.TrimSpace(g.cfg.APIKey) == "" || g.aiClient == nil {
		return nil, newError(KindConfiguration, ErrMissingAPIKey.Error()+".", nil)
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := g.aiClient.GenerateContent(ctx, g.cfg.Model, contents, g.requestConfig())
	if err != nil {
		slog.ErrorContext(ctx, "Gemini API エラー", "model", g.cfg.Model, "error", err)
		msg := err.Error()
		if msg == "" {
			msg = msgs.service
		}
		return nil, newError(KindService, msg, err)
	}

	out, err := parseToResponse(resp, msgs)
	if err != nil {
		slog.WarnContext(ctx, "画像を取得できませんでした", "model", g.cfg.Model, "error", err)
		return nil, err
	}
	return out, nil
}

// requestConfig は画像のみを返すよう指定した生成設定です。リトライは行いません。
func (g *GeminiGenerator) requestConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
		CandidateCount:     1,
		Temperature:        g.cfg.Temperature,
	}
}
