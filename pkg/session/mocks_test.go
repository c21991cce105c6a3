package session

import (
	"context"
	"sync"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/prompt"
)

type generateCall struct {
	prompt string
	source *domain.SourceImage
	style  prompt.Style
}

// mockGenerator は generator.ImageGenerator のテスト用モックなのだ。
type mockGenerator struct {
	mu            sync.Mutex
	generateCalls []generateCall
	upscaleCalls  []*domain.SourceImage

	// gate が設定されていると、閉じられるまで応答を返さないのだ
	gate    chan struct{}
	started chan struct{}

	result func(n int) (*domain.ImageResponse, error)
}

func (m *mockGenerator) wait() {
	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.gate != nil {
		<-m.gate
	}
}

func (m *mockGenerator) respond(n int) (*domain.ImageResponse, error) {
	if m.result != nil {
		return m.result(n)
	}
	return &domain.ImageResponse{Data: []byte{byte(n)}, MimeType: domain.MIMETypePNG}, nil
}

func (m *mockGenerator) Generate(ctx context.Context, p string, src *domain.SourceImage, st prompt.Style) (*domain.ImageResponse, error) {
	m.mu.Lock()
	m.generateCalls = append(m.generateCalls, generateCall{prompt: p, source: src, style: st})
	n := len(m.generateCalls) + len(m.upscaleCalls)
	m.mu.Unlock()
	m.wait()
	return m.respond(n)
}

func (m *mockGenerator) Upscale(ctx context.Context, src *domain.SourceImage) (*domain.ImageResponse, error) {
	m.mu.Lock()
	m.upscaleCalls = append(m.upscaleCalls, src)
	n := len(m.generateCalls) + len(m.upscaleCalls)
	m.mu.Unlock()
	m.wait()
	return m.respond(n)
}

func (m *mockGenerator) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generateCalls) + len(m.upscaleCalls)
}

type mockSurface struct {
	cleared int
	onClear func()
}

func (m *mockSurface) Clear() {
	m.cleared++
	if m.onClear != nil {
		m.onClear()
	}
}
