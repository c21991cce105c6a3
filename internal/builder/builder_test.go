package builder

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shouni/gemini-image-studio/internal/config"
	"github.com/shouni/gemini-image-studio/pkg/generator"
	"github.com/shouni/gemini-image-studio/pkg/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeminiServer は generateContent に固定の応答を返し、受け取ったリクエストを記録します。
type fakeGeminiServer struct {
	mu     sync.Mutex
	status int
	body   string
	calls  int
	last   string
}

func (f *fakeGeminiServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls++
	f.last = string(data)
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeGeminiServer) requests() (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.last
}

func newGeneratorAgainst(t *testing.T, fake *fakeGeminiServer) *generator.GeminiGenerator {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	t.Setenv("GOOGLE_GEMINI_BASE_URL", srv.URL)

	gen, err := InitializeImageGenerator(context.Background(), &config.Config{
		GeminiAPIKey:     "test-key",
		GeminiImageModel: "test-image-model",
	})
	require.NoError(t, err)
	return gen
}

func TestInitializeImageGenerator_ClassifiesRealResponses(t *testing.T) {
	png := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	tests := []struct {
		name string
		body string
		kind generator.ErrorKind
	}{
		{
			name: "SAFETY で止まりブロック評価がある",
			body: `{"candidates":[{"finishReason":"SAFETY","safetyRatings":[{"category":"HARM_CATEGORY_HARASSMENT","blocked":true}]}]}`,
			kind: generator.KindSafetyBlocked,
		},
		{
			name: "IMAGE_SAFETY で止まる",
			body: `{"candidates":[{"finishReason":"IMAGE_SAFETY"}]}`,
			kind: generator.KindSafetyBlocked,
		},
		{
			name: "プロンプトがブロックされる",
			body: `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			kind: generator.KindSafetyBlocked,
		},
		{
			name: "空の応答",
			body: `{}`,
			kind: generator.KindEmptyResponse,
		},
		{
			name: "テキストだけの応答",
			body: `{"candidates":[{"content":{"role":"model","parts":[{"text":"sorry"}]},"finishReason":"STOP"}]}`,
			kind: generator.KindEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGeminiServer{body: tt.body}
			gen := newGeneratorAgainst(t, fake)

			_, err := gen.Generate(context.Background(), "a cat", nil, prompt.StyleDefault)
			require.Error(t, err)
			assert.Equal(t, tt.kind, generator.KindOf(err), err.Error())
			calls, _ := fake.requests()
			assert.Equal(t, 1, calls)
		})
	}

	t.Run("画像を受け取り、画像モダリティを要求している", func(t *testing.T) {
		fake := &fakeGeminiServer{body: `{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"image/png","data":"` + png + `"}}]},"finishReason":"STOP"}]}`}
		gen := newGeneratorAgainst(t, fake)

		resp, err := gen.Generate(context.Background(), "a cat", nil, prompt.StyleDefault)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(resp.Data))
		assert.Equal(t, "image/png", resp.MimeType)
		_, body := fake.requests()
		assert.Contains(t, body, `"responseModalities":["IMAGE"]`)
	})

	t.Run("サーバーエラーはリトライせずサービスエラー", func(t *testing.T) {
		fake := &fakeGeminiServer{
			status: http.StatusServiceUnavailable,
			body:   `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`,
		}
		gen := newGeneratorAgainst(t, fake)

		_, err := gen.Generate(context.Background(), "a cat", nil, prompt.StyleDefault)
		require.Error(t, err)
		assert.Equal(t, generator.KindService, generator.KindOf(err))
		calls, _ := fake.requests()
		assert.Equal(t, 1, calls)
	})
}

func TestNewAppContext_LocalRunNeedsNoCloudCredentials(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir(), ProductName: "studio-test"}
	cfg.ApplyOptions(config.Options{})

	app, err := NewAppContext(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Storage.factory)
}
