package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"google.golang.org/genai"
)

// --- Mocks ---

type mockAIClient struct {
	calls      int
	lastModel  string
	lastParts  []*genai.Part
	lastConfig *genai.GenerateContentConfig
	resp       *genai.GenerateContentResponse
	err        error
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	m.lastConfig = config
	m.lastParts = nil
	for _, c := range contents {
		m.lastParts = append(m.lastParts, c.Parts...)
	}
	return m.resp, m.err
}

type mockReader struct {
	files  map[string][]byte
	opened []string
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	m.opened = append(m.opened, uri)
	data, ok := m.files[uri]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type mockHTTPClient struct {
	data  []byte
	err   error
	calls int
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	return m.data, m.err
}

type mockCache struct {
	data map[string]any
}

func (m *mockCache) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	m.data[key] = value
}

// --- Response builders ---

func imageResponse(data []byte, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "here you go"},
					{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
				},
			},
		}},
	}
}

func textOnlyResponse(ratings ...*genai.SafetyRating) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:       &genai.Content{Parts: []*genai.Part{{Text: "just text"}}},
			SafetyRatings: ratings,
		}},
	}
}
