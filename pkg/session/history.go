package session

import "github.com/shouni/gemini-image-studio/pkg/domain"

// DefaultHistoryLimit はセッション中に保持する生成結果の上限です。
const DefaultHistoryLimit = 10

// History は新しい順に並んだ上限付きの生成結果一覧です。
type History struct {
	limit   int
	entries []*domain.ImageResponse
}

// NewHistory は上限 limit の履歴を作成します。limit が 0 以下なら既定値を使います。
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit, entries: make([]*domain.ImageResponse, 0, limit)}
}

// Push は先頭に追加し、上限を超えた古いものを捨てます。
func (h *History) Push(img *domain.ImageResponse) {
	h.entries = append([]*domain.ImageResponse{img}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries[h.limit] = nil
		h.entries = h.entries[:h.limit]
	}
}

// At は i 番目（0 が最新）を返します。
func (h *History) At(i int) (*domain.ImageResponse, bool) {
	if i < 0 || i >= len(h.entries) {
		return nil, false
	}
	return h.entries[i], true
}

func (h *History) Len() int {
	return len(h.entries)
}

// Items は新しい順のコピーを返します。
func (h *History) Items() []*domain.ImageResponse {
	out := make([]*domain.ImageResponse, len(h.entries))
	copy(out, h.entries)
	return out
}
