package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/generator"
	"github.com/shouni/gemini-image-studio/pkg/prompt"
)

const (
	LabelGenerating = "Generating"
	LabelUpscaling  = "Upscaling"

	msgGenerateFallback = "An unexpected error occurred."
	msgUpscaleFallback  = "An unexpected error occurred during upscaling."
)

var (
	// ErrNothingToGenerate はプロンプトもソース画像も無い場合の入力エラーです。
	ErrNothingToGenerate = errors.New("Please provide a prompt, upload an image, or draw something.")
	// ErrNothingToUpscale は表示中の画像が無いときにアップスケールしようとした場合のエラーです。
	ErrNothingToUpscale = errors.New("There is no image to upscale.")
	// ErrBusy は別のリクエストが処理中の場合に返されます。
	ErrBusy = errors.New("a request is already in progress")
	// ErrNoImage はソースにする画像が指定されなかった場合に返されます。
	ErrNoImage = errors.New("no image selected")
	// ErrHistoryIndex は存在しない履歴を指定した場合に返されます。
	ErrHistoryIndex = errors.New("history item not found")
)

// Clearer は入力モード切り替え時に消去される描画面です。canvas.Surface が満たします。
type Clearer interface {
	Clear()
}

// State はセッションの状態のスナップショットです。
type State struct {
	Mode         domain.Mode
	Prompt       string
	Style        prompt.Style
	Source       *domain.SourceImage
	Generated    *domain.ImageResponse
	Loading      bool
	LoadingLabel string
	Err          error
	History      []*domain.ImageResponse
}

// Session はモード選択、リクエストの進行状況、履歴をまとめて管理します。
// loading フラグが唯一の排他であり、同時に走るリクエストは常に1つです。
type Session struct {
	mu sync.Mutex

	gen     generator.ImageGenerator
	surface Clearer

	mode         domain.Mode
	prompt       string
	style        prompt.Style
	source       *domain.SourceImage
	generated    *domain.ImageResponse
	loading      bool
	loadingLabel string
	err          error
	history      *History

	// seq は最後に発行したリクエストの番号です。結果はこれと一致する場合のみ反映します。
	seq uint64
}

// New はテキストモード、Default スタイルでセッションを開始します。
func New(gen generator.ImageGenerator) (*Session, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	return &Session{
		gen:          gen,
		mode:         domain.ModeText,
		style:        prompt.StyleDefault,
		loadingLabel: LabelGenerating,
		history:      NewHistory(DefaultHistoryLimit),
	}, nil
}

// AttachSurface は描画モードで使う描画面を登録します。
// 描画面の変更通知は SetSourceImage に接続してください。
func (s *Session) AttachSurface(c Clearer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = c
}

// State は現在の状態を返します。
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Mode:         s.mode,
		Prompt:       s.prompt,
		Style:        s.style,
		Source:       s.source,
		Generated:    s.generated,
		Loading:      s.loading,
		LoadingLabel: s.loadingLabel,
		Err:          s.err,
		History:      s.history.Items(),
	}
}

// SetMode は入力モードを切り替え、生成結果・プロンプト・エラーをリセットします。
// テキストモードへの切り替えではソース画像を破棄し、描画モードへの切り替えでは描画面を消去します。
func (s *Session) SetMode(m domain.Mode) {
	s.mu.Lock()
	s.mode = m
	if m == domain.ModeText {
		s.source = nil
	}
	s.generated = nil
	s.prompt = ""
	s.err = nil
	surface := s.surface
	s.mu.Unlock()

	// Clear は SetSourceImage を呼び返すため、ロックの外で実行する
	if m == domain.ModeDraw && surface != nil {
		surface.Clear()
	}
}

func (s *Session) SetPrompt(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = p
}

func (s *Session) SetStyle(st prompt.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = st
}

// SetSourceImage はアップロードや描画面からの通知でソース画像を差し替えます。nil で解除します。
func (s *Session) SetSourceImage(img *domain.SourceImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = img
}

// Generate は現在のプロンプト、ソース画像、スタイルで生成を実行します。
func (s *Session) Generate(ctx context.Context) (*domain.ImageResponse, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.prompt == "" && s.source == nil {
		s.err = ErrNothingToGenerate
		s.mu.Unlock()
		return nil, ErrNothingToGenerate
	}
	id := s.begin(LabelGenerating)
	s.generated = nil
	userPrompt, source, style := s.prompt, s.source, s.style
	s.mu.Unlock()

	result, err := s.gen.Generate(ctx, userPrompt, source, style)
	return s.finish(ctx, id, result, err, msgGenerateFallback)
}

// Upscale は表示中の画像をアップスケールします。
func (s *Session) Upscale(ctx context.Context) (*domain.ImageResponse, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.generated == nil {
		s.err = ErrNothingToUpscale
		s.mu.Unlock()
		return nil, ErrNothingToUpscale
	}
	source, err := s.generated.ToSourceImage()
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return nil, err
	}
	id := s.begin(LabelUpscaling)
	s.mu.Unlock()

	result, err := s.gen.Upscale(ctx, source)
	return s.finish(ctx, id, result, err, msgUpscaleFallback)
}

// UseAsSource は表示中または履歴の画像をソース画像にし、画像モードへ切り替えます。
func (s *Session) UseAsSource(img *domain.ImageResponse) error {
	if img == nil {
		return ErrNoImage
	}
	src, err := img.ToSourceImage()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = src
	s.mode = domain.ModeImage
	s.generated = nil
	return nil
}

// Display は外部から開いた画像を表示中の画像にします。通信は行わず、履歴にも追加しません。
func (s *Session) Display(img *domain.ImageResponse) error {
	if img == nil || len(img.Data) == 0 {
		return ErrNoImage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generated = img
	return nil
}

// ViewHistory は履歴の i 番目（0 が最新）を表示します。通信は行いません。
func (s *Session) ViewHistory(i int) (*domain.ImageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.history.At(i)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrHistoryIndex, i)
	}
	s.generated = img
	return img, nil
}

// begin はロック取得中に呼び出します。
func (s *Session) begin(label string) uint64 {
	s.seq++
	s.loading = true
	s.loadingLabel = label
	s.err = nil
	return s.seq
}

func (s *Session) finish(ctx context.Context, id uint64, result *domain.ImageResponse, err error, fallback string) (*domain.ImageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.seq {
		slog.WarnContext(ctx, "古いリクエストの結果を破棄します", "request_id", id, "latest", s.seq)
		return result, err
	}
	s.loading = false

	if err == nil && (result == nil || len(result.Data) == 0) {
		err = generator.ErrEmptyResponse
	}
	if err != nil {
		if err.Error() == "" {
			err = fmt.Errorf("%s: %w", fallback, err)
		}
		s.err = err
		slog.ErrorContext(ctx, "リクエストに失敗しました",
			"label", s.loadingLabel, "kind", generator.KindOf(err).String(), "error", err)
		return nil, err
	}

	s.generated = result
	s.history.Push(result)
	slog.InfoContext(ctx, "画像を取得しました", "label", s.loadingLabel, "bytes", len(result.Data), "history", s.history.Len())
	return result, nil
}
