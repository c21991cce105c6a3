package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"github.com/shouni/gemini-image-studio/pkg/domain"
)

var (
	ErrStrokeInProgress = errors.New("a stroke is already in progress")
	ErrInvalidWidth     = fmt.Errorf("stroke width must be between %d and %d", MinWidth, MaxWidth)
	ErrInvalidColor     = errors.New("color is not in the palette")
	ErrInvalidSize      = errors.New("canvas size must be positive")
)

// ChangeFunc は描画内容が確定するたびに呼ばれます。何も描かれていない場合は nil です。
type ChangeFunc func(img *domain.SourceImage)

// Surface はフリーハンド描画のラスタと筆の状態を保持します。
type Surface struct {
	mu       sync.Mutex
	dc       *gg.Context
	blank    []byte
	color    Color
	width    int
	stroking bool
	last     Point
	onChange ChangeFunc
}

// NewSurface は指定サイズの空キャンバスを作成し、空の状態を基準ラスタとして記録します。
func NewSurface(width, height int, onChange ChangeFunc) (*Surface, error) {
	s := &Surface{
		color:    DefaultColor,
		width:    DefaultWidth,
		onChange: onChange,
	}
	if err := s.reset(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWideSurface は 16:9 のキャンバスを作成します。
func NewWideSurface(width int, onChange ChangeFunc) (*Surface, error) {
	return NewSurface(width, width*9/16, onChange)
}

// OnChange は通知先を差し替えます。
func (s *Surface) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Surface) reset(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	s.dc = gg.NewContext(width, height)
	s.dc.SetLineCapRound()
	s.dc.SetLineJoinRound()
	s.blank = s.pixels()
	s.stroking = false
	return nil
}

// Resize はバッキングストアを作り直します。既存のストロークは保持されず、
// 新しいサイズで空キャンバスの基準ラスタを取り直します。
func (s *Surface) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(width, height)
}

// Size はバッキングストアのサイズです。
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dc.Width(), s.dc.Height()
}

// Viewport は表示サイズを指定して座標変換用の Viewport を組み立てます。
func (s *Surface) Viewport(left, top, displayWidth, displayHeight float64) Viewport {
	w, h := s.Size()
	return Viewport{
		Left:          left,
		Top:           top,
		DisplayWidth:  displayWidth,
		DisplayHeight: displayHeight,
		BackingWidth:  w,
		BackingHeight: h,
	}
}

// SetColor は以降のストロークの色を設定します。
func (s *Surface) SetColor(c Color) error {
	pc, ok := ParseColor(string(c))
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidColor, c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.color = pc
	return nil
}

// SetWidth は以降のストロークの太さを設定します。
func (s *Surface) SetWidth(w int) error {
	if w < MinWidth || w > MaxWidth {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, w)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = w
	return nil
}

// Color は現在の筆の色です。
func (s *Surface) Color() Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// Width は現在の筆の太さです。
func (s *Surface) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

// Stroking はストロークが開いているかを返します。
func (s *Surface) Stroking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stroking
}

// BeginStroke は現在の色と太さで新しいパスを開始します。
func (s *Surface) BeginStroke(p Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stroking {
		return ErrStrokeInProgress
	}
	s.dc.SetHexColor(string(s.color))
	s.dc.SetLineWidth(float64(s.width))
	s.last = p
	s.stroking = true
	return nil
}

// ExtendStroke は直前の点から p までの線分をすぐに描画します。
// ストロークが開いていなければ何もしません。
func (s *Surface) ExtendStroke(p Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stroking {
		return
	}
	s.dc.MoveTo(s.last.X, s.last.Y)
	s.dc.LineTo(p.X, p.Y)
	s.dc.Stroke()
	s.last = p
}

// EndStroke はパスを閉じ、描画内容を PNG にして通知します。
// ストロークが開いていない場合（ポインタが描画せずに離れた場合など）は何もしません。
func (s *Surface) EndStroke() (*domain.SourceImage, error) {
	s.mu.Lock()
	if !s.stroking {
		s.mu.Unlock()
		return nil, nil
	}
	s.dc.ClearPath()
	s.stroking = false

	img, err := s.export()
	notify := s.onChange
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if notify != nil {
		notify(img)
	}
	return img, nil
}

// Clear は全ピクセルを消去し、空であることを通知します。
func (s *Surface) Clear() {
	s.mu.Lock()
	_ = s.reset(s.dc.Width(), s.dc.Height())
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(nil)
	}
}

// IsBlank は現在のラスタが基準ラスタと一致するかを返します。
func (s *Surface) IsBlank() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Equal(s.pixels(), s.blank)
}

// Snapshot は現在のラスタのコピーを返します。
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.rgba()
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

func (s *Surface) export() (*domain.SourceImage, error) {
	if bytes.Equal(s.pixels(), s.blank) {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("キャンバスのPNGエンコードに失敗しました: %w", err)
	}
	return domain.NewSourceImage(buf.Bytes(), domain.MIMETypePNG)
}

func (s *Surface) rgba() *image.RGBA {
	if img, ok := s.dc.Image().(*image.RGBA); ok {
		return img
	}
	b := s.dc.Image().Bounds()
	img := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, s.dc.Image().At(x, y))
		}
	}
	return img
}

func (s *Surface) pixels() []byte {
	src := s.rgba().Pix
	out := make([]byte, len(src))
	copy(out, src)
	return out
}
