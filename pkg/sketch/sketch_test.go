package sketch

import (
	"context"
	"strings"
	"testing"

	"github.com/shouni/gemini-image-studio/pkg/canvas"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const houseScript = `
display: {width: 80, height: 45}
strokes:
  - color: "#EF4444"
    width: 3
    points: [{x: 10, y: 40}, {x: 40, y: 10}, {x: 70, y: 40}]
  - points: [{x: 10, y: 40}, {x: 70, y: 40}]
`

func TestLoad(t *testing.T) {
	t.Run("YAMLを読み込める", func(t *testing.T) {
		s, err := Load(strings.NewReader(houseScript))
		require.NoError(t, err)
		assert.Len(t, s.Strokes, 2)
		assert.Equal(t, 80.0, s.Display.Width)
	})

	t.Run("JSONも読み込める", func(t *testing.T) {
		s, err := Load(strings.NewReader(`{"display":{"width":10,"height":10},"strokes":[{"points":[{"x":1,"y":1}]}]}`))
		require.NoError(t, err)
		assert.Len(t, s.Strokes, 1)
	})

	t.Run("表示サイズが無いとエラー", func(t *testing.T) {
		_, err := Load(strings.NewReader("strokes: []"))
		assert.ErrorIs(t, err, ErrInvalidScript)
	})

	t.Run("点の無いストロークはエラー", func(t *testing.T) {
		_, err := Load(strings.NewReader("display: {width: 1, height: 1}\nstrokes: [{color: '#000000'}]"))
		assert.ErrorIs(t, err, ErrInvalidScript)
	})
}

func TestReplay(t *testing.T) {
	ctx := context.Background()

	t.Run("表示座標を実ピクセルに変換して描く", func(t *testing.T) {
		var notified []*domain.SourceImage
		surface, err := canvas.NewSurface(160, 90, func(img *domain.SourceImage) { notified = append(notified, img) })
		require.NoError(t, err)

		s, err := Load(strings.NewReader(houseScript))
		require.NoError(t, err)

		img, err := Replay(ctx, surface, s)
		require.NoError(t, err)
		require.NotNil(t, img)
		assert.Equal(t, domain.MIMETypePNG, img.MIMEType())
		assert.Len(t, notified, 2)

		// 表示 (40,40) は実ピクセル (80,80) の底辺上
		_, _, _, a := surface.Snapshot().At(80, 80).RGBA()
		assert.NotZero(t, a)
		assert.Equal(t, canvas.ColorRed, surface.Color())
		assert.Equal(t, 3, surface.Width())
	})

	t.Run("パレット外の色はエラー", func(t *testing.T) {
		surface, err := canvas.NewSurface(10, 10, nil)
		require.NoError(t, err)
		s := &Script{Display: Display{Width: 10, Height: 10}, Strokes: []Stroke{{Color: "#ABCDEF", Points: []Point{{X: 1, Y: 1}}}}}

		_, err = Replay(ctx, surface, s)
		assert.ErrorIs(t, err, canvas.ErrInvalidColor)
	})
}
