// Package sketch は画面座標で記録されたポインタ操作を描画面に再生します。
// スクリプトは YAML（JSON も可）で記述します。
//
//	display: {width: 400, height: 225}
//	strokes:
//	  - color: "#EF4444"
//	    width: 8
//	    points: [{x: 10, y: 10}, {x: 120, y: 80}]
package sketch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/gemini-image-studio/pkg/canvas"
	"github.com/shouni/gemini-image-studio/pkg/domain"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScript = errors.New("invalid sketch script")

// Display はポインタ座標を記録したときのキャンバスの表示領域です。
type Display struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Stroke は押下から離すまでの1回の操作です。Color と Width は省略時に直前の設定を引き継ぎます。
type Stroke struct {
	Color  string  `yaml:"color"`
	Width  int     `yaml:"width"`
	Points []Point `yaml:"points"`
}

type Script struct {
	Display Display  `yaml:"display"`
	Strokes []Stroke `yaml:"strokes"`
}

// Load はスクリプトを読み込んで検証します。
func Load(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	if s.Display.Width <= 0 || s.Display.Height <= 0 {
		return fmt.Errorf("%w: display size must be positive", ErrInvalidScript)
	}
	for i, st := range s.Strokes {
		if len(st.Points) == 0 {
			return fmt.Errorf("%w: stroke %d has no points", ErrInvalidScript, i)
		}
	}
	return nil
}

// Replay は各ストロークを座標変換してから描画面に描きます。
// 戻り値は最後に確定した描画内容で、何も描かれなかった場合は nil です。
func Replay(ctx context.Context, surface *canvas.Surface, s *Script) (*domain.SourceImage, error) {
	vp := surface.Viewport(s.Display.Left, s.Display.Top, s.Display.Width, s.Display.Height)

	var latest *domain.SourceImage
	for i, st := range s.Strokes {
		if st.Color != "" {
			if err := surface.SetColor(canvas.Color(st.Color)); err != nil {
				return nil, fmt.Errorf("stroke %d: %w", i, err)
			}
		}
		if st.Width != 0 {
			if err := surface.SetWidth(st.Width); err != nil {
				return nil, fmt.Errorf("stroke %d: %w", i, err)
			}
		}

		first := st.Points[0]
		if err := surface.BeginStroke(canvas.MapPoint(vp, first.X, first.Y)); err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
		for _, p := range st.Points[1:] {
			surface.ExtendStroke(canvas.MapPoint(vp, p.X, p.Y))
		}
		img, err := surface.EndStroke()
		if err != nil {
			return nil, fmt.Errorf("stroke %d: %w", i, err)
		}
		latest = img
	}

	slog.DebugContext(ctx, "スケッチを再生しました", "strokes", len(s.Strokes), "blank", latest == nil)
	return latest, nil
}
