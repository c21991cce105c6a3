package prompt

import (
	"fmt"
	"strings"
)

// Style は画風プリセットです。
type Style string

const (
	StyleDefault        Style = "Default"
	StylePhotorealistic Style = "Photorealistic"
	StyleAnime          Style = "Anime"
	StyleGhibli         Style = "Ghibli"
	StyleOilPainting    Style = "Oil Painting"
	StyleCyberpunk      Style = "Cyberpunk"
	StyleVintage        Style = "Vintage"
	StyleMinimalist     Style = "Minimalist"
	Style3DRender       Style = "3D Render"
)

var styles = []Style{
	StyleDefault,
	StylePhotorealistic,
	StyleAnime,
	StyleGhibli,
	StyleOilPainting,
	StyleCyberpunk,
	StyleVintage,
	StyleMinimalist,
	Style3DRender,
}

// styleInstructions は各プリセットに対応する指示文です。Default は追加なし。
var styleInstructions = map[Style]string{
	StylePhotorealistic: "Create a high-detail, photorealistic image.",
	StyleAnime:          "Transform into the vibrant, expressive style of Japanese anime.",
	StyleGhibli:         "Recreate in the whimsical, hand-drawn animation style of Studio Ghibli.",
	StyleOilPainting:    "Render as a rich, textured oil painting with visible brushstrokes.",
	StyleCyberpunk:      "Reimagine in a futuristic, neon-lit cyberpunk art style.",
	StyleVintage:        "Apply a retro, vintage photograph effect with faded colors and film grain.",
	StyleMinimalist:     "Convert to a clean, simple, minimalist style with a limited color palette.",
	Style3DRender:       "Generate as a polished, high-resolution 3D digital render, like something from Pixar.",
}

// Styles は選択可能なプリセットを表示順で返します。
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// Instruction はプリセットの指示文を返します。Default や未知の値は空文字です。
func (s Style) Instruction() string {
	return styleInstructions[s]
}

// ParseStyle は大文字小文字を区別せずにプリセット名を解決します。
// 空文字は Default として扱います。
func ParseStyle(name string) (Style, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return StyleDefault, nil
	}
	for _, s := range styles {
		if strings.EqualFold(string(s), n) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown style: %q", name)
}
