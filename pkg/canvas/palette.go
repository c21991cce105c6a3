package canvas

import "strings"

// Color はパレットの色（#RRGGBB）です。
type Color string

const (
	ColorWhite  Color = "#FFFFFF"
	ColorBlack  Color = "#000000"
	ColorRed    Color = "#EF4444"
	ColorBlue   Color = "#3B82F6"
	ColorGreen  Color = "#22C55E"
	ColorYellow Color = "#EAB308"
)

// Palette は選択可能な6色です。
var Palette = []Color{ColorWhite, ColorBlack, ColorRed, ColorBlue, ColorGreen, ColorYellow}

const (
	MinWidth     = 1
	MaxWidth     = 50
	DefaultWidth = 5
	DefaultColor = ColorWhite
)

// ParseColor はパレット内の色を大文字小文字を区別せずに解決します。
func ParseColor(s string) (Color, bool) {
	for _, c := range Palette {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}
