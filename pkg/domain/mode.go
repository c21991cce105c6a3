package domain

import (
	"fmt"
	"strings"
)

// Mode はアクティブな入力面を表します。
type Mode string

const (
	ModeText  Mode = "text"
	ModeImage Mode = "image"
	ModeDraw  Mode = "draw"
)

// ParseMode は文字列を Mode に変換します。
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeImage, ModeDraw:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode: %q", s)
	}
}
