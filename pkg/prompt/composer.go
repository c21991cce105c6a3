package prompt

import "strings"

const (
	// FallbackInstruction はプロンプトもスタイル指示もない場合に送る指示文です。
	// 画像のみの送信でもテキストパートが必須なためです。
	FallbackInstruction = "Turn this into a high-quality, realistic image."

	// UpscaleInstruction はアップスケール時に画像へ添える固定の指示文です。
	UpscaleInstruction = "Upscale this image, enhancing its resolution and clarity. Make the details sharper and clearer without altering the content or style."

	separator = ". "
)

// Compose はユーザーのプロンプトとスタイル指示を1つの指示文にまとめます。
func Compose(userPrompt string, style Style) string {
	parts := make([]string, 0, 2)
	if userPrompt != "" {
		parts = append(parts, userPrompt)
	}
	if ins := style.Instruction(); ins != "" {
		parts = append(parts, ins)
	}

	if len(parts) == 0 {
		return FallbackInstruction
	}
	return strings.Join(parts, separator)
}
