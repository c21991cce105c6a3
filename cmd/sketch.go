package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/prompt"
	"github.com/shouni/gemini-image-studio/pkg/sketch"

	"github.com/spf13/cobra"
)

// sketchCmd は記録したポインタ操作をキャンバスに再生し、その絵から画像を生成します。
var sketchCmd = &cobra.Command{
	Use:   "sketch",
	Short: "スケッチスクリプトを描画して画像に仕上げます。",
	Long: `YAML/JSON のスケッチスクリプトを描画モードのキャンバスに再生し、
描いた絵とプロンプトから画像を生成します。`,
	RunE: sketchCommand,
}

func init() {
	sketchCmd.Flags().StringVar(&opts.Script, "script", "", "スケッチスクリプトのパス（ローカル or gs://...）。")
	sketchCmd.Flags().StringVarP(&opts.Prompt, "prompt", "p", "", "絵を何に仕上げるかの説明。")
	sketchCmd.Flags().StringVarP(&opts.Style, "style", "s", string(prompt.StyleDefault), "画風プリセット。")
	sketchCmd.Flags().BoolVar(&opts.Upscale, "upscale", false, "生成後にアップスケールも行います。")
}

func sketchCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if opts.Script == "" {
		return fmt.Errorf("スケッチスクリプト（--script）を指定してください")
	}
	style, err := prompt.ParseStyle(opts.Style)
	if err != nil {
		return err
	}

	app, err := setupApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	rc, err := app.Storage.Open(ctx, opts.Script)
	if err != nil {
		return fmt.Errorf("スクリプト '%s' の読み込みに失敗しました: %w", opts.Script, err)
	}
	defer rc.Close()

	script, err := sketch.Load(rc)
	if err != nil {
		return err
	}

	// 描画モードへの切り替えでキャンバスは消去され、以降の描画はセッションに通知される
	app.Session.SetMode(domain.ModeDraw)
	if _, err := sketch.Replay(ctx, app.Surface, script); err != nil {
		return err
	}
	app.Session.SetPrompt(opts.Prompt)
	app.Session.SetStyle(style)

	slog.InfoContext(ctx, "スケッチから画像を生成します",
		"strokes", len(script.Strokes), "has_drawing", app.Session.State().Source != nil)
	if _, err := app.Session.Generate(ctx); err != nil {
		return err
	}
	if err := saveDisplayed(ctx, app); err != nil {
		return err
	}
	if opts.Upscale {
		return upscaleDisplayed(ctx, app)
	}
	return nil
}
