package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-image-studio/internal/builder"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/prompt"

	"github.com/spf13/cobra"
)

// generateCmd はテキスト、またはソース画像とテキストから画像を生成します。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "プロンプトとソース画像から画像を生成します。",
	Long: `--image を指定すると画像モードで、指定しなければテキストモードで生成します。
--upscale を付けると、生成後に続けてアップスケールします。`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.Prompt, "prompt", "p", "", "生成したい内容の説明。")
	generateCmd.Flags().StringVarP(&opts.Style, "style", "s", string(prompt.StyleDefault), "画風プリセット（styles コマンドで一覧）。")
	generateCmd.Flags().StringVarP(&opts.Image, "image", "i", "", "ソース画像（ローカル / gs:// / http(s)）。")
	generateCmd.Flags().BoolVar(&opts.Upscale, "upscale", false, "生成後にアップスケールも行います。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	style, err := prompt.ParseStyle(opts.Style)
	if err != nil {
		return err
	}

	app, err := setupApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	sess := app.Session

	if opts.Image != "" {
		sess.SetMode(domain.ModeImage)
		src, err := app.Loader.Load(ctx, opts.Image)
		if err != nil {
			return err
		}
		sess.SetSourceImage(src)
	} else {
		sess.SetMode(domain.ModeText)
	}
	sess.SetPrompt(opts.Prompt)
	sess.SetStyle(style)

	slog.InfoContext(ctx, "画像生成を開始します", "mode", sess.State().Mode, "style", string(style))
	if _, err := sess.Generate(ctx); err != nil {
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

// saveDisplayed は表示中の画像を保存してパスを出力します。
func saveDisplayed(ctx context.Context, app *builder.AppContext) error {
	path, err := app.Downloader.Save(ctx, app.Session.State().Generated)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func upscaleDisplayed(ctx context.Context, app *builder.AppContext) error {
	if _, err := app.Session.Upscale(ctx); err != nil {
		return err
	}
	return saveDisplayed(ctx, app)
}
