package cmd

import (
	"fmt"

	"github.com/shouni/gemini-image-studio/pkg/domain"

	"github.com/spf13/cobra"
)

// upscaleCmd は既存の画像を開いてアップスケールします。
var upscaleCmd = &cobra.Command{
	Use:   "upscale",
	Short: "画像の内容を変えずに解像度と鮮明さを高めます。",
	RunE:  upscaleCommand,
}

func init() {
	upscaleCmd.Flags().StringVarP(&opts.Image, "image", "i", "", "アップスケールする画像（ローカル / gs:// / http(s)）。")
}

func upscaleCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if opts.Image == "" {
		return fmt.Errorf("アップスケールする画像（--image）を指定してください")
	}

	app, err := setupApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	img, err := app.Loader.Load(ctx, opts.Image)
	if err != nil {
		return err
	}
	if err := app.Session.Display(&domain.ImageResponse{Data: img.Data(), MimeType: img.MIMEType()}); err != nil {
		return err
	}
	return upscaleDisplayed(ctx, app)
}
