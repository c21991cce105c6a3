package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/gemini-image-studio/internal/builder"
	"github.com/shouni/gemini-image-studio/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

const appName = "studio"

var opts config.Options

// addAppFlags は、すべてのサブコマンドに共通するフラグを定義します。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "生成画像の保存先（ローカル or gs://...）。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "使用する Gemini 画像モデル名。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", 0, "ソース画像取得のタイムアウト。")
	rootCmd.PersistentFlags().IntVar(&opts.CompressQuality, "compress-quality", 0, "ソース画像を指定品質の JPEG に再圧縮します（0 で無効）。")
	rootCmd.PersistentFlags().IntVar(&opts.CanvasWidth, "canvas-width", config.DefaultCanvasWidth, "描画キャンバスの幅（高さは 16:9 で決まります）。")
}

// preRunAppE は、コマンド実行前にログの設定を行います。
// API キーの有無はここでは判定せず、生成時に設定エラーとして報告します。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// --verbose は clibase が登録する共通フラグ
	if v, err := cmd.Flags().GetBool("verbose"); err == nil {
		opts.Verbose = v
	}
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// setupApp は設定を読み込み、AppContext を組み立てます。
func setupApp(ctx context.Context) (*builder.AppContext, error) {
	cfg := config.LoadConfig()
	cfg.ApplyOptions(opts)
	app, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションの初期化に失敗しました: %w", err)
	}
	return app, nil
}

// Execute は、アプリケーションのメインエントリポイントです。
// main.go から呼び出され、cobra のコマンドライン解析を開始します。
func Execute() {
	clibase.Execute(
		appName,
		addAppFlags,
		preRunAppE,
		generateCmd,
		upscaleCmd,
		sketchCmd,
		stylesCmd,
	)
}
