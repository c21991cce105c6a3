package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/domain"
)

// DefaultProductName はダウンロードファイル名の接頭辞です。
const DefaultProductName = "nano-banana-studio"

// ErrNoImage は保存する画像が無い場合に返されます。
var ErrNoImage = errors.New("no image to download")

// Writer は生成画像の保存先です。remoteio.OutputWriter がこれを満たします。
type Writer interface {
	Write(ctx context.Context, path string, r io.Reader, contentType string) error
}

// FileName は "<product>-<unixミリ秒>.png" 形式のファイル名を返します。
func FileName(product string, t time.Time) string {
	if product == "" {
		product = DefaultProductName
	}
	return fmt.Sprintf("%s-%d.png", product, t.UnixMilli())
}

// ResolveOutputPath はローカルパスと gs:// の両方を考慮して出力先を組み立てます。
func ResolveOutputPath(baseDir, fileName string) string {
	if baseDir == "" {
		return fileName
	}
	if strings.HasPrefix(baseDir, "gs://") {
		return strings.TrimSuffix(baseDir, "/") + "/" + path.Clean(fileName)
	}
	return filepath.Join(baseDir, fileName)
}

// Downloader は表示中の画像をデコード済みのバイト列のまま保存します。
type Downloader struct {
	writer  Writer
	dir     string
	product string
	now     func() time.Time
}

// NewDownloader は保存先ディレクトリとファイル名の接頭辞を指定して Downloader を作成します。
func NewDownloader(w Writer, dir, product string) (*Downloader, error) {
	if w == nil {
		return nil, fmt.Errorf("writer is required")
	}
	return &Downloader{writer: w, dir: dir, product: product, now: time.Now}, nil
}

// Save は画像を保存し、保存先のパスを返します。
func (d *Downloader) Save(ctx context.Context, img *domain.ImageResponse) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", ErrNoImage
	}
	outputPath := ResolveOutputPath(d.dir, FileName(d.product, d.now()))

	if err := d.writer.Write(ctx, outputPath, bytes.NewReader(img.Data), domain.MIMETypePNG); err != nil {
		return "", fmt.Errorf("画像 '%s' の保存に失敗しました: %w", outputPath, err)
	}
	slog.InfoContext(ctx, "画像を保存しました", "path", outputPath, "bytes", len(img.Data))
	return outputPath, nil
}
