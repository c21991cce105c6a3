package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/imgutil"
)

// ErrUnsafeURL はプライベートアドレスなど取得を許可しない URL を指定した場合のエラーです。
var ErrUnsafeURL = errors.New("unsafe url")

// ErrCorruptImage は形式は判定できたが画像として読めないデータの場合のエラーです。
var ErrCorruptImage = errors.New("corrupt image data")

// SourceLoader はファイルパス、gs:// または http(s) の URL からソース画像を読み込みます。
// ブラウザのファイル選択に相当し、png / jpeg / webp 以外は拒否します。
type SourceLoader struct {
	reader     SourceReader
	httpClient HTTPClient
	cache      ImageCacher
	expiration time.Duration

	// compressQuality が 0 より大きい場合、送信前に JPEG へ再圧縮を試みます。
	compressQuality int
}

// LoaderOption は SourceLoader の任意設定です。
type LoaderOption func(*SourceLoader)

// WithCompression は読み込んだ画像を指定品質の JPEG に再圧縮します。
// 再圧縮で小さくならない場合は元のデータを使います。
func WithCompression(quality int) LoaderOption {
	return func(l *SourceLoader) {
		l.compressQuality = quality
	}
}

// NewSourceLoader は依存関係を注入して SourceLoader を初期化します。
func NewSourceLoader(reader SourceReader, httpClient HTTPClient, cache ImageCacher, cacheTTL time.Duration, opts ...LoaderOption) (*SourceLoader, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	l := &SourceLoader{
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		expiration: cacheTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load は URI から画像を読み込み、SourceImage に正規化します。
func (l *SourceLoader) Load(ctx context.Context, uri string) (*domain.SourceImage, error) {
	data, err := l.fetchImageData(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("画像 '%s' の読み込みに失敗しました: %w", uri, err)
	}

	mimeType := http.DetectContentType(data)
	if !domain.IsAcceptedMIMEType(mimeType) {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedMIMEType, mimeType, uri)
	}

	width, height, format, err := imgutil.Dimensions(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptImage, uri, err)
	}
	slog.DebugContext(ctx, "ソース画像を読み込みました",
		"uri", uri, "format", format, "width", width, "height", height, "bytes", len(data))

	if l.compressQuality > 0 {
		if compressed, err := imgutil.CompressToJPEG(data, l.compressQuality); err == nil && len(compressed) < len(data) {
			slog.DebugContext(ctx, "ソース画像を再圧縮しました", "uri", uri, "before", len(data), "after", len(compressed))
			data, mimeType = compressed, domain.MIMETypeJPEG
		} else if err != nil {
			slog.WarnContext(ctx, "再圧縮に失敗したため元の画像を使います", "uri", uri, "error", err)
		}
	}

	return domain.NewSourceImage(data, mimeType)
}

func (l *SourceLoader) fetchImageData(ctx context.Context, uri string) ([]byte, error) {
	if !isRemoteURL(uri) {
		rc, err := l.reader.Open(ctx, uri)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	cacheKey := cacheKeySourceURL + uri
	if l.cache != nil {
		if cached, ok := l.cache.Get(cacheKey); ok {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", uri, "type", fmt.Sprintf("%T", cached))
		}
	}

	if safe, err := IsSafeURL(uri); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsafeURL, err)
	} else if !safe {
		return nil, fmt.Errorf("%w: %s", ErrUnsafeURL, uri)
	}

	data, err := l.httpClient.FetchBytes(ctx, uri)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.Set(cacheKey, data, l.expiration)
	}
	return data, nil
}
