package asset

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	path        string
	data        []byte
	contentType string
	err         error
}

func (m *mockWriter) Write(ctx context.Context, path string, r io.Reader, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.path, m.data, m.contentType = path, data, contentType
	return nil
}

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "studio-1700000000123.png", FileName("studio", ts))
	assert.Equal(t, DefaultProductName+"-1700000000123.png", FileName("", ts))
}

func TestResolveOutputPath(t *testing.T) {
	assert.Equal(t, "gs://bucket/out/a.png", ResolveOutputPath("gs://bucket/out/", "a.png"))
	assert.Equal(t, filepath.Join("output", "a.png"), ResolveOutputPath("output", "a.png"))
	assert.Equal(t, "a.png", ResolveOutputPath("", "a.png"))
}

func TestDownloader_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("生のバイト列をPNGとして保存する", func(t *testing.T) {
		w := &mockWriter{}
		d, err := NewDownloader(w, "output", "studio")
		require.NoError(t, err)
		d.now = func() time.Time { return time.UnixMilli(42) }

		p, err := d.Save(ctx, &domain.ImageResponse{Data: []byte("png"), MimeType: "image/png"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("output", "studio-42.png"), p)
		assert.Equal(t, p, w.path)
		assert.Equal(t, "png", string(w.data))
		assert.Equal(t, domain.MIMETypePNG, w.contentType)
	})

	t.Run("画像が無ければエラー", func(t *testing.T) {
		d, _ := NewDownloader(&mockWriter{}, "", "")
		_, err := d.Save(ctx, nil)
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("書き込みエラーをラップする", func(t *testing.T) {
		cause := errors.New("disk full")
		d, _ := NewDownloader(&mockWriter{err: cause}, "", "")
		_, err := d.Save(ctx, &domain.ImageResponse{Data: []byte("png")})
		assert.ErrorIs(t, err, cause)
	})

	t.Run("writer は必須", func(t *testing.T) {
		_, err := NewDownloader(nil, "", "")
		assert.Error(t, err)
	})
}
