package builder

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Storage はローカルパスをそのまま読み書きし、gs:// のときだけ GCS クライアントを作ります。
// ローカルのみの実行では Google Cloud の認証情報を必要としません。
type Storage struct {
	mu         sync.Mutex
	newFactory func(ctx context.Context) (remoteio.IOFactory, error)
	factory    remoteio.IOFactory

	local       remoteio.InputReader
	localWriter remoteio.OutputWriter
	gcsReader   remoteio.InputReader
	gcsWriter   remoteio.OutputWriter
}

// NewStorage は GCS への接続を遅延させた Storage を作成します。
func NewStorage() *Storage {
	return &Storage{
		newFactory:  gcsfactory.New,
		local:       remoteio.NewUniversalInputReader(nil, nil),
		localWriter: remoteio.NewUniversalIOWriter(nil, nil),
	}
}

// Open はパスを読み込み用に開きます。
func (s *Storage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !remoteio.IsGCSURI(path) {
		return s.local.Open(ctx, path)
	}
	r, _, err := s.gcs(ctx)
	if err != nil {
		return nil, err
	}
	return r.Open(ctx, path)
}

// Write はパスへ書き込みます。ローカルの場合 contentType は無視されます。
func (s *Storage) Write(ctx context.Context, path string, content io.Reader, contentType string) error {
	if !remoteio.IsGCSURI(path) {
		return s.localWriter.Write(ctx, path, content, contentType)
	}
	_, w, err := s.gcs(ctx)
	if err != nil {
		return err
	}
	return w.Write(ctx, path, content, contentType)
}

// Close は GCS クライアントを作成済みであれば解放します。
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.factory == nil {
		return nil
	}
	err := s.factory.Close()
	s.factory, s.gcsReader, s.gcsWriter = nil, nil, nil
	return err
}

func (s *Storage) gcs(ctx context.Context) (remoteio.InputReader, remoteio.OutputWriter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.factory != nil {
		return s.gcsReader, s.gcsWriter, nil
	}

	factory, err := s.newFactory(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("GCS クライアントの初期化に失敗しました: %w", err)
	}
	reader, err := factory.InputReader()
	if err != nil {
		_ = factory.Close()
		return nil, nil, err
	}
	writer, err := factory.OutputWriter()
	if err != nil {
		_ = factory.Close()
		return nil, nil, err
	}
	s.factory, s.gcsReader, s.gcsWriter = factory, reader, writer
	return reader, writer, nil
}
