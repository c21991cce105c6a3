package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// 受け付ける画像の MIME タイプです。
const (
	MIMETypePNG  = "image/png"
	MIMETypeJPEG = "image/jpeg"
	MIMETypeWebP = "image/webp"
)

var (
	// ErrEmptyImageData は画像データが空の場合に返されます。
	ErrEmptyImageData = errors.New("image data is empty")
	// ErrUnsupportedMIMEType は受け付けない MIME タイプが指定された場合に返されます。
	ErrUnsupportedMIMEType = errors.New("unsupported image MIME type")
)

var acceptedMIMETypes = map[string]struct{}{
	MIMETypePNG:  {},
	MIMETypeJPEG: {},
	MIMETypeWebP: {},
}

// IsAcceptedMIMEType は MIME タイプがソース画像として受け付け可能かを判定します。
func IsAcceptedMIMEType(mimeType string) bool {
	_, ok := acceptedMIMETypes[strings.ToLower(strings.TrimSpace(mimeType))]
	return ok
}

// SourceImage は生成リクエストに添付する画像です。
// アップロード、キャンバス、生成結果のいずれから作られても同じ形に正規化されます。
// 生成後は変更せず、差し替える場合は新しい値を作ります。
type SourceImage struct {
	data     []byte
	mimeType string
}

// NewSourceImage はバイト列と MIME タイプから SourceImage を生成します。
func NewSourceImage(data []byte, mimeType string) (*SourceImage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImageData
	}
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if !IsAcceptedMIMEType(mt) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMIMEType, mimeType)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return &SourceImage{data: buf, mimeType: mt}, nil
}

// SourceImageFromBase64 は base64 文字列から SourceImage を生成します。
// "data:image/png;base64," 形式のプレフィックスが付いていても受け付けます。
func SourceImageFromBase64(encoded, mimeType string) (*SourceImage, error) {
	if i := strings.Index(encoded, ","); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64のデコードに失敗しました: %w", err)
	}
	return NewSourceImage(data, mimeType)
}

// Data は画像バイト列のコピーを返します。
func (s *SourceImage) Data() []byte {
	buf := make([]byte, len(s.data))
	copy(buf, s.data)
	return buf
}

// MIMEType は画像の MIME タイプを返します。
func (s *SourceImage) MIMEType() string {
	return s.mimeType
}

// Base64 は送信用の base64 文字列を返します。
func (s *SourceImage) Base64() string {
	return base64.StdEncoding.EncodeToString(s.data)
}

// Len は画像データのバイト長です。
func (s *SourceImage) Len() int {
	return len(s.data)
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
}

// ToSourceImage は生成結果を次の生成の入力として使える形に変換します。
// MIME が空の場合は PNG として扱います。
func (r *ImageResponse) ToSourceImage() (*SourceImage, error) {
	mimeType := r.MimeType
	if mimeType == "" {
		mimeType = MIMETypePNG
	}
	return NewSourceImage(r.Data, mimeType)
}
