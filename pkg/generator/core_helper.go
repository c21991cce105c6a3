package generator

import (
	"github.com/shouni/gemini-image-studio/pkg/domain"

	"google.golang.org/genai"
)

func toPart(img *domain.SourceImage) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: img.MIMEType(), Data: img.Data()}}
}

// parseToResponse は最初の候補から画像データを持つ最初のパートを取り出します。
// 画像が無い場合は、安全性によるブロックかどうかでエラーを分けます。
func parseToResponse(raw *genai.GenerateContentResponse, msgs failureMessages) (*domain.ImageResponse, error) {
	if raw == nil {
		return nil, newError(KindEmptyResponse, msgs.empty, nil)
	}

	if len(raw.Candidates) == 0 || raw.Candidates[0] == nil {
		if promptBlocked(raw) {
			return nil, newError(KindSafetyBlocked, msgs.safety, nil)
		}
		return nil, newError(KindEmptyResponse, msgs.empty, nil)
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := raw.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mimeType := part.InlineData.MIMEType
				if mimeType == "" {
					mimeType = domain.MIMETypePNG
				}
				return &domain.ImageResponse{Data: part.InlineData.Data, MimeType: mimeType}, nil
			}
		}
	}

	if candidateBlocked(candidate) || promptBlocked(raw) {
		return nil, newError(KindSafetyBlocked, msgs.safety, nil)
	}
	return nil, newError(KindEmptyResponse, msgs.empty, nil)
}

func candidateBlocked(c *genai.Candidate) bool {
	for _, r := range c.SafetyRatings {
		if r != nil && r.Blocked {
			return true
		}
	}
	switch c.FinishReason {
	case genai.FinishReasonSafety,
		genai.FinishReasonImageSafety,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonImageProhibitedContent,
		genai.FinishReasonBlocklist,
		genai.FinishReasonSPII:
		return true
	}
	return false
}

func promptBlocked(raw *genai.GenerateContentResponse) bool {
	pf := raw.PromptFeedback
	return pf != nil && pf.BlockReason != "" && pf.BlockReason != genai.BlockedReasonUnspecified
}
