package generator

const (
	// DefaultModel は画像生成に使うモデルの既定値です。
	DefaultModel = "gemini-2.5-flash-image"

	cacheKeySourceURL = "source_url:"
)

// Config は GeminiGenerator の設定です。API キーは呼び出し時に環境変数から読まず、
// 構築時に明示的に渡します。
type Config struct {
	APIKey string
	Model  string
	// Temperature が nil の場合はサービス側の既定値を使います。
	Temperature *float32
}

// failureMessages は操作ごとに利用者へ見せるエラーメッセージです。
type failureMessages struct {
	service string
	safety  string
	empty   string
}

var (
	generateMessages = failureMessages{
		service: "An unknown error occurred with the Gemini API.",
		safety:  "Image generation failed due to safety settings. Please modify your prompt and try again.",
		empty:   "No image was generated. The response may be empty.",
	}
	upscaleMessages = failureMessages{
		service: "An unknown error occurred with the Gemini API during upscaling.",
		safety:  "Image upscaling failed due to safety settings.",
		empty:   "No upscaled image was generated.",
	}
)
