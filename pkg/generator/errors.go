package generator

import "errors"

// ErrorKind は生成失敗の分類です。
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindService
	KindSafetyBlocked
	KindEmptyResponse
)

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
	ErrService       = errors.New("image generation service error")
	ErrSafetyBlocked = errors.New("blocked by safety policy")
	ErrEmptyResponse = errors.New("empty response")
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindService:
		return "service"
	case KindSafetyBlocked:
		return "safety_blocked"
	case KindEmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindConfiguration:
		return ErrMissingAPIKey
	case KindService:
		return ErrService
	case KindSafetyBlocked:
		return ErrSafetyBlocked
	case KindEmptyResponse:
		return ErrEmptyResponse
	default:
		return nil
	}
}

// Error は利用者向けのメッセージと分類を持つ生成エラーです。
// errors.Is で ErrSafetyBlocked などの分類と、原因のエラーの両方を判定できます。
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func newError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf はエラーを分類します。
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	for _, k := range []ErrorKind{KindConfiguration, KindService, KindSafetyBlocked, KindEmptyResponse} {
		if errors.Is(err, k.sentinel()) {
			return k
		}
	}
	return KindUnknown
}
