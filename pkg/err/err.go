package errprocess

import (
	"errors"
	"net/http"

	"short_video_service/pkg/logger"
)

// Kind 錯誤分類, 決定對外的 HTTP status
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInvalidInput    Kind = "invalid_input"
	KindInternal        Kind = "internal"
)

// AppError 帶分類的業務錯誤
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 建立指定分類的錯誤
func New(kind Kind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

// Wrap 保留底層錯誤
func Wrap(kind Kind, msg string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

func Unauthenticated(msg string) *AppError { return New(KindUnauthenticated, msg) }
func Forbidden(msg string) *AppError       { return New(KindForbidden, msg) }
func NotFound(msg string) *AppError        { return New(KindNotFound, msg) }
func Conflict(msg string) *AppError        { return New(KindConflict, msg) }
func InvalidInput(msg string) *AppError    { return New(KindInvalidInput, msg) }

// Internal 記錄底層錯誤後回傳 internal 分類
func Internal(msg string, err error) *AppError {
	logger.Log.Errorf(msg, err)
	return Wrap(KindInternal, msg, err)
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return New(KindInternal, errMsg)
}

// Classify 已分類的錯誤原樣回傳, 其他包成 Internal
func Classify(err error, msg string) error {
	if err == nil || KindOf(err) != KindInternal {
		return err
	}
	return Internal(msg, err)
}

// KindOf 取出錯誤分類, 未分類一律視為 internal
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is 判斷錯誤是否屬於指定分類
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf 對外訊息; internal 不洩漏細節
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal server error"
}

// HTTPStatus kind 對應的 status code
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
