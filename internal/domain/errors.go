package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
)

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	// Detail — исходный текст от внешней системы (например, message из
	// ответа BFMR), который показывается пользователю как есть.
	Detail string
	cause  error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}

	return msg
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetail сохраняет исходный текст ошибки внешней системы.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// NewError создаёт новую доменную ошибку.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// GetCode извлекает код ошибки: сначала из AppError, затем из failure.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}

	if code := failure.Code(err); code != "" {
		return code, true
	}

	return "", false
}

// GetDetail возвращает Detail ближайшей AppError в цепочке.
func GetDetail(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Detail
	}

	return ""
}

// HasCode проверяет код ошибки без учёта того, кто её создал.
func HasCode(err error, code failure.ErrorCode) bool {
	got, ok := GetCode(err)
	return ok && got == code
}
