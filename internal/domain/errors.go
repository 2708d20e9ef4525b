package domain

import (
	"errors"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"card_market/pkg/errcodes"
)

// AppError is an application-level error carrying a stable code.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

func (e *AppError) Description() string {
	return e.Message
}

// HTTPStatus maps the code onto the status the API replies with.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case errcodes.GameNotFound, errcodes.NotFound:
		return http.StatusNotFound
	case errcodes.InvalidAppID, errcodes.InvalidTable, errcodes.InvalidReturnColumn,
		errcodes.InvalidLimit, errcodes.InvalidHashName, errcodes.InvalidHistory, errcodes.ValidationError:
		return http.StatusBadRequest
	case errcodes.RefreshInProgress:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode extracts the code when err wraps an AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}

	return "", false
}
