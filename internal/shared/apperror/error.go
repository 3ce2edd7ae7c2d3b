package apperror

import "fmt"

// AppError is the one failure type that crosses component boundaries. The
// Code is the taxonomy bucket (NETWORK_ERROR, SHAPE_ERROR, ...) callers
// branch on; Message is safe to render to the user as-is.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int   // backend status; 0 when the request never completed or the outcome is local
	Err        error // underlying cause, when one exists
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap attaches a taxonomy code to an underlying failure, keeping the cause
// reachable through errors.Is/As. A nil cause yields nil, so call sites can
// wrap unconditionally.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
