package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUsage            = errors.New("invalid usage")
	ErrDirectoryScan    = errors.New("directory scan failed")
	ErrDocumentRead     = errors.New("document read failed")
	ErrStoreUnavailable = errors.New("corpus store unavailable")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
)

type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, message string) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: message,
	}
}

func Newf(sentinel error, format string, args ...any) *AppError {
	return &AppError{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// Category labels err for diagnostics and the runs metric.
func Category(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUsage), errors.Is(err, ErrInvalidInput):
		return "usage"
	case errors.Is(err, ErrDirectoryScan):
		return "scan"
	case errors.Is(err, ErrDocumentRead):
		return "read"
	case errors.Is(err, ErrStoreUnavailable):
		return "store"
	default:
		return "internal"
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
