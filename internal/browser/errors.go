package browser

import (
	"context"
	"errors"
)

// Error codes for browser failures.
const (
	ErrCodeRenderFailed    = "RENDER_FAILED"
	ErrCodeRenderTimeout   = "RENDER_TIMEOUT"
	ErrCodeElementNotFound = "ELEMENT_NOT_FOUND"
	ErrCodeStorageFailed   = "STORAGE_FAILED"
)

// RenderError is a browser failure with a stable code.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a RenderError.
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

// Code returns the RenderError code in err's chain, or "".
func Code(err error) string {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func wrap(ctx context.Context, message string, err error) error {
	if err == nil {
		return nil
	}
	var re *RenderError
	if errors.As(err, &re) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return NewRenderError(ErrCodeRenderTimeout, message+" timed out", err)
	}
	return NewRenderError(ErrCodeRenderFailed, message, err)
}
