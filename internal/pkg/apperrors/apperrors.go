// Package apperrors defines the service error taxonomy. Every error crossing
// a layer boundary is an *Errno so handlers can map it to an HTTP status and
// the worker can decide whether a step is worth retrying.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Errno is a coded error with an associated HTTP status.
type Errno struct {
	Code    int    `json:"code"`
	HTTP    int    `json:"-"`
	Message string `json:"message"`

	cause error
}

// Error implements the error interface.
func (e *Errno) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Errno) Unwrap() error {
	return e.cause
}

// Is matches two Errnos by code, so sentinel comparison survives WithMessage
// and Wrap copies.
func (e *Errno) Is(target error) bool {
	var t *Errno
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMessage returns a copy of the Errno with a different message.
func (e *Errno) WithMessage(format string, args ...any) *Errno {
	return &Errno{Code: e.Code, HTTP: e.HTTP, Message: fmt.Sprintf(format, args...), cause: e.cause}
}

// Wrap returns a copy of the Errno carrying err as its cause.
func (e *Errno) Wrap(err error) *Errno {
	return &Errno{Code: e.Code, HTTP: e.HTTP, Message: e.Message, cause: err}
}

// Predefined error categories. Codes are stable and part of the API surface.
var (
	// ErrInternal is the fallback for unclassified failures.
	ErrInternal = &Errno{Code: 10001, HTTP: http.StatusInternalServerError, Message: "internal server error"}

	// ErrValidation rejects malformed caller input.
	ErrValidation = &Errno{Code: 10002, HTTP: http.StatusBadRequest, Message: "invalid request"}

	// ErrNotFound reports a missing mentor or video.
	ErrNotFound = &Errno{Code: 10003, HTTP: http.StatusNotFound, Message: "resource not found"}

	// ErrConflict rejects an enqueue while the video is already in flight.
	ErrConflict = &Errno{Code: 10004, HTTP: http.StatusConflict, Message: "operation conflicts with current state"}

	// ErrEmbeddingProvider wraps failures of the embedding backend.
	ErrEmbeddingProvider = &Errno{Code: 10101, HTTP: http.StatusBadGateway, Message: "embedding provider error"}

	// ErrGenerationProvider wraps failures of the text-generation backend.
	ErrGenerationProvider = &Errno{Code: 10102, HTTP: http.StatusBadGateway, Message: "generation provider error"}

	// ErrProcessingFailed reports a non-provider pipeline failure.
	ErrProcessingFailed = &Errno{Code: 10103, HTTP: http.StatusInternalServerError, Message: "video processing failed"}

	// ErrUnavailable reports that background processing could not be scheduled.
	ErrUnavailable = &Errno{Code: 10104, HTTP: http.StatusServiceUnavailable, Message: "service temporarily unavailable"}
)

// FromError coerces any error into an *Errno, defaulting to ErrInternal.
func FromError(err error) *Errno {
	if err == nil {
		return nil
	}
	var e *Errno
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal.WithMessage("%s", err.Error())
}

// IsRetryable reports whether a pipeline step failed in a way that a retry
// could fix. Only provider-side failures qualify; bad input and missing
// resources never do.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrEmbeddingProvider) || errors.Is(err, ErrGenerationProvider)
}
