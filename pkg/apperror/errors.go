package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrTransport  = errors.New("transport failure")
	ErrStatus     = errors.New("unsuccessful response")
	ErrEmpty      = errors.New("empty result")
	ErrValidation = errors.New("invalid input")
)

// Kind classifies a failure observed at the repository boundary.
type Kind int

const (
	// KindTransport covers connectivity, timeout, serialization and recovered panics.
	KindTransport Kind = iota
	// KindStatus is a non-2xx response from the API.
	KindStatus
	// KindEmpty is a 2xx response without the body the operation expected.
	KindEmpty
	// KindValidation is a request rejected before it was sent.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindEmpty:
		return "empty"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindStatus:
		return ErrStatus
	case KindEmpty:
		return ErrEmpty
	case KindValidation:
		return ErrValidation
	default:
		return ErrTransport
	}
}

// AppError is the single failure type handed to state controllers.
// Message is what screens display; StatusCode is zero unless Kind is KindStatus.
type AppError struct {
	Kind       Kind
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind so callers can use errors.Is(err, ErrEmpty).
func (e *AppError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// New creates a new AppError
func New(kind Kind, op, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// FromError converts any error into an AppError, keeping it when it already is one.
func FromError(op string, err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(KindTransport, op, err.Error(), err)
}

func statusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind == KindStatus {
		return appErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound || errors.Is(err, ErrEmpty)
}

func IsConflict(err error) bool {
	return statusOf(err) == http.StatusConflict
}
