package outcome

import (
	"fmt"

	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/apperror"
	"anoa.com/leadercircle/pkg/logger"
)

// Outcome is either a value or an *apperror.AppError, never both.
type Outcome[T any] struct {
	value T
	err   *apperror.AppError
}

func Success[T any](value T) Outcome[T] {
	return Outcome[T]{value: value}
}

// Failure wraps err. A nil err still produces a failure so the union stays total.
func Failure[T any](err error) Outcome[T] {
	appErr := apperror.FromError("", err)
	if appErr == nil {
		appErr = apperror.New(apperror.KindTransport, "", "unknown error", nil)
	}
	return Outcome[T]{err: appErr}
}

func (o Outcome[T]) IsSuccess() bool {
	return o.err == nil
}

// Value returns the success value and true, or the zero value and false.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.err == nil
}

// Err returns the failure, or nil on success.
func (o Outcome[T]) Err() error {
	if o.err == nil {
		return nil
	}
	return o.err
}

// Message is the user-facing failure text, "" on success.
func (o Outcome[T]) Message() string {
	if o.err == nil {
		return ""
	}
	return o.err.Message
}

// Fold calls exactly one of the two functions.
func (o Outcome[T]) Fold(onSuccess func(T), onFailure func(*apperror.AppError)) {
	if o.err == nil {
		if onSuccess != nil {
			onSuccess(o.value)
		}
		return
	}
	if onFailure != nil {
		onFailure(o.err)
	}
}

// Map converts a success value, passing failures through untouched.
func Map[T, U any](o Outcome[T], fn func(T) U) Outcome[U] {
	if o.err != nil {
		return Outcome[U]{err: o.err}
	}
	return Success(fn(o.value))
}

// Op names a repository operation for failure messages.
type Op struct {
	// Name appears in status failures: "<Name> failed: <status>".
	Name string
	// Entity appears in empty-result failures: "<Entity> not found".
	Entity string
}

// Execute runs one gateway call and maps every way it can end onto an Outcome.
// Nothing the call does, including panicking, escapes.
func Execute[T any](op Op, call func() (*transport.Response[T], error)) (result Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			err := apperror.New(apperror.KindTransport, op.Name, fmt.Sprint(r), nil)
			result = fail[T](err)
		}
	}()

	resp, err := call()
	if err != nil {
		return fail[T](apperror.New(apperror.KindTransport, op.Name, err.Error(), err))
	}
	if resp == nil {
		return fail[T](apperror.New(apperror.KindTransport, op.Name, op.Name+" failed: no response", nil))
	}
	if !resp.Successful() {
		appErr := apperror.New(apperror.KindStatus, op.Name, fmt.Sprintf("%s failed: %s", op.Name, resp.Status), nil)
		appErr.StatusCode = resp.StatusCode
		return fail[T](appErr)
	}
	if resp.Body == nil {
		return fail[T](apperror.New(apperror.KindEmpty, op.Name, emptyMessage(op), nil))
	}
	return Success(*resp.Body)
}

// Acknowledge runs a call whose response body is not needed. Any 2xx counts
// as success, including an empty 200 or a 204.
func Acknowledge[T any](op Op, call func() (*transport.Response[T], error)) Outcome[struct{}] {
	return Execute(op, func() (*transport.Response[struct{}], error) {
		resp, err := call()
		if err != nil || resp == nil {
			return nil, err
		}
		return &transport.Response[struct{}]{StatusCode: resp.StatusCode, Status: resp.Status, Body: &struct{}{}}, nil
	})
}

// Invalid is the outcome for a request rejected before it was sent.
func Invalid[T any](op Op, err error) Outcome[T] {
	return fail[T](apperror.New(apperror.KindValidation, op.Name, err.Error(), err))
}

func emptyMessage(op Op) string {
	entity := op.Entity
	if entity == "" {
		entity = "Result"
	}
	return entity + " not found"
}

func fail[T any](err *apperror.AppError) Outcome[T] {
	logger.Warn().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Int("status", err.StatusCode).
		Msg(err.Message)
	return Outcome[T]{err: err}
}
