package response

import (
	"fmt"
	"net/http"
)

// Outcome is the closed set of results a network operation can produce.
// Exactly one variant applies per outcome. The unexported method keeps the
// variant set owned by this package; callers switching on the concrete type
// should still keep a default branch to stay safe against future variants.
type Outcome[T any] interface {
	outcome()
}

// Failure is implemented by the error-producing outcome variants:
// ServerError, NetworkError and UnknownError. It lets callers collapse an
// outcome to "success vs any error" without enumerating variants.
type Failure interface {
	// Err returns the error describing the failure.
	Err() error
}

// Success carries a decoded response with a 2xx status code.
type Success[T any] struct {
	Body    T
	Headers http.Header
	Code    int
}

func (Success[T]) outcome() {}

// ServerError carries a response with a 4xx-5xx status code. Body holds the
// decoded error payload, or nil when the payload could not be decoded.
type ServerError[T any] struct {
	Body    any
	Code    int
	Headers http.Header
}

func (ServerError[T]) outcome() {}

// Err implements Failure.
func (e ServerError[T]) Err() error {
	return fmt.Errorf("server error: status=%d", e.Code)
}

// NetworkError signals a transport-level failure (timeout, DNS, connection
// refused) where no response was obtained. There is no status code.
type NetworkError[T any] struct {
	Cause error
}

func (NetworkError[T]) outcome() {}

// Err implements Failure.
func (e NetworkError[T]) Err() error {
	return e.Cause
}

// UnknownError covers any other failure, such as a body decode failure on a
// 2xx response. Code and Headers are preserved when they were available
// before the failure occurred; Code is 0 otherwise.
type UnknownError[T any] struct {
	Cause   error
	Code    int
	Headers http.Header
}

func (UnknownError[T]) outcome() {}

// Err implements Failure.
func (e UnknownError[T]) Err() error {
	return e.Cause
}

// IsSuccess reports whether the outcome is a Success.
func IsSuccess[T any](o Outcome[T]) bool {
	_, ok := o.(Success[T])
	return ok
}

// IsFailure reports whether the outcome is one of the error variants.
func IsFailure[T any](o Outcome[T]) bool {
	_, ok := o.(Failure)
	return ok
}

// AsFailure returns the outcome as a Failure when it is one of the error
// variants.
func AsFailure[T any](o Outcome[T]) (Failure, bool) {
	f, ok := o.(Failure)
	return f, ok
}
