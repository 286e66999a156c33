package remote

import (
	"fmt"
	"net/http"
)

// Response is the uniform outcome of one remote call. Transport failures
// (DNS, timeout, refused connection) are synthesized into a 500-equivalent so
// downstream logic tests against a single failure shape.
type Response[T any] struct {
	Code    int
	Body    T
	Message string
}

// OK reports whether the call reached the server and succeeded.
func (r Response[T]) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

// Errorf builds a synthesized failure response.
func Errorf[T any](format string, args ...any) Response[T] {
	return Response[T]{Code: http.StatusInternalServerError, Message: fmt.Sprintf(format, args...)}
}
