// Package resource defines the tri-state envelope reported to data
// observers, and the network-bound reconciler that unifies a local live query
// with an optional remote refresh.
package resource

import "reflect"

type Status string

const (
	StatusLoading Status = "LOADING"
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Resource wraps a value with the state of the operation producing it.
// It is immutable; equality is structural.
type Resource[T any] struct {
	Status Status
	Value  T
	Err    string
}

func Loading[T any](v T) Resource[T] {
	return Resource[T]{Status: StatusLoading, Value: v}
}

func Success[T any](v T) Resource[T] {
	return Resource[T]{Status: StatusSuccess, Value: v}
}

func Error[T any](v T, msg string) Resource[T] {
	return Resource[T]{Status: StatusError, Value: v, Err: msg}
}

// Equal reports structural equality of status, value and error message.
func (r Resource[T]) Equal(o Resource[T]) bool {
	return r.Status == o.Status && r.Err == o.Err && reflect.DeepEqual(r.Value, o.Value)
}
