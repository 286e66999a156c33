// Package livedata implements a small push-based observable: a value holder
// that replays its latest value to new observers and notifies them of every
// subsequent change. It is the delivery mechanism for local-store live
// queries and for the network-bound resource stream.
package livedata

import "sync"

// LiveData holds a current value of type T and a set of observers. Delivery
// is synchronous on the goroutine calling Set; observer callbacks must be
// cheap and non-blocking.
type LiveData[T any] struct {
	mu         sync.Mutex
	value      T
	valid      bool
	nextID     int
	observers  map[int]func(T)
	onInactive func()
	everActive bool
}

func New[T any]() *LiveData[T] {
	return &LiveData[T]{observers: make(map[int]func(T))}
}

func NewWithValue[T any](v T) *LiveData[T] {
	d := New[T]()
	d.value = v
	d.valid = true
	return d
}

// Set stores v as the current value and delivers it to every observer.
func (d *LiveData[T]) Set(v T) {
	d.mu.Lock()
	d.value = v
	d.valid = true
	fns := make([]func(T), 0, len(d.observers))
	for _, fn := range d.observers {
		fns = append(fns, fn)
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Value returns the current value and whether one has been set.
func (d *LiveData[T]) Value() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.valid
}

// Observe registers fn and, if a value is already present, delivers it
// synchronously before returning. The returned function cancels the
// subscription; it is safe to call more than once. When the last observer is
// cancelled the OnInactive hook fires, releasing upstream resources.
func (d *LiveData[T]) Observe(fn func(T)) (cancel func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.observers[id] = fn
	d.everActive = true
	v, valid := d.value, d.valid
	d.mu.Unlock()

	if valid {
		fn(v)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.observers, id)
			inactive := len(d.observers) == 0
			hook := d.onInactive
			d.mu.Unlock()

			if inactive && hook != nil {
				hook()
			}
		})
	}
}

// SetOnInactive registers a teardown hook invoked when the observer count
// drops to zero. When the data has already had observers and lost them all,
// fn fires immediately instead of being stored, so hooks installed after a
// late teardown still release their upstream.
func (d *LiveData[T]) SetOnInactive(fn func()) {
	d.mu.Lock()
	if d.everActive && len(d.observers) == 0 {
		d.mu.Unlock()
		fn()
		return
	}
	d.onInactive = fn
	d.mu.Unlock()
}

// ObserverCount reports the number of active observers.
func (d *LiveData[T]) ObserverCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.observers)
}
