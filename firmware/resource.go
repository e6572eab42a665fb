package firmware

import "sync"

// Resource owns a value shared between the tick and the USB interrupts.
//
// On the controller this is a priority-ceiling section: while the closure
// runs, no activity that also uses the resource can preempt it. On a
// hosted build the ceiling is a mutex. Closures must be short and must
// not block.
type Resource[T any] struct {
	mu sync.Mutex
	v  T
}

// NewResource wraps v.
func NewResource[T any](v T) *Resource[T] {
	return &Resource[T]{v: v}
}

// WithExclusiveAccess runs f with the resource held.
func (r *Resource[T]) WithExclusiveAccess(f func(v T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f(r.v)
}
