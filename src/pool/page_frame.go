package pool

import (
	log "github.com/sirupsen/logrus"
)

// PageFrame holds one page's payload while it is resident in memory,
// together with its pin count and dirty flag. A frame with a nonzero
// pin count must never be evicted.
type PageFrame[T any] struct {
	payload T
	pins    int
	dirty   bool
}

func NewPageFrame[T any](payload T) *PageFrame[T] {
	return &PageFrame[T]{payload: payload}
}

func (pf *PageFrame[T]) Data() T { return pf.payload }

// SetData replaces the payload and marks the frame dirty.
func (pf *PageFrame[T]) SetData(v T) {
	pf.payload = v
	pf.dirty = true
}

func (pf *PageFrame[T]) Pins() int { return pf.pins }

func (pf *PageFrame[T]) IncPin() int {
	pf.pins++
	return pf.pins
}

// DecPin panics on underflow: an unbalanced release is a programming
// error, not a recoverable condition.
func (pf *PageFrame[T]) DecPin() int {
	if pf.pins == 0 {
		log.Panicf("Pin count is already zero.")
	}
	pf.pins--
	return pf.pins
}

func (pf *PageFrame[T]) IsDirty() bool { return pf.dirty }

func (pf *PageFrame[T]) MakeDirty() { pf.dirty = true }

func (pf *PageFrame[T]) ClearDirty() { pf.dirty = false }

// WithData pins the frame and passes the payload to f. The pin is
// released on every exit path.
func (pf *PageFrame[T]) WithData(f func(T)) {
	pf.IncPin()
	defer pf.DecPin()
	f(pf.payload)
}

// WithMut pins the frame, marks it dirty and passes the payload to f
// for in-place mutation. The pin is released on every exit path,
// including when f fails.
func (pf *PageFrame[T]) WithMut(f func(*T) error) error {
	pf.IncPin()
	defer pf.DecPin()
	pf.dirty = true
	return f(&pf.payload)
}
