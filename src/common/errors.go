package common

import "errors"

// Failure classes of the pool and its stores. Failure sites wrap these
// with context via fmt.Errorf; callers discriminate with errors.Is.
var (
	// ErrOutOfRange: page id at or past the store's current capacity.
	ErrOutOfRange = errors.New("page id out of range")
	// ErrEviction: no victim selectable, or the recency order and the
	// slot maps disagree, or a held page was evicted underneath its holder.
	ErrEviction = errors.New("eviction failed")
	// ErrPayloadType: a store was given something that is not a
	// well-formed frame payload.
	ErrPayloadType = errors.New("payload is not a valid frame")
	// ErrEmptyTracker: peek or pop on an empty recency tracker.
	ErrEmptyTracker = errors.New("recency tracker is empty")
)
