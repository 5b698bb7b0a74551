package pool

import "buffer-pool-golang/src/common"

// FrameStore is an addressable, growable collection of pages on a
// backing medium. Identifiers run over [0, Size()); every identifier in
// that range is readable, possibly as a blank frame. Capacity only grows.
type FrameStore[T any] interface {
	// Size returns the cached addressable capacity.
	Size() int
	// AssessSize recomputes the capacity from the physical backing
	// medium. A recovery operation, not part of the hot path, and not
	// safe against concurrent writers of the medium.
	AssessSize() (int, error)
	ReadFrame(id common.PageId) (*PageFrame[T], error)
	WriteFrame(id common.PageId, frame *PageFrame[T]) error
	// Falloc extends the capacity by count blank frames without
	// disturbing already-materialized identifiers.
	Falloc(count int) error
}
