package store

import (
	"fmt"

	"buffer-pool-golang/src/common"
	"buffer-pool-golang/src/pool"
)

// MemStore keeps frames in a map with no I/O. It stands in for a
// durable store in tests and for callers that need no persistence.
type MemStore[T any] struct {
	frames map[common.PageId]T
	size   int
}

func NewMemStore[T any](limit int) *MemStore[T] {
	ms := &MemStore[T]{frames: make(map[common.PageId]T)}
	if limit > 0 {
		_ = ms.Falloc(limit)
	}
	return ms
}

func (ms *MemStore[T]) Size() int { return ms.size }

func (ms *MemStore[T]) AssessSize() (int, error) {
	ms.size = len(ms.frames)
	return ms.size, nil
}

func (ms *MemStore[T]) ReadFrame(id common.PageId) (*pool.PageFrame[T], error) {
	payload, ok := ms.frames[id]
	if !ok {
		return nil, fmt.Errorf("page %d past store capacity %d: %w", id, ms.size, common.ErrOutOfRange)
	}
	return pool.NewPageFrame(payload), nil
}

func (ms *MemStore[T]) WriteFrame(id common.PageId, frame *pool.PageFrame[T]) error {
	if frame == nil {
		return fmt.Errorf("nil frame for page %d: %w", id, common.ErrPayloadType)
	}
	if id < 0 || int(id) >= ms.size {
		return fmt.Errorf("page %d past store capacity %d: %w", id, ms.size, common.ErrOutOfRange)
	}
	ms.frames[id] = frame.Data()
	return nil
}

func (ms *MemStore[T]) Falloc(count int) error {
	prior := ms.size
	for i := 0; i < count; i++ {
		var blank T
		ms.frames[common.PageId(prior+i)] = blank
	}
	ms.size += count
	return nil
}
