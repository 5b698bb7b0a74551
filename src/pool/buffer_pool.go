package pool

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"buffer-pool-golang/src/common"
)

// BufferPool keeps up to size frames of a FrameStore resident in
// memory. Residency bookkeeping: active maps page id to slot, reverse
// is its exact inverse, and recency tracks touch order over resident
// ids. All three move together when a frame is installed or evicted.
type BufferPool[T any] struct {
	size    int
	slots   []*PageFrame[T]
	active  map[common.PageId]int
	reverse map[int]common.PageId
	recency *RecencyTracker
	store   FrameStore[T]
	evictor Evictor[T]
	mu      sync.Mutex
}

func NewBufferPool[T any](size int, store FrameStore[T], evictor Evictor[T]) *BufferPool[T] {
	return &BufferPool[T]{
		size:    size,
		slots:   make([]*PageFrame[T], size),
		active:  make(map[common.PageId]int),
		reverse: make(map[int]common.PageId),
		recency: NewRecencyTracker(),
		store:   store,
		evictor: evictor,
	}
}

// GetPage returns the resident frame for id, loading it from the store
// on a miss. A miss against a full pool evicts first, flushing the
// victim if dirty. Every successful access counts as a touch.
func (bp *BufferPool[T]) GetPage(id common.PageId) (*PageFrame[T], error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.getPage(id)
}

// AcquirePage is GetPage plus a pin. Callers balance with ReleasePage.
func (bp *BufferPool[T]) AcquirePage(id common.PageId) (*PageFrame[T], error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.acquirePage(id)
}

// ReleasePage drops one pin from the resident frame for id. A release
// of a page that is no longer resident means it was evicted while
// logically held, which is surfaced, never swallowed.
func (bp *BufferPool[T]) ReleasePage(id common.PageId) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.releasePage(id)
}

// SetPage replaces the payload at id and writes it through to the
// store immediately. The pin taken for the write is balanced before
// returning.
func (bp *BufferPool[T]) SetPage(id common.PageId, value T) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	frame, err := bp.acquirePage(id)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := bp.releasePage(id); rerr != nil {
			log.WithError(rerr).Errorf("Cannot release page %d after write.", id)
		}
	}()
	frame.SetData(value)
	return bp.fsyncItem(id)
}

// WithPage pins the frame for id for the duration of f. The pin is
// released on every exit path, including when f fails.
func (bp *BufferPool[T]) WithPage(id common.PageId, f func(*PageFrame[T]) error) error {
	bp.mu.Lock()
	frame, err := bp.acquirePage(id)
	bp.mu.Unlock()
	if err != nil {
		return err
	}
	defer func() {
		bp.mu.Lock()
		defer bp.mu.Unlock()
		if rerr := bp.releasePage(id); rerr != nil {
			log.WithError(rerr).Errorf("Cannot release page %d.", id)
		}
	}()
	return f(frame)
}

// FsyncItem writes the resident frame for id through to the store if it
// is dirty; otherwise a no-op.
func (bp *BufferPool[T]) FsyncItem(id common.PageId) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.fsyncItem(id)
}

// Fsync flushes every dirty resident frame.
func (bp *BufferPool[T]) Fsync() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	for id := range bp.active {
		if err := bp.fsyncItem(id); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAllocation grows the store so that id becomes addressable.
// Already-addressable ids are a no-op.
func (bp *BufferPool[T]) EnsureAllocation(id common.PageId) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	missing := int(id) - (bp.store.Size() - 1)
	if missing <= 0 {
		return nil
	}
	return bp.store.Falloc(missing)
}

// Falloc extends the store capacity by exactly one page.
func (bp *BufferPool[T]) Falloc() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.store.Falloc(1)
}

// Size reports the store capacity, not the resident slot count.
func (bp *BufferPool[T]) Size() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.store.Size()
}

func (bp *BufferPool[T]) getPage(id common.PageId) (*PageFrame[T], error) {
	if id < 0 || int(id) >= bp.store.Size() {
		return nil, fmt.Errorf("page %d past store capacity %d: %w", id, bp.store.Size(), common.ErrOutOfRange)
	}
	if slot, ok := bp.active[id]; ok {
		bp.recency.Push(id)
		return bp.slots[slot], nil
	}
	if len(bp.active) == bp.size {
		if err := bp.evictOne(); err != nil {
			return nil, err
		}
	}
	slot := bp.freeSlot()
	frame, err := bp.store.ReadFrame(id)
	if err != nil {
		log.WithError(err).Warnf("Cannot read page %d from store.", id)
		return nil, err
	}
	bp.slots[slot] = frame
	bp.active[id] = slot
	bp.reverse[slot] = id
	bp.recency.Push(id)
	return frame, nil
}

func (bp *BufferPool[T]) acquirePage(id common.PageId) (*PageFrame[T], error) {
	frame, err := bp.getPage(id)
	if err != nil {
		return nil, err
	}
	frame.IncPin()
	return frame, nil
}

func (bp *BufferPool[T]) releasePage(id common.PageId) error {
	slot, ok := bp.active[id]
	if !ok {
		return fmt.Errorf("page %d was evicted while held: %w", id, common.ErrEviction)
	}
	bp.slots[slot].DecPin()
	return nil
}

func (bp *BufferPool[T]) fsyncItem(id common.PageId) error {
	slot, ok := bp.active[id]
	if !ok {
		return nil
	}
	frame := bp.slots[slot]
	if !frame.IsDirty() {
		return nil
	}
	if err := bp.store.WriteFrame(id, frame); err != nil {
		log.WithError(err).Errorf("Cannot flush page %d.", id)
		return err
	}
	frame.ClearDirty()
	return nil
}

// evictOne frees exactly one slot: selects a victim, flushes it if
// dirty, then drops it from the slot array, both maps and the tracker.
func (bp *BufferPool[T]) evictOne() error {
	victim, err := bp.evictor.Evict(bp.slots, bp.reverse, bp.recency)
	if err != nil {
		return err
	}
	victimId, ok := bp.reverse[victim]
	if !ok {
		return fmt.Errorf("victim slot %d holds no page: %w", victim, common.ErrEviction)
	}
	frame := bp.slots[victim]
	if frame.IsDirty() {
		if err := bp.store.WriteFrame(victimId, frame); err != nil {
			log.WithError(err).Errorf("Cannot write page %d back.", victimId)
			return err
		}
		frame.ClearDirty()
	}
	bp.slots[victim] = nil
	delete(bp.active, victimId)
	delete(bp.reverse, victim)
	return bp.recency.Delete(victimId)
}

func (bp *BufferPool[T]) freeSlot() int {
	for i := 0; i < bp.size; i++ {
		if bp.slots[i] == nil {
			return i
		}
	}
	// the capacity check or eviction guarantees an empty slot
	log.Panicf("No free slot after eviction.")
	return -1
}
