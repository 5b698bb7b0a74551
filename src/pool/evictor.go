package pool

import (
	"fmt"
	"math/rand"

	"buffer-pool-golang/src/common"
)

// Evictor picks the slot to reclaim when the pool is full. An evictor
// only selects; the pool flushes and tears down the victim. A slot
// whose frame is pinned must never be selected.
type Evictor[T any] interface {
	Evict(slots []*PageFrame[T], reverse map[int]common.PageId, recency *RecencyTracker) (int, error)
}

const randomEvictRetriesPerSlot = 8

// RandomEvictor samples slots uniformly until it hits an unpinned one.
// Sampling is bounded; with every slot pinned it fails instead of
// spinning forever.
type RandomEvictor[T any] struct{}

func (RandomEvictor[T]) Evict(slots []*PageFrame[T], _ map[int]common.PageId, _ *RecencyTracker) (int, error) {
	for i := 0; i < randomEvictRetriesPerSlot*len(slots); i++ {
		candidate := rand.Intn(len(slots))
		if slots[candidate] != nil && slots[candidate].Pins() == 0 {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("no unpinned slot among %d after bounded sampling: %w", len(slots), common.ErrEviction)
}

// BottomEvictor selects the least recently touched resident page,
// walking up the recency order past pinned frames.
type BottomEvictor[T any] struct{}

func (BottomEvictor[T]) Evict(slots []*PageFrame[T], reverse map[int]common.PageId, recency *RecencyTracker) (int, error) {
	for _, pageId := range recency.Items() {
		slot := -1
		for idx, id := range reverse {
			if id == pageId {
				slot = idx
				break
			}
		}
		if slot < 0 {
			return 0, fmt.Errorf("page %d is tracked but resident in no slot: %w", pageId, common.ErrEviction)
		}
		if slots[slot].Pins() == 0 {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("every resident page is pinned: %w", common.ErrEviction)
}
