package pool

import (
	"container/list"
	"fmt"

	"buffer-pool-golang/src/common"
)

// RecencyTracker is an ordered, duplicate-free sequence of page ids.
// The front of the list is the most recently touched id ("top"), the
// back the least recently touched ("bottom"). Push, Delete and Pop are
// all O(1) via the element index.
type RecencyTracker struct {
	dataList list.List
	index    map[common.PageId]*list.Element
}

func NewRecencyTracker() *RecencyTracker {
	return &RecencyTracker{
		index: make(map[common.PageId]*list.Element),
	}
}

// Push moves id to the top, inserting it if absent.
func (rt *RecencyTracker) Push(id common.PageId) {
	if elem, ok := rt.index[id]; ok {
		rt.dataList.MoveToFront(elem)
		return
	}
	rt.index[id] = rt.dataList.PushFront(id)
}

// Delete removes id. Deleting an untracked id signals that the tracker
// and the pool's residency maps have diverged.
func (rt *RecencyTracker) Delete(id common.PageId) error {
	elem, ok := rt.index[id]
	if !ok {
		return fmt.Errorf("page %d is not tracked: %w", id, common.ErrEviction)
	}
	rt.dataList.Remove(elem)
	delete(rt.index, id)
	return nil
}

// Pop removes and returns the most recently touched id.
func (rt *RecencyTracker) Pop() (common.PageId, error) {
	elem := rt.dataList.Front()
	if elem == nil {
		return common.InvalidPageId, common.ErrEmptyTracker
	}
	id := elem.Value.(common.PageId)
	rt.dataList.Remove(elem)
	delete(rt.index, id)
	return id, nil
}

// Top peeks at the most recently touched id.
func (rt *RecencyTracker) Top() (common.PageId, error) {
	elem := rt.dataList.Front()
	if elem == nil {
		return common.InvalidPageId, common.ErrEmptyTracker
	}
	return elem.Value.(common.PageId), nil
}

// Bottom peeks at the least recently touched id.
func (rt *RecencyTracker) Bottom() (common.PageId, error) {
	elem := rt.dataList.Back()
	if elem == nil {
		return common.InvalidPageId, common.ErrEmptyTracker
	}
	return elem.Value.(common.PageId), nil
}

func (rt *RecencyTracker) Len() int {
	return len(rt.index)
}

// Items returns a snapshot of the tracked ids, least recently touched
// first.
func (rt *RecencyTracker) Items() []common.PageId {
	items := make([]common.PageId, 0, rt.dataList.Len())
	for elem := rt.dataList.Back(); elem != nil; elem = elem.Prev() {
		items = append(items, elem.Value.(common.PageId))
	}
	return items
}
