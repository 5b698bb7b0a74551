package pool

import "buffer-pool-golang/src/common"

// SlabMapper lays a flat record sequence across fixed-stride pages, one
// stride-sized chunk per page id starting at 0. The round trip through
// Flush and Load is exact only when the sequence length is a multiple
// of the stride.
type SlabMapper[R any] struct {
	bp     *BufferPool[[]R]
	stride int
}

func NewSlabMapper[R any](bp *BufferPool[[]R], stride int) *SlabMapper[R] {
	return &SlabMapper[R]{bp: bp, stride: stride}
}

// Flush writes seq across consecutive pages, growing the backing
// allocation first. A trailing remainder of fewer than stride records
// is dropped, not written.
func (sm *SlabMapper[R]) Flush(seq []R) error {
	required := len(seq) / sm.stride
	if required > 0 {
		if err := sm.bp.EnsureAllocation(common.PageId(required - 1)); err != nil {
			return err
		}
	}
	for i := 0; i < required; i++ {
		chunk := seq[i*sm.stride : (i+1)*sm.stride]
		if err := sm.bp.SetPage(common.PageId(i), chunk); err != nil {
			return err
		}
	}
	return nil
}

// Load concatenates every page payload from 0 to Size()-1 back into a
// flat sequence.
func (sm *SlabMapper[R]) Load() ([]R, error) {
	result := make([]R, 0, sm.bp.Size()*sm.stride)
	for i := 0; i < sm.bp.Size(); i++ {
		frame, err := sm.bp.GetPage(common.PageId(i))
		if err != nil {
			return nil, err
		}
		result = append(result, frame.Data()...)
	}
	return result, nil
}
