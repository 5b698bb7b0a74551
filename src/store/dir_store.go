package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"buffer-pool-golang/src/common"
	"buffer-pool-golang/src/pool"
)

const pageFilePrefix = "page_"

// DirStore persists one JSON-encoded file per page id under a single
// directory, named page_<id>.
type DirStore[T any] struct {
	dir  string
	size int
}

// NewDirStore opens dir, counts the page files already there and
// materializes blank ones until at least limit are addressable.
// Existing page files are left untouched.
func NewDirStore[T any](dir string, limit int) (*DirStore[T], error) {
	stat, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	ds := &DirStore[T]{dir: dir}
	if _, err := ds.AssessSize(); err != nil {
		return nil, err
	}
	if missing := limit - ds.size; missing > 0 {
		if err := ds.Falloc(missing); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (ds *DirStore[T]) Size() int { return ds.size }

// AssessSize rescans the directory and recounts page files. Not safe
// to run against concurrent writers of the directory.
func (ds *DirStore[T]) AssessSize() (int, error) {
	entries, err := os.ReadDir(ds.dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), pageFilePrefix) {
			count++
		}
	}
	ds.size = count
	return count, nil
}

func (ds *DirStore[T]) ReadFrame(id common.PageId) (*pool.PageFrame[T], error) {
	if id < 0 || int(id) >= ds.size {
		return nil, fmt.Errorf("page %d past store capacity %d: %w", id, ds.size, common.ErrOutOfRange)
	}
	raw, err := os.ReadFile(ds.pageFileName(id))
	if err != nil {
		return nil, err
	}
	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("page %d holds a malformed payload: %w", id, common.ErrPayloadType)
	}
	return pool.NewPageFrame(payload), nil
}

func (ds *DirStore[T]) WriteFrame(id common.PageId, frame *pool.PageFrame[T]) error {
	if frame == nil {
		return fmt.Errorf("nil frame for page %d: %w", id, common.ErrPayloadType)
	}
	if id < 0 || int(id) >= ds.size {
		return fmt.Errorf("page %d past store capacity %d: %w", id, ds.size, common.ErrOutOfRange)
	}
	raw, err := json.Marshal(frame.Data())
	if err != nil {
		return fmt.Errorf("page %d payload is not encodable: %w", id, common.ErrPayloadType)
	}
	return os.WriteFile(ds.pageFileName(id), raw, 0644)
}

func (ds *DirStore[T]) Falloc(count int) error {
	prior := ds.size
	for i := 0; i < count; i++ {
		filename := ds.pageFileName(common.PageId(prior + i))
		if _, err := os.Stat(filename); err == nil {
			continue
		}
		var blank T
		raw, err := json.Marshal(blank)
		if err != nil {
			return fmt.Errorf("blank payload is not encodable: %w", common.ErrPayloadType)
		}
		if err := os.WriteFile(filename, raw, 0644); err != nil {
			return err
		}
	}
	ds.size += count
	return nil
}

func (ds *DirStore[T]) pageFileName(id common.PageId) string {
	return filepath.Join(ds.dir, fmt.Sprintf("%s%d", pageFilePrefix, id))
}
