package store

import (
	"fmt"
	"io"
	"os"

	"github.com/ncw/directio"
	log "github.com/sirupsen/logrus"

	"buffer-pool-golang/src/common"
	"buffer-pool-golang/src/pool"
)

// PageSize is the fixed on-disk page size of a BlockStore.
const PageSize = 4096

// BlockStore persists fixed-size binary pages in one file, read and
// written with direct I/O. Capacity derives from the file length, so
// AssessSize only has to re-stat the file.
type BlockStore struct {
	fileName string
	fi       *os.File
	size     int
}

func NewBlockStore(fileName string, limit int) (*BlockStore, error) {
	fi, err := directio.OpenFile(fileName, os.O_CREATE|os.O_RDWR|os.O_SYNC, 0644)
	if err != nil {
		log.WithError(err).Errorf("Cannot open file %s.", fileName)
		return nil, err
	}
	bs := &BlockStore{fileName: fileName, fi: fi}
	if _, err := bs.AssessSize(); err != nil {
		fi.Close()
		return nil, err
	}
	if missing := limit - bs.size; missing > 0 {
		if err := bs.Falloc(missing); err != nil {
			fi.Close()
			return nil, err
		}
	}
	return bs, nil
}

func (bs *BlockStore) Close() error {
	return bs.fi.Close()
}

func (bs *BlockStore) Size() int { return bs.size }

// AssessSize re-derives the page count from the physical file length.
func (bs *BlockStore) AssessSize() (int, error) {
	stat, err := bs.fi.Stat()
	if err != nil {
		return 0, err
	}
	bs.size = int(stat.Size() / PageSize)
	return bs.size, nil
}

func (bs *BlockStore) ReadFrame(id common.PageId) (*pool.PageFrame[[]byte], error) {
	if id < 0 || int(id) >= bs.size {
		return nil, fmt.Errorf("page %d past store capacity %d: %w", id, bs.size, common.ErrOutOfRange)
	}
	if _, err := bs.fi.Seek(int64(id)*PageSize, io.SeekStart); err != nil {
		return nil, err
	}
	data := directio.AlignedBlock(PageSize)
	n, err := bs.fi.Read(data)
	if err != nil {
		return nil, err
	}
	if n < PageSize {
		return nil, fmt.Errorf("read %d bytes of page %d, want %d", n, id, PageSize)
	}
	return pool.NewPageFrame(data), nil
}

func (bs *BlockStore) WriteFrame(id common.PageId, frame *pool.PageFrame[[]byte]) error {
	if frame == nil || len(frame.Data()) != PageSize {
		return fmt.Errorf("page %d payload is not a %d-byte block: %w", id, PageSize, common.ErrPayloadType)
	}
	if id < 0 || int(id) >= bs.size {
		return fmt.Errorf("page %d past store capacity %d: %w", id, bs.size, common.ErrOutOfRange)
	}
	return bs.writeBlock(id, frame.Data())
}

func (bs *BlockStore) Falloc(count int) error {
	prior := bs.size
	blank := directio.AlignedBlock(PageSize)
	for i := 0; i < count; i++ {
		if err := bs.writeBlock(common.PageId(prior+i), blank); err != nil {
			return err
		}
	}
	bs.size += count
	return nil
}

func (bs *BlockStore) writeBlock(id common.PageId, data []byte) error {
	if _, err := bs.fi.Seek(int64(id)*PageSize, io.SeekStart); err != nil {
		return err
	}
	// direct I/O needs an aligned source buffer; callers hand in
	// arbitrary slices, so stage through one.
	block := directio.AlignedBlock(PageSize)
	copy(block, data)
	if _, err := bs.fi.Write(block); err != nil {
		return err
	}
	return nil
}
