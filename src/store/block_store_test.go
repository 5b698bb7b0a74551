package store

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/ncw/directio"
	"github.com/stretchr/testify/require"

	"buffer-pool-golang/src/common"
	"buffer-pool-golang/src/pool"
)

func TestNewBlockStore(t *testing.T) {
	bs, err := NewBlockStore(filepath.Join(t.TempDir(), "pages"), 4)
	require.Nil(t, err)
	defer bs.Close()

	require.Equal(t, 4, bs.Size())
	for i := 0; i < 4; i++ {
		frame, err := bs.ReadFrame(common.PageId(i))
		require.Nil(t, err)
		require.Equal(t, PageSize, len(frame.Data()))
	}
}

func TestBlockStore_Persistence(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "pages")
	allDatas := make([][]byte, 0)
	{
		bs, err := NewBlockStore(fileName, 4)
		require.Nil(t, err)

		for i := 0; i < 4; i++ {
			data := directio.AlignedBlock(PageSize)
			rand.Read(data)
			allDatas = append(allDatas, data)
			require.Nil(t, bs.WriteFrame(common.PageId(i), pool.NewPageFrame(data)))
		}
		require.Nil(t, bs.Close())
	}
	{
		// open the file again, check if data persists
		bs, err := NewBlockStore(fileName, 0)
		require.Nil(t, err)
		defer bs.Close()

		require.Equal(t, 4, bs.Size())
		for i := 0; i < 4; i++ {
			frame, err := bs.ReadFrame(common.PageId(i))
			require.Nil(t, err)
			require.Equal(t, allDatas[i], frame.Data())
		}
	}
}

func TestBlockStore_OutOfRange(t *testing.T) {
	bs, err := NewBlockStore(filepath.Join(t.TempDir(), "pages"), 2)
	require.Nil(t, err)
	defer bs.Close()

	_, err = bs.ReadFrame(common.PageId(2))
	require.True(t, errors.Is(err, common.ErrOutOfRange))

	data := directio.AlignedBlock(PageSize)
	err = bs.WriteFrame(common.PageId(2), pool.NewPageFrame(data))
	require.True(t, errors.Is(err, common.ErrOutOfRange))
}

func TestBlockStore_RejectsMissizedPayload(t *testing.T) {
	bs, err := NewBlockStore(filepath.Join(t.TempDir(), "pages"), 2)
	require.Nil(t, err)
	defer bs.Close()

	err = bs.WriteFrame(common.PageId(0), pool.NewPageFrame([]byte("too short")))
	require.True(t, errors.Is(err, common.ErrPayloadType))
	err = bs.WriteFrame(common.PageId(0), nil)
	require.True(t, errors.Is(err, common.ErrPayloadType))
}

func TestBlockStore_AssessSize(t *testing.T) {
	bs, err := NewBlockStore(filepath.Join(t.TempDir(), "pages"), 3)
	require.Nil(t, err)
	defer bs.Close()

	require.Nil(t, bs.Falloc(2))
	size, err := bs.AssessSize()
	require.Nil(t, err)
	require.Equal(t, 5, size)
}
