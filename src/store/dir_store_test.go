package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"buffer-pool-golang/src/common"
	"buffer-pool-golang/src/pool"
)

func TestNewDirStore_PicksUpExistingPages(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "page_0"), []byte(`"aleph bet gimel"`), 0644))

	ds, err := NewDirStore[string](dir, 2)
	require.Nil(t, err)
	require.Equal(t, 2, ds.Size())

	frame, err := ds.ReadFrame(common.PageId(0))
	require.Nil(t, err)
	require.Equal(t, "aleph bet gimel", frame.Data())

	// the fallocated page is blank, not missing
	frame, err = ds.ReadFrame(common.PageId(1))
	require.Nil(t, err)
	require.Equal(t, "", frame.Data())
}

func TestNewDirStore_MissingDirectory(t *testing.T) {
	_, err := NewDirStore[string](filepath.Join(t.TempDir(), "nope"), 2)
	require.NotNil(t, err)
}

func TestDirStore_ReadWrite(t *testing.T) {
	ds, err := NewDirStore[map[string]bool](t.TempDir(), 2)
	require.Nil(t, err)

	payload := map[string]bool{"index": true}
	require.Nil(t, ds.WriteFrame(common.PageId(1), pool.NewPageFrame(payload)))
	frame, err := ds.ReadFrame(common.PageId(1))
	require.Nil(t, err)
	require.Equal(t, payload, frame.Data())
}

func TestDirStore_OutOfRange(t *testing.T) {
	ds, err := NewDirStore[string](t.TempDir(), 2)
	require.Nil(t, err)

	_, err = ds.ReadFrame(common.PageId(2))
	require.True(t, errors.Is(err, common.ErrOutOfRange))
	err = ds.WriteFrame(common.PageId(2), pool.NewPageFrame("x"))
	require.True(t, errors.Is(err, common.ErrOutOfRange))
}

func TestDirStore_NilFrame(t *testing.T) {
	ds, err := NewDirStore[string](t.TempDir(), 2)
	require.Nil(t, err)

	err = ds.WriteFrame(common.PageId(0), nil)
	require.True(t, errors.Is(err, common.ErrPayloadType))
}

func TestDirStore_AssessSize(t *testing.T) {
	dir := t.TempDir()
	ds, err := NewDirStore[string](dir, 2)
	require.Nil(t, err)

	// a page created behind the store's back
	require.Nil(t, os.WriteFile(filepath.Join(dir, "page_2"), []byte(`"late"`), 0644))
	// unrelated files don't count
	require.Nil(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	size, err := ds.AssessSize()
	require.Nil(t, err)
	require.Equal(t, 3, size)

	frame, err := ds.ReadFrame(common.PageId(2))
	require.Nil(t, err)
	require.Equal(t, "late", frame.Data())
}

func TestDirStore_FallocKeepsExistingPages(t *testing.T) {
	dir := t.TempDir()
	ds, err := NewDirStore[string](dir, 1)
	require.Nil(t, err)
	require.Nil(t, ds.WriteFrame(common.PageId(0), pool.NewPageFrame("keep me")))

	require.Nil(t, os.WriteFile(filepath.Join(dir, "page_1"), []byte(`"also keep"`), 0644))
	require.Nil(t, ds.Falloc(2))
	require.Equal(t, 3, ds.Size())

	frame, err := ds.ReadFrame(common.PageId(0))
	require.Nil(t, err)
	require.Equal(t, "keep me", frame.Data())
	frame, err = ds.ReadFrame(common.PageId(1))
	require.Nil(t, err)
	require.Equal(t, "also keep", frame.Data())
	frame, err = ds.ReadFrame(common.PageId(2))
	require.Nil(t, err)
	require.Equal(t, "", frame.Data())
}
