package colbuf

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorPropagatesOutOfMemory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr := NewMockBufferManager(ctrl)
	mgr.EXPECT().Allocate(1024).Return(BlockID(0), errors.New("backing store exhausted"))

	alloc := NewAllocator(mgr, nil)
	_, err := alloc.Allocate(1024)
	require.Error(t, err)
	assert.Equal(t, "backing store exhausted", err.Error())
}

func TestAllocatorPinUnpinDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr := NewMockBufferManager(ctrl)
	mgr.EXPECT().Allocate(8).Return(BlockID(7), nil)
	mgr.EXPECT().Pin(BlockID(7)).Return([]byte{1, 2, 3}, nil)
	mgr.EXPECT().Unpin(BlockID(7))

	alloc := NewAllocator(mgr, nil)
	block, err := alloc.Allocate(8)
	require.NoError(t, err)
	assert.Equal(t, BlockID(7), block)

	data, err := alloc.Pin(block)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	alloc.Unpin(block)
}

func TestRawHeapManagerCapacity(t *testing.T) {
	mgr := NewRawHeapManager(16)
	id, err := mgr.Allocate(10)
	require.NoError(t, err)

	_, err = mgr.Allocate(10)
	require.Error(t, err)
	var oom *OutOfMemoryError
	require.ErrorAs(t, err, &oom)

	mgr.Release(id)
	_, err = mgr.Allocate(10)
	require.NoError(t, err)
}

func TestRawHeapManagerPinUnknownBlock(t *testing.T) {
	mgr := NewRawHeapManager(0)
	_, err := mgr.Pin(BlockID(999))
	require.Error(t, err)
	var invalid *InvalidBlockError
	require.ErrorAs(t, err, &invalid)
}

func TestPinCacheReusesHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr := NewMockBufferManager(ctrl)
	mgr.EXPECT().Pin(BlockID(3)).Return([]byte{9}, nil).Times(1)
	mgr.EXPECT().Unpin(BlockID(3)).Times(1)

	alloc := NewAllocator(mgr, nil)
	cache := NewPinCache(alloc)

	for i := 0; i < 3; i++ {
		data, err := cache.Pin(BlockID(3))
		require.NoError(t, err)
		assert.Equal(t, []byte{9}, data)
	}
	cache.Clear()
}

func TestLRUBufferManagerEvictsAndReloads(t *testing.T) {
	mgr, err := NewLRUBufferManager(1, nil)
	require.NoError(t, err)

	a, err := mgr.Allocate(4)
	require.NoError(t, err)
	b, err := mgr.Allocate(4)
	require.NoError(t, err)

	// a was evicted from the warm cache by b's insert (capacity 1), but
	// Pin must still succeed by reloading from backing storage.
	data, err := mgr.Pin(a)
	require.NoError(t, err)
	assert.Len(t, data, 4)
	mgr.Unpin(a)

	data, err = mgr.Pin(b)
	require.NoError(t, err)
	assert.Len(t, data, 4)
	mgr.Unpin(b)
}
