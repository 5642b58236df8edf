package memsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameStore_AcquireRelease(t *testing.T) {
	fs := NewFrameStore(2)
	require.Equal(t, 2, fs.Len())
	require.Equal(t, 2, fs.NumFree())

	f0, ok := fs.Acquire()
	require.True(t, ok)
	require.Equal(t, 0, f0)
	require.Equal(t, 1, fs.NumFree())

	fs.Place(f0, &ResidentDescriptor{PID: 1, Page: 0})
	require.True(t, fs.Occupied(f0))
	require.Equal(t, 1, fs.Used())

	f1, ok := fs.Acquire()
	require.True(t, ok)
	require.Equal(t, 1, f1)

	_, ok = fs.Acquire()
	require.False(t, ok)
}

func TestFrameStore_ReleaseFreesForReuse(t *testing.T) {
	fs := NewFrameStore(1)
	f, _ := fs.Acquire()
	fs.Place(f, &ResidentDescriptor{PID: 1, Page: 0})

	fs.Release(f)
	require.False(t, fs.Occupied(f))
	require.Equal(t, 1, fs.NumFree())

	f2, ok := fs.Acquire()
	require.True(t, ok)
	require.Equal(t, f, f2)
}

func TestFrameStore_DoubleReleasePanics(t *testing.T) {
	fs := NewFrameStore(1)
	f, _ := fs.Acquire()
	fs.Place(f, &ResidentDescriptor{PID: 1, Page: 0})
	fs.Release(f)
	require.Panics(t, func() { fs.Release(f) })
}

func TestFrameStore_ZeroCapacity(t *testing.T) {
	fs := NewFrameStore(0)
	require.Equal(t, 0, fs.Len())
	_, ok := fs.Acquire()
	require.False(t, ok)
}
