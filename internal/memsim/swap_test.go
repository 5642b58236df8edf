package memsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwapStore_AcquireRelease(t *testing.T) {
	ss := NewSwapStore(2)
	require.Equal(t, 2, ss.NumFree())

	s0, ok := ss.Acquire()
	require.True(t, ok)
	ss.Place(s0, &SwappedDescriptor{PID: 1, Page: 0, StoredAt: 5})
	require.True(t, ss.Occupied(s0))
	require.Equal(t, PID(1), ss.Get(s0).PID)

	ss.Release(s0)
	require.False(t, ss.Occupied(s0))
	require.Equal(t, 2, ss.NumFree())
}

func TestSwapStore_ExhaustionReturnsFalse(t *testing.T) {
	ss := NewSwapStore(1)
	_, ok := ss.Acquire()
	require.True(t, ok)
	_, ok = ss.Acquire()
	require.False(t, ok)
}

func TestSwapStore_DoubleReleasePanics(t *testing.T) {
	ss := NewSwapStore(1)
	s, _ := ss.Acquire()
	ss.Place(s, &SwappedDescriptor{PID: 1})
	ss.Release(s)
	require.Panics(t, func() { ss.Release(s) })
}
