package memsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTLB_InsertAndLookup(t *testing.T) {
	tlb := NewTLB(2)
	tlb.Insert(1, 0, 5)

	frame, hit := tlb.Lookup(1, 0)
	require.True(t, hit)
	require.Equal(t, 5, frame)

	_, hit = tlb.Lookup(1, 1)
	require.False(t, hit)
}

func TestTLB_EvictsLeastRecentlyUsedOnOverflow(t *testing.T) {
	tlb := NewTLB(2)
	tlb.Insert(1, 0, 0)
	tlb.Insert(1, 1, 1)
	tlb.Insert(1, 2, 2) // capacity 2: (pid=1,page=0) should be evicted

	_, hit := tlb.Lookup(1, 0)
	require.False(t, hit)
	_, hit = tlb.Lookup(1, 1)
	require.True(t, hit)
	_, hit = tlb.Lookup(1, 2)
	require.True(t, hit)
}

func TestTLB_LookupPromotesToMostRecentlyUsed(t *testing.T) {
	tlb := NewTLB(2)
	tlb.Insert(1, 0, 0)
	tlb.Insert(1, 1, 1)

	_, _ = tlb.Lookup(1, 0) // touch the older entry, making page 1 the LRU one
	tlb.Insert(1, 2, 2)

	_, hit := tlb.Lookup(1, 1)
	require.False(t, hit)
	_, hit = tlb.Lookup(1, 0)
	require.True(t, hit)
}

func TestTLB_InvalidatePID(t *testing.T) {
	tlb := NewTLB(4)
	tlb.Insert(1, 0, 0)
	tlb.Insert(2, 0, 1)

	tlb.InvalidatePID(1)
	_, hit := tlb.Lookup(1, 0)
	require.False(t, hit)
	_, hit = tlb.Lookup(2, 0)
	require.True(t, hit)
}

func TestTLB_InvalidateFrame(t *testing.T) {
	tlb := NewTLB(4)
	tlb.Insert(1, 0, 7)
	tlb.Insert(2, 0, 8)

	tlb.InvalidateFrame(7)
	_, hit := tlb.Lookup(1, 0)
	require.False(t, hit)
	_, hit = tlb.Lookup(2, 0)
	require.True(t, hit)
}

func TestTLB_ZeroCapacityNeverRetains(t *testing.T) {
	tlb := NewTLB(0)
	tlb.Insert(1, 0, 0)
	_, hit := tlb.Lookup(1, 0)
	require.False(t, hit)
	require.Equal(t, 0, tlb.Len())
}
