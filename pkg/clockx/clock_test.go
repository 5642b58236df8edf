package clockx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClock_New_DefaultCapacity(t *testing.T) {
	c := New(0)
	require.NotNil(t, c)
	require.Equal(t, 1, c.Capacity())
	require.Equal(t, 0, c.Size())
}

func TestClock_Touch_MakesPresent(t *testing.T) {
	c := New(3)

	c.Touch(1)
	require.Equal(t, 0, c.Size())

	c.SetEvictable(1, true)
	require.Equal(t, 1, c.Size())

	c.SetEvictable(1, true)
	require.Equal(t, 1, c.Size())

	c.SetEvictable(1, false)
	require.Equal(t, 0, c.Size())
}

func TestClock_SetEvictable_UnknownSlotIgnored(t *testing.T) {
	c := New(2)

	c.SetEvictable(0, true)
	require.Equal(t, 0, c.Size())

	c.Touch(0)
	c.SetEvictable(0, true)
	require.Equal(t, 1, c.Size())
}

func TestClock_PeekVictim_EmptySlotReturnedImmediately(t *testing.T) {
	c := New(3)

	id, forced, ok := c.PeekVictim()
	require.True(t, ok)
	require.False(t, forced)
	require.Equal(t, 0, id)
}

func TestClock_PeekVictim_DoesNotRemove(t *testing.T) {
	c := New(2)
	c.Touch(0)
	c.SetEvictable(0, true)
	c.Touch(1)
	c.SetEvictable(1, true)

	id, _, ok := c.PeekVictim()
	require.True(t, ok)
	require.Contains(t, []int{0, 1}, id)
	// Size is unchanged: PeekVictim never mutates presence/evictable state.
	require.Equal(t, 2, c.Size())

	// Peeking again without Remove does not advance past the same decision forever:
	// the second-chance sweep still makes progress because ref bits were cleared.
	_, _, ok2 := c.PeekVictim()
	require.True(t, ok2)
}

func TestClock_PeekVictim_SecondChanceThenRemove(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Touch(i)
		c.SetEvictable(i, true)
	}
	require.Equal(t, 3, c.Size())

	id1, forced, ok := c.PeekVictim()
	require.True(t, ok)
	require.False(t, forced)
	c.Remove(id1)
	require.Equal(t, 2, c.Size())

	id2, _, ok := c.PeekVictim()
	require.True(t, ok)
	require.NotEqual(t, id1, id2)
	c.Remove(id2)

	id3, _, ok := c.PeekVictim()
	require.True(t, ok)
	require.NotEqual(t, id1, id3)
	require.NotEqual(t, id2, id3)
	c.Remove(id3)
	require.Equal(t, 0, c.Size())
}

func TestClock_Remove_DecrementsSizeIfEvictable(t *testing.T) {
	c := New(3)

	c.Touch(0)
	c.Touch(1)
	c.SetEvictable(0, true)
	c.SetEvictable(1, true)
	require.Equal(t, 2, c.Size())

	c.Remove(0)
	require.Equal(t, 1, c.Size())

	c.Remove(0)
	require.Equal(t, 1, c.Size())

	c.Touch(2)
	require.Equal(t, 1, c.Size())
	c.Remove(2)
	require.Equal(t, 1, c.Size())
}

func TestClock_BoundsChecks(t *testing.T) {
	c := New(2)

	c.Touch(-1)
	c.Touch(2)
	c.SetEvictable(-1, true)
	c.SetEvictable(2, true)
	c.Remove(-1)
	c.Remove(2)

	require.Equal(t, 0, c.Size())
}

func TestClock_PeekVictim_EmptyCapacityZero(t *testing.T) {
	c := &Clock{}
	id, forced, ok := c.PeekVictim()
	require.False(t, ok)
	require.False(t, forced)
	require.Equal(t, -1, id)
}
