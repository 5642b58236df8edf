package memsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClockReplacer_SecondChanceSkipsReferencedFrame(t *testing.T) {
	c := newClockReplacer(2)
	c.OnLoad(0, 0)
	c.OnLoad(1, 0)

	// First sweep clears both reference bits and lands on frame 0.
	first, _, ok := c.SelectVictim()
	require.True(t, ok)
	require.Equal(t, 0, first)

	// The caller re-references the candidate instead of evicting it;
	// frame 1's bit stays clear from the prior sweep, so it is the
	// next victim.
	c.OnAccess(first, 1)
	second, forced, ok := c.SelectVictim()
	require.True(t, ok)
	require.False(t, forced)
	require.Equal(t, 1, second)
}

func TestClockReplacer_SelectVictimDoesNotRemove(t *testing.T) {
	c := newClockReplacer(1)
	c.OnLoad(0, 0)

	v1, _, ok1 := c.SelectVictim()
	v2, _, ok2 := c.SelectVictim()
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, v1, v2)
}

func TestClockReplacer_OnEvictRemovesFromTracking(t *testing.T) {
	c := newClockReplacer(1)
	c.OnLoad(0, 0)
	c.OnEvict(0)

	// Frame 0 is no longer present; PeekVictim treats it as an empty
	// slot and returns it immediately without forcing.
	victim, forced, ok := c.SelectVictim()
	require.True(t, ok)
	require.False(t, forced)
	require.Equal(t, 0, victim)
}
