package memsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOReplacer_SelectsOldestLoad(t *testing.T) {
	f := newFIFOReplacer()
	f.OnLoad(2, 0)
	f.OnLoad(0, 0)
	f.OnLoad(1, 0)

	victim, forced, ok := f.SelectVictim()
	require.True(t, ok)
	require.False(t, forced)
	require.Equal(t, 2, victim)
}

func TestFIFOReplacer_SelectVictimDoesNotMutate(t *testing.T) {
	f := newFIFOReplacer()
	f.OnLoad(2, 0)
	f.OnLoad(0, 0)

	v1, _, _ := f.SelectVictim()
	v2, _, _ := f.SelectVictim()
	require.Equal(t, v1, v2)
}

func TestFIFOReplacer_OnAccessDoesNotReorder(t *testing.T) {
	f := newFIFOReplacer()
	f.OnLoad(2, 0)
	f.OnLoad(0, 0)
	f.OnAccess(2, 5) // touching the oldest frame should not save it

	victim, _, ok := f.SelectVictim()
	require.True(t, ok)
	require.Equal(t, 2, victim)
}

func TestFIFOReplacer_OnEvictRemovesFromQueue(t *testing.T) {
	f := newFIFOReplacer()
	f.OnLoad(2, 0)
	f.OnLoad(0, 0)
	f.OnEvict(2)

	victim, _, ok := f.SelectVictim()
	require.True(t, ok)
	require.Equal(t, 0, victim)
}

func TestFIFOReplacer_EmptyQueueReportsNotOK(t *testing.T) {
	f := newFIFOReplacer()
	_, _, ok := f.SelectVictim()
	require.False(t, ok)
}
