package memsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUReplacer_SelectsLeastRecentlyAccessed(t *testing.T) {
	fs := NewFrameStore(3)
	f0, _ := fs.Acquire()
	f1, _ := fs.Acquire()
	f2, _ := fs.Acquire()
	fs.Place(f0, &ResidentDescriptor{PID: 1, Page: 0, LastAccess: 10})
	fs.Place(f1, &ResidentDescriptor{PID: 1, Page: 1, LastAccess: 5})
	fs.Place(f2, &ResidentDescriptor{PID: 1, Page: 2, LastAccess: 20})

	l := newLRUReplacer(fs)
	victim, forced, ok := l.SelectVictim()
	require.True(t, ok)
	require.False(t, forced)
	require.Equal(t, f1, victim)
}

func TestLRUReplacer_TieBreaksOnLowestIndex(t *testing.T) {
	fs := NewFrameStore(2)
	f0, _ := fs.Acquire()
	f1, _ := fs.Acquire()
	fs.Place(f0, &ResidentDescriptor{PID: 1, Page: 0, LastAccess: 7})
	fs.Place(f1, &ResidentDescriptor{PID: 1, Page: 1, LastAccess: 7})

	l := newLRUReplacer(fs)
	victim, _, ok := l.SelectVictim()
	require.True(t, ok)
	require.Equal(t, f0, victim)
}

func TestLRUReplacer_EmptyStoreReportsNotOK(t *testing.T) {
	fs := NewFrameStore(2)
	l := newLRUReplacer(fs)
	_, _, ok := l.SelectVictim()
	require.False(t, ok)
}

func TestLRUReplacer_ReflectsLiveUpdatesToLastAccess(t *testing.T) {
	fs := NewFrameStore(2)
	f0, _ := fs.Acquire()
	f1, _ := fs.Acquire()
	fs.Place(f0, &ResidentDescriptor{PID: 1, Page: 0, LastAccess: 1})
	fs.Place(f1, &ResidentDescriptor{PID: 1, Page: 1, LastAccess: 2})

	l := newLRUReplacer(fs)
	victim, _, _ := l.SelectVictim()
	require.Equal(t, f0, victim)

	fs.Get(f0).LastAccess = 99
	victim, _, _ = l.SelectVictim()
	require.Equal(t, f1, victim)
}
