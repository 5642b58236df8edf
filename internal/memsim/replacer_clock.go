package memsim

import "github.com/tuannm99/memsim/pkg/clockx"

// clockReplacer adapts pkg/clockx's generic second-chance sweep to
// the Replacer contract, the same adapter-over-library shape the
// teacher uses for its own buffer pool (clockAdapter wrapping
// clockx.Clock). There is no pin concept in this simulator, so every
// touched frame is immediately marked evictable.
type clockReplacer struct {
	c *clockx.Clock
}

func newClockReplacer(numFrames int) *clockReplacer {
	return &clockReplacer{c: clockx.New(numFrames)}
}

func (r *clockReplacer) OnLoad(frame int, _ int64) {
	r.c.Touch(frame)
	r.c.SetEvictable(frame, true)
}

func (r *clockReplacer) OnAccess(frame int, _ int64) {
	r.c.Touch(frame)
}

func (r *clockReplacer) OnEvict(frame int) {
	r.c.Remove(frame)
}

func (r *clockReplacer) SelectVictim() (frame int, forced bool, ok bool) {
	return r.c.PeekVictim()
}
