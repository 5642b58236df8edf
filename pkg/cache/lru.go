// Package cache wraps container/list into a small recency-ordered set
// building block, reused here by the paging engine's TLB: the oldest
// entry lives at the front of the list, the most recently used at the
// back, so eviction is always "drop the front" and promotion is
// always "move to back".
package cache

import (
	"container/list"
	"sync"
)

// LRUManager is a recency list with an external value payload per
// element. It has no capacity of its own: callers enforce any bound
// (the TLB drops Front() on overflow) and keep their own key->*list.Element index
// (e.g. a map[(pid,page)]*list.Element) alongside it, the same split
// of responsibilities the teacher's buffer pool uses between its
// pageTable map and its frame slice.
type LRUManager struct {
	order *list.List
	mu    sync.Mutex
}

func NewLRUManager() *LRUManager {
	return &LRUManager{order: list.New()}
}

// PushBack inserts value as the most-recently-used entry.
func (l *LRUManager) PushBack(value any) *list.Element {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.PushBack(value)
}

// MoveToBack promotes an existing element to most-recently-used.
func (l *LRUManager) MoveToBack(elem *list.Element) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order.MoveToBack(elem)
}

// Remove drops elem from the recency list.
func (l *LRUManager) Remove(elem *list.Element) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order.Remove(elem)
}

// Front returns the least-recently-used element, or nil if empty.
func (l *LRUManager) Front() *list.Element {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Front()
}

func (l *LRUManager) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}
