// Package idalloc hands out monotonically increasing ids that are never reused,
// independent of how many records a collection currently holds.
package idalloc

import "sync/atomic"

type Allocator struct{ last atomic.Uint64 }

// Next returns the next id, starting at 1.
func (a *Allocator) Next() uint { return uint(a.last.Add(1)) }

// Observe advances the allocator past an id that was assigned elsewhere (seed data).
func (a *Allocator) Observe(id uint) {
	for {
		cur := a.last.Load()
		if uint64(id) <= cur || a.last.CompareAndSwap(cur, uint64(id)) {
			return
		}
	}
}
