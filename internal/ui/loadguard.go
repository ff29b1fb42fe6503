package ui

import "sync"

// loadGuard hands out sequence numbers for view loads. A response applies only
// if its number is still current, so a superseded load can never overwrite
// newer state.
type loadGuard struct {
	mu  sync.Mutex
	seq int
}

// next marks a new load and returns its sequence number.
func (g *loadGuard) next() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return g.seq
}

// current reports whether the given load is still the latest.
func (g *loadGuard) current(n int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq == n
}
