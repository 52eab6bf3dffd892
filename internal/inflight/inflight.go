// Package inflight rejects a second concurrent run of the same action.
package inflight

import "sync"

// Guard tracks the keys currently running.
type Guard struct {
	mu      sync.Mutex
	running map[string]struct{}
}

// New returns an empty Guard.
func New() *Guard {
	return &Guard{running: make(map[string]struct{})}
}

// Acquire marks key as running. ok is false when it already is; the caller
// must then reject the request instead of queueing it. release is idempotent.
func (g *Guard) Acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.running[key]; busy {
		return func() {}, false
	}
	g.running[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.running, key)
			g.mu.Unlock()
		})
	}, true
}

// Busy reports whether key is running.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.running[key]
	return ok
}
