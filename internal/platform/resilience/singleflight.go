package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution; late arrivals block and receive the shared result. Entries
// are removed once the call finishes, so nothing is cached.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*inflightCall
}

type inflightCall struct {
	wg  sync.WaitGroup
	val any
	err error
}

// Do runs fn for key unless another call with the same key is already in
// flight, in which case it waits for that call. The bool reports whether
// the result was shared with an earlier caller.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*inflightCall)
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &inflightCall{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()

	return c.val, c.err, false
}
