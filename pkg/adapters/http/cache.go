package http

import (
	"sync"

	"github.com/aretw0/algotrace"
)

// DefaultCacheSize is the number of executed runs a Server keeps.
const DefaultCacheSize = 32

// runCache keeps the most recently stored runs, evicting the oldest first.
type runCache struct {
	mu    sync.Mutex
	max   int
	order []string
	runs  map[string]*algotrace.Run
}

func newRunCache(max int) *runCache {
	if max < 1 {
		max = 1
	}
	return &runCache{max: max, runs: make(map[string]*algotrace.Run)}
}

func (c *runCache) get(id string) (*algotrace.Run, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	run, ok := c.runs[id]
	return run, ok
}

func (c *runCache) put(run *algotrace.Run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := run.Descriptor.ID
	if _, ok := c.runs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.runs[id] = run
	for len(c.order) > c.max {
		delete(c.runs, c.order[0])
		c.order = c.order[1:]
	}
}

func (c *runCache) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.runs[id]; !ok {
		return
	}
	delete(c.runs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
