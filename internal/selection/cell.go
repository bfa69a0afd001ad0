package selection

import "sync"

// Cell is an observable value. Set notifies subscribers synchronously,
// before it returns, in subscription order.
type Cell[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[uint64]func(T)
	order  []uint64
	nextID uint64
}

// NewCell creates a cell holding initial
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[uint64]func(T)),
	}
}

// Get returns the current value
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores v and notifies subscribers
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	handlers := make([]func(T), 0, len(c.order))
	for _, id := range c.order {
		handlers = append(handlers, c.subs[id])
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(v)
	}
}

// Subscribe registers fn for future Sets. Returns an unsubscribe function.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subs[id] = fn
	c.order = append(c.order, id)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; !ok {
			return
		}
		delete(c.subs, id)
		for i, o := range c.order {
			if o == id {
				c.order = append(c.order[:i:i], c.order[i+1:]...)
				break
			}
		}
	}
}
