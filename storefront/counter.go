package storefront

import "sync"

// Counter is an observable integer shared between UI surfaces (the cart and
// wishlist badges). Subscribers are invoked with the new value after every
// change, which replaces prop-drilling a count through the component tree.
type Counter struct {
	mu    sync.Mutex
	value int
	subs  []func(int)
}

func NewCounter() *Counter {
	return &Counter{}
}

// Subscribe registers a callback for every subsequent value change.
func (c *Counter) Subscribe(fn func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Add applies a delta and notifies subscribers. The value never goes below
// zero; a stray negative delta clamps instead of corrupting the badge.
func (c *Counter) Add(delta int) int {
	c.mu.Lock()
	c.value += delta
	if c.value < 0 {
		c.value = 0
	}
	value := c.value
	subs := make([]func(int), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
	return value
}

// Set replaces the value outright, notifying subscribers.
func (c *Counter) Set(value int) {
	c.mu.Lock()
	if value < 0 {
		value = 0
	}
	c.value = value
	subs := make([]func(int), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}
