// counter.go - monotonic integer dispenser.
package xmldiff

// Counter is a single-owner monotonically increasing integer sequence. It is
// not safe for concurrent use; each diff invocation owns its own counters.
type Counter struct {
	value int
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() int {
	v := c.value
	c.value++
	return v
}

// Current returns the next value that Next would return, without advancing.
func (c *Counter) Current() int {
	return c.value
}
