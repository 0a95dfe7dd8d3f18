package generation

import "sync/atomic"

// Counter hands out monotonically increasing generations. A result computed for
// generation g may be applied only while IsCurrent(g) holds.
type Counter struct {
	n atomic.Uint64
}

func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}

func (c *Counter) Current() uint64 {
	return c.n.Load()
}

func (c *Counter) IsCurrent(g uint64) bool {
	return g != 0 && c.n.Load() == g
}
