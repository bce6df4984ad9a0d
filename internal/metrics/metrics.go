package metrics

import "sync/atomic"

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Engine-wide counters. Cheap enough to keep always-on.
var (
	CartMutations    Counter
	CartLoadFailures Counter
	IdentitySwitches Counter
	APIFailures      Counter
	OrdersPlaced     Counter
)
