package metrics

import (
	"sync/atomic"
	"time"
)

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

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry holds the storefront's operational counters.
type Registry struct {
	CatalogQueries Counter
	OrdersPlaced   Counter
	OrdersFailed   Counter
	BadRequests    Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot returns the current counter values for the /metrics endpoint.
func (r *Registry) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"catalog_queries": r.CatalogQueries.Load(),
		"orders_placed":   r.OrdersPlaced.Load(),
		"orders_failed":   r.OrdersFailed.Load(),
		"bad_requests":    r.BadRequests.Load(),
	}
}
