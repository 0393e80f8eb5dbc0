// Package metrics keeps a process-local view of request latencies per route.
// It is best-effort: samples live in memory, reset on restart, and are not
// shared across instances. The collector is injected where needed instead of
// living in package-level state.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

const maxSamples = 500

type routeStats struct {
	count   uint64
	samples []float64 // latency in ms, capped at maxSamples (ring)
	next    int
	full    bool
}

// Collector records per-route latency samples and serves percentile snapshots.
type Collector struct {
	mu      sync.Mutex
	started time.Time
	routes  map[string]*routeStats
}

func NewCollector() *Collector {
	return &Collector{
		started: time.Now(),
		routes:  make(map[string]*routeStats),
	}
}

// Record adds one latency sample for route. Oldest samples are overwritten
// once the ring is full.
func (c *Collector) Record(route string, latency time.Duration) {
	ms := float64(latency.Microseconds()) / 1000.0

	c.mu.Lock()
	defer c.mu.Unlock()

	rs, ok := c.routes[route]
	if !ok {
		rs = &routeStats{samples: make([]float64, 0, maxSamples)}
		c.routes[route] = rs
	}
	rs.count++
	if rs.full {
		rs.samples[rs.next] = ms
		rs.next = (rs.next + 1) % maxSamples
		return
	}
	rs.samples = append(rs.samples, ms)
	if len(rs.samples) == maxSamples {
		rs.full = true
	}
}

// RouteSnapshot is the per-route block of the /stats payload.
type RouteSnapshot struct {
	Count uint64  `json:"count"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Snapshot returns uptime and nearest-rank percentiles over the retained
// samples of every route.
type Snapshot struct {
	UptimeSeconds int64                    `json:"uptime_seconds"`
	Routes        map[string]RouteSnapshot `json:"routes"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := Snapshot{
		UptimeSeconds: int64(time.Since(c.started).Seconds()),
		Routes:        make(map[string]RouteSnapshot, len(c.routes)),
	}
	for route, rs := range c.routes {
		sorted := append([]float64(nil), rs.samples...)
		sort.Float64s(sorted)
		out.Routes[route] = RouteSnapshot{
			Count: rs.count,
			P50Ms: percentile(sorted, 50),
			P95Ms: percentile(sorted, 95),
			P99Ms: percentile(sorted, 99),
		}
	}
	return out
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	k := int(math.Round(p / 100.0 * float64(len(sorted)-1)))
	if k < 0 {
		k = 0
	}
	if k > len(sorted)-1 {
		k = len(sorted) - 1
	}
	return math.Round(sorted[k]*10) / 10
}
