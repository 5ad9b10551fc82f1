// Package arenaprom exports arena statistics to Prometheus.
//
// A Collector reads the Metrics snapshot of every tracked arena at scrape
// time, so arenas carry no Prometheus state of their own:
//
//	c := arenaprom.NewCollector("opendi")
//	prometheus.MustRegister(c)
//
//	a, _ := arena.NewSafe(1<<20, arena.WithName("session"))
//	untrack := c.Track(a)
//	defer untrack()
//
// Scrapes run on the HTTP server's goroutines. Track a SafeArena, or any
// Source that is safe to call concurrently, when the arena is in use while
// scrapes happen.
package arenaprom

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/opendi/arena"
)

// Source is anything that can report arena statistics.
// *arena.Arena and *arena.SafeArena implement it.
type Source interface {
	Metrics() arena.Metrics
}

// Collector implements prometheus.Collector over a set of tracked arenas.
// Each series carries the arena's name (its tracking id when unnamed) and
// its tracking id, so arenas that share a name stay distinct.
type Collector struct {
	mu      sync.Mutex
	nextID  uint64
	sources map[uint64]Source

	capacity    *prometheus.Desc
	inUse       *prometheus.Desc
	peak        *prometheus.Desc
	utilization *prometheus.Desc
	pushes      *prometheus.Desc
	failed      *prometheus.Desc
	resets      *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "arena", name),
			help,
			[]string{"arena", "id"},
			nil,
		)
	}
	return &Collector{
		sources:     make(map[uint64]Source),
		capacity:    desc("capacity_bytes", "Size of the arena backing store in bytes"),
		inUse:       desc("in_use_bytes", "Bytes handed out since creation or the last reset"),
		peak:        desc("peak_bytes", "Highest offset reached by the arena"),
		utilization: desc("utilization_ratio", "Bytes in use as a ratio of capacity (0.0-1.0)"),
		pushes:      desc("pushes_total", "Total push requests"),
		failed:      desc("failed_pushes_total", "Push requests rejected because the arena was exhausted"),
		resets:      desc("resets_total", "Total arena resets"),
	}
}

// Track adds src to the collector and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (c *Collector) Track(src Source) (untrack func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.sources[id] = src
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.sources, id)
		c.mu.Unlock()
	}
}

// Len returns the number of tracked arenas.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sources)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.inUse
	ch <- c.peak
	ch <- c.utilization
	ch <- c.pushes
	ch <- c.failed
	ch <- c.resets
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	snapshots := make(map[uint64]arena.Metrics, len(c.sources))
	for id, src := range c.sources {
		snapshots[id] = src.Metrics()
	}
	c.mu.Unlock()

	for id, m := range snapshots {
		idLabel := strconv.FormatUint(id, 10)
		name := m.Name
		if name == "" {
			name = idLabel
		}

		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity), name, idLabel)
		ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(m.SizeInUse), name, idLabel)
		ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(m.Peak), name, idLabel)
		ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, m.Utilization, name, idLabel)
		ch <- prometheus.MustNewConstMetric(c.pushes, prometheus.CounterValue, float64(m.Pushes), name, idLabel)
		ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(m.FailedPushes), name, idLabel)
		ch <- prometheus.MustNewConstMetric(c.resets, prometheus.CounterValue, float64(m.Resets), name, idLabel)
	}
}
