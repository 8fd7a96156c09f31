package colbuf

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters an Allocator reports through. Callers that
// don't care about observability can pass nil to NewAllocator/NewMetrics
// and get a set of counters registered nowhere.
type Metrics struct {
	allocations prometheus.Counter
	bytes       prometheus.Counter
	pins        prometheus.Counter
	failures    prometheus.Counter
}

// NewMetrics builds a Metrics and, if reg is non-nil, registers its
// counters under it. Passing the same registry to multiple Allocators that
// share a namespace will panic on the duplicate registration, matching
// prometheus's usual "register once" discipline.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coldata",
			Subsystem: "buffer",
			Name:      "allocations_total",
			Help:      "Number of blocks allocated from the buffer manager.",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coldata",
			Subsystem: "buffer",
			Name:      "allocated_bytes_total",
			Help:      "Cumulative bytes allocated from the buffer manager.",
		}),
		pins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coldata",
			Subsystem: "buffer",
			Name:      "pins_total",
			Help:      "Number of successful block pins.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coldata",
			Subsystem: "buffer",
			Name:      "allocation_failures_total",
			Help:      "Number of allocations that failed, typically with out-of-memory.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.allocations, m.bytes, m.pins, m.failures)
	}
	return m
}

func (m *Metrics) observeAllocate(size int) {
	m.allocations.Inc()
	m.bytes.Add(float64(size))
}

func (m *Metrics) observePin() {
	m.pins.Inc()
}

func (m *Metrics) observeFailure() {
	m.failures.Inc()
}
