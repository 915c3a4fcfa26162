// Package prom adapts lirs.EngineMetrics to Prometheus counters/gauges,
// the same role metrics/prom.Adapter played for the sharded cache this
// module is descended from: the engine stays free of any Prometheus
// import and talks only to the EngineMetrics interface.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/traustis/lirsim/lirs"
)

// Adapter implements lirs.EngineMetrics and exports Prometheus
// counters/gauges. Safe for concurrent use; all Prometheus metric
// types are goroutine-safe, even though a single Engine is not meant
// to be driven from more than one goroutine at a time.
type Adapter struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	prunes prometheus.Counter
	sizeS  prometheus.Gauge
	sizeQ  prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "References resolved as a hit",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "References resolved as a miss",
			ConstLabels: constLabels,
		}),
		prunes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "prunes_total",
			Help:        "Prune invocations",
			ConstLabels: constLabels,
		}),
		sizeS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "s_length",
			Help:        "Current length of the recency stack S",
			ConstLabels: constLabels,
		}),
		sizeQ: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "q_length",
			Help:        "Current length of the resident-HIR queue Q",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.prunes, a.sizeS, a.sizeQ)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Prune increments the prune counter.
func (a *Adapter) Prune() { a.prunes.Inc() }

// Size updates the S/Q length gauges.
func (a *Adapter) Size(sLen, qLen int) {
	a.sizeS.Set(float64(sLen))
	a.sizeQ.Set(float64(qLen))
}

// Compile-time check: ensure Adapter implements lirs.EngineMetrics.
var _ lirs.EngineMetrics = (*Adapter)(nil)
