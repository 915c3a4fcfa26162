package lirs

// EngineMetrics exposes engine-level observability hooks, mirroring the
// Hit/Miss/Size shape of a cache's Metrics interface but specialized to
// what an Engine actually emits: hits, misses, prunes, and the current
// size of S and Q. A NoopEngineMetrics implementation is used by default;
// plug metrics/prom to export Prometheus counters and gauges.
type EngineMetrics interface {
	Hit()
	Miss()
	Prune()
	Size(sLen, qLen int)
}

// NoopEngineMetrics is an EngineMetrics implementation that does nothing.
type NoopEngineMetrics struct{}

// Hit records a reference resolved as a hit. NoopEngineMetrics ignores it.
func (NoopEngineMetrics) Hit() {}

// Miss records a reference resolved as a miss. NoopEngineMetrics ignores it.
func (NoopEngineMetrics) Miss() {}

// Prune records one prune invocation. NoopEngineMetrics ignores it.
func (NoopEngineMetrics) Prune() {}

// Size reports the current length of S and Q. NoopEngineMetrics ignores it.
func (NoopEngineMetrics) Size(_, _ int) {}
