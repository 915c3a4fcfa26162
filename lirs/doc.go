// Package lirs implements the LIRS (Low Inter-reference Recency Set)
// cache replacement algorithm.
//
// Design
//
//   - Concurrency: an Engine is single-threaded and non-suspending.
//     ProcessReference runs synchronously to completion; callers must
//     serialize access themselves if an Engine is ever shared across
//     goroutines (it is not wrapped in a lock, unlike the sharded cache
//     this package borrows its list plumbing from).
//
//   - Storage: two ordered sets, S (the recency stack) and Q (the
//     resident-HIR queue), each an intrusive MRU↔LRU doubly linked list
//     plus a key index, mirroring the shard-local list used by a
//     classic LRU cache. Every entry is shared by identity between S
//     and Q; flipping entry.flag in one view is visible in the other
//     because both views point at the same *entry.
//
//   - Classification: every block is either LIR (always resident, never
//     evicted directly) or HIR (resident or not, tracked for reuse
//     distance). Migration between the two happens only through the
//     rules in ProcessReference; see the package's engine.go comments
//     for the four reference cases.
//
//   - Metrics: Engine.SetMetrics accepts an EngineMetrics implementation
//     (NoopEngineMetrics by default). Plug metrics/prom to export
//     Prometheus counters and gauges.
//
// Basic usage
//
//	e, err := lirs.New(200, 2.0, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hit := e.ProcessReference(42)
//	stats := e.Stats()
//
// See package trace for trace ingestion and package stats for rendering
// a Stats snapshot as a report.
package lirs
