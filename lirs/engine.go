package lirs

import "math"

// MinHIRResident is the floor on maxhirs (§3): even a tiny hirPercent
// must still leave room for at least this many resident HIR blocks.
const MinHIRResident = 2

// MinCacheSize is the smallest cacheSize New accepts (§6.1/§6.3).
const MinCacheSize = 200

// Engine is the LIRS state machine: the recency stack S, the
// resident-HIR queue Q, and the counters derived from them. It is
// single-threaded and non-suspending; ProcessReference runs
// synchronously to completion and there is no internal locking.
type Engine struct {
	s *orderedSet
	q *orderedSet

	lastKey    uint64
	hasLastKey bool

	lirs int // LIR entries currently in S
	hirs int // entries currently in Q

	maxlirs         int
	maxhirs         int
	maxSLength      int
	sizeLimitFactor float64
	cacheSize       int

	refs       int
	misses     int
	peakSLen   int
	pruneCount int

	metrics EngineMetrics
}

// New constructs an Engine. cacheSize must be >= MinCacheSize,
// sizeLimitFactor must be >= 1.0, and hirPercent must be in [1,100];
// otherwise New returns a *ConfigError and a nil Engine.
func New(cacheSize int, sizeLimitFactor float64, hirPercent int) (*Engine, error) {
	if cacheSize < MinCacheSize {
		return nil, newConfigError("cacheSize must be >= 200")
	}
	if sizeLimitFactor < 1.0 {
		return nil, newConfigError("sizeLimitFactor must be >= 1.0")
	}
	if hirPercent < 1 || hirPercent > 100 {
		return nil, newConfigError("hirPercent must be in [1,100]")
	}

	maxhirs := int(math.Max(MinHIRResident, math.Round(float64(hirPercent)/100*float64(cacheSize))))
	maxlirs := cacheSize - maxhirs

	e := &Engine{
		maxlirs:         maxlirs,
		maxhirs:         maxhirs,
		maxSLength:      int(sizeLimitFactor * float64(cacheSize)),
		sizeLimitFactor: sizeLimitFactor,
		cacheSize:       cacheSize,
		metrics:         NoopEngineMetrics{},
	}
	e.s = newOrderedSet(func(x *entry) *links { return &x.sLinks })
	e.q = newOrderedSet(func(x *entry) *links { return &x.qLinks })
	return e, nil
}

// SetMetrics installs an EngineMetrics sink. Passing nil restores
// NoopEngineMetrics.
func (e *Engine) SetMetrics(m EngineMetrics) {
	if m == nil {
		m = NoopEngineMetrics{}
	}
	e.metrics = m
}

// Metrics returns the currently installed EngineMetrics sink.
func (e *Engine) Metrics() EngineMetrics { return e.metrics }

// ProcessReference is the engine's only externally visible mutator. It
// classifies the reference, rearranges S, Q, and the entry's own state
// to restore the invariants in §3, and returns whether it was a hit.
func (e *Engine) ProcessReference(key uint64) bool {
	e.refs++

	// Case A: successive identical references are idempotent.
	if e.hasLastKey && key == e.lastKey {
		e.metrics.Hit()
		return true
	}
	e.lastKey, e.hasLastKey = key, true

	var hit bool
	switch {
	case e.s.contains(key):
		ent, _ := e.s.get(key)
		hit = e.handleSHit(ent)
	case e.q.contains(key):
		ent, _ := e.q.get(key)
		hit = e.handleQHit(ent)
	default:
		hit = e.handleMiss(key)
	}

	e.shrink()

	if debugAsserts {
		e.assertInvariants()
	}

	if n := e.s.len(); n > e.peakSLen {
		e.peakSLen = n
	}

	if hit {
		e.metrics.Hit()
	} else {
		e.misses++
		e.metrics.Miss()
	}
	e.metrics.Size(e.s.len(), e.q.len())
	return hit
}

// handleSHit implements Case B: key found in S.
func (e *Engine) handleSHit(ent *entry) bool {
	e.sRemoveEntry(ent)

	var hit bool
	if ent.flag == HIR {
		if ent.resident {
			e.qRemoveEntry(ent)
			hit = true
		} else {
			// Access to a non-resident HIR block is a miss.
			hit = false
		}

		// Make space in Q for the entry that enters it below.
		if e.hirs >= e.maxhirs {
			e.evictQLRU()
		}

		if e.maxlirs == 0 {
			// No LIR budget at all (hirPercent = 100): this block can
			// never become LIR. Keep it HIR, resident, and simply
			// refresh its position in Q; there is nothing to demote.
			// It is not put back into S, which prune leaves empty.
			ent.resident = true
			e.qInsertMRU(ent)
			e.prune()
			return hit
		} else {
			// Promote to LIR and demote the LRU LIR of S into Q.
			ent.flag = LIR
			ent.resident = true
			e.migrateLIRtoHIR()
		}
		e.prune()
	} else {
		// LIR hit; removing it from the bottom of S may have exposed HIRs.
		hit = true
		e.prune()
	}

	e.sInsertMRU(ent)
	return hit
}

// handleQHit implements Case C: key found in Q (and not in S).
func (e *Engine) handleQHit(ent *entry) bool {
	e.qRemoveEntry(ent)
	e.qInsertMRU(ent)
	e.sInsertMRU(ent)
	return true
}

// handleMiss implements Case D: key in neither S nor Q.
func (e *Engine) handleMiss(key uint64) bool {
	ent := &entry{key: key, resident: true}

	if e.lirs < e.maxlirs {
		ent.flag = LIR
	} else {
		ent.flag = HIR
		if e.hirs >= e.maxhirs {
			e.evictQLRU()
		}
		e.qInsertMRU(ent)
	}
	e.sInsertMRU(ent)
	return false
}

// migrateLIRtoHIR pops the LRU of S (must be LIR by Invariant 5), flips
// it to HIR, and pushes it to the MRU of Q. It is explicitly not
// reinserted into S.
func (e *Engine) migrateLIRtoHIR() {
	ent := e.sPopLRU()
	if ent == nil {
		panicInvariant("migrateLIRtoHIR: S is empty")
	}
	if ent.flag != LIR {
		panicInvariant("migrateLIRtoHIR: LRU of S is not LIR")
	}
	ent.flag = HIR
	e.qInsertMRU(ent)
}

// prune repeatedly drops the LRU of S while it is a HIR entry,
// restoring Invariant 5.
func (e *Engine) prune() {
	e.pruneCount++
	e.metrics.Prune()
	for {
		le := e.s.peekLRU()
		if le == nil || le.flag == LIR {
			return
		}
		e.sRemoveEntry(le)
	}
}

// evictQLRU pops the LRU of Q and marks it non-resident. It is NOT
// removed from S: its presence there as a non-resident HIR lets a
// future hit on its key recognize short reuse distance.
func (e *Engine) evictQLRU() {
	ent := e.qPopLRU()
	if ent == nil {
		return
	}
	ent.resident = false
}

// shrink bounds |S| by maxSLength. At most one entry is removed per
// call: each reference grows |S| by at most one, so one removal
// always suffices to restore the bound.
func (e *Engine) shrink() {
	if e.s.len() <= e.maxSLength {
		return
	}
	e.s.eachLRUtoMRU(func(ent *entry) bool {
		if ent.flag == HIR {
			e.sRemoveEntry(ent)
			return false
		}
		return true
	})
}

// ---- counter-aware wrappers around the raw orderedSet operations ----
//
// lirs/hirs are engine-level invariant counters (Invariant 6) tied to
// an entry's flag, not to the container itself; every path that moves
// an entry into or out of S/Q goes through one of these so the counts
// never drift from the container contents.

func (e *Engine) sInsertMRU(ent *entry) {
	e.s.insertMRU(ent)
	if ent.flag == LIR {
		e.lirs++
	}
}

func (e *Engine) sRemoveEntry(ent *entry) {
	e.s.removeEntry(ent)
	if ent.flag == LIR {
		e.lirs--
	}
}

func (e *Engine) sPopLRU() *entry {
	ent := e.s.popLRU()
	if ent != nil && ent.flag == LIR {
		e.lirs--
	}
	return ent
}

func (e *Engine) qInsertMRU(ent *entry) {
	e.q.insertMRU(ent)
	e.hirs++
}

func (e *Engine) qRemoveEntry(ent *entry) {
	e.q.removeEntry(ent)
	e.hirs--
}

func (e *Engine) qPopLRU() *entry {
	ent := e.q.popLRU()
	if ent != nil {
		e.hirs--
	}
	return ent
}

// ---- read-only accessors (§6.1) ----

// Refs returns the number of ProcessReference calls so far.
func (e *Engine) Refs() int { return e.refs }

// Misses returns the number of calls that returned false.
func (e *Engine) Misses() int { return e.misses }

// PeakSLen returns the largest |S| observed so far.
func (e *Engine) PeakSLen() int { return e.peakSLen }

// Hirs returns the current count of entries in Q.
func (e *Engine) Hirs() int { return e.hirs }

// MaxSLength returns the configured bound on |S|.
func (e *Engine) MaxSLength() int { return e.maxSLength }

// CacheSize returns the configured cache capacity.
func (e *Engine) CacheSize() int { return e.cacheSize }

// PruneCount returns the number of prune invocations so far.
func (e *Engine) PruneCount() int { return e.pruneCount }

// HitRate returns 100*(1-misses/refs), or 0 if no references were
// processed yet.
func (e *Engine) HitRate() float64 {
	if e.refs == 0 {
		return 0
	}
	return 100 * (1 - float64(e.misses)/float64(e.refs))
}

// Stats is a point-in-time snapshot of an Engine's counters (§6.4).
type Stats struct {
	CacheSize  int
	MaxSLength int
	PeakSLen   int
	Hirs       int
	Refs       int
	Misses     int
	HitRate    float64
	PruneCount int
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return Stats{
		CacheSize:  e.cacheSize,
		MaxSLength: e.maxSLength,
		PeakSLen:   e.peakSLen,
		Hirs:       e.hirs,
		Refs:       e.refs,
		Misses:     e.misses,
		HitRate:    e.HitRate(),
		PruneCount: e.pruneCount,
	}
}
