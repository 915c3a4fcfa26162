package lirs

import "testing"

func TestNew_ValidatesBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name            string
		cacheSize       int
		sizeLimitFactor float64
		hirPercent      int
		wantErr         bool
	}{
		{"minimum valid", 200, 1.0, 1, false},
		{"below min cache size", 199, 2.0, 1, true},
		{"stack factor below 1.0", 200, 0.5, 1, true},
		{"hir percent zero", 200, 2.0, 0, true},
		{"hir percent over 100", 200, 2.0, 101, true},
		{"hir percent 100 boundary", 200, 2.0, 100, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(c.cacheSize, c.sizeLimitFactor, c.hirPercent)
			if (err != nil) != c.wantErr {
				t.Fatalf("New(%d,%v,%d) err=%v, wantErr=%v", c.cacheSize, c.sizeLimitFactor, c.hirPercent, err, c.wantErr)
			}
		})
	}
}

func TestEngine_RepeatedReferenceIsIdempotent(t *testing.T) {
	t.Parallel()

	e, err := New(200, 2.0, 1)
	if err != nil {
		t.Fatal(err)
	}

	// First reference to 1 is always a miss.
	if e.ProcessReference(1) {
		t.Fatal("first reference must be a miss")
	}
	refsAfterFirst := e.Refs()
	missesAfterFirst := e.Misses()

	for i := 0; i < 4; i++ {
		if !e.ProcessReference(1) {
			t.Fatalf("repeat #%d of an already-resident key must hit", i)
		}
	}

	if got, want := e.Refs(), refsAfterFirst+4; got != want {
		t.Fatalf("Refs() = %d, want %d", got, want)
	}
	if e.Misses() != missesAfterFirst {
		t.Fatalf("Misses() changed on repeated references: %d -> %d", missesAfterFirst, e.Misses())
	}
}

func TestEngine_HitRateInRange(t *testing.T) {
	t.Parallel()

	e, err := New(200, 2.0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if hr := e.HitRate(); hr != 0 {
		t.Fatalf("HitRate() before any reference = %v, want 0", hr)
	}
	for i := uint64(0); i < 500; i++ {
		e.ProcessReference(i % 50)
		if hr := e.HitRate(); hr < 0 || hr > 100 {
			t.Fatalf("HitRate() out of [0,100]: %v", hr)
		}
	}
}

func TestEngine_HIRPercent100_AllLIRBudgetIsZero(t *testing.T) {
	t.Parallel()

	e, err := New(200, 2.0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if e.maxhirs != 200 {
		t.Fatalf("maxhirs = %d, want 200", e.maxhirs)
	}
	if e.maxlirs != 0 {
		t.Fatalf("maxlirs = %d, want 0", e.maxlirs)
	}

	// Every miss must enter as HIR since there's no LIR budget.
	for i := uint64(0); i < 10; i++ {
		e.ProcessReference(i)
	}
	if e.lirs != 0 {
		t.Fatalf("lirs = %d, want 0 when maxlirs is 0", e.lirs)
	}
}

// TestEngine_HIRPercent100_RepeatedKeyNeverPanics guards against a
// regression where re-referencing a resident HIR block (Case B, found
// in S) tried to demote some other entry out of S via
// migrateLIRtoHIR even though maxlirs is 0 and S holds no LIR entries
// to demote.
func TestEngine_HIRPercent100_RepeatedKeyNeverPanics(t *testing.T) {
	t.Parallel()

	e, err := New(200, 2.0, 100)
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("ProcessReference panicked: %v", r)
		}
	}()

	e.ProcessReference(1)
	e.ProcessReference(2)
	if hit := e.ProcessReference(1); !hit {
		t.Fatalf("ProcessReference(1) (repeat, resident HIR) = miss, want hit")
	}
	assertAllInvariants(t, e, 2)

	if e.lirs != 0 {
		t.Fatalf("lirs = %d, want 0 when maxlirs is 0", e.lirs)
	}
}

func TestEngine_HIRPercent1_SmallCache_MaxHirsAtLeastTwo(t *testing.T) {
	t.Parallel()

	e, err := New(200, 2.0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if e.maxhirs < MinHIRResident {
		t.Fatalf("maxhirs = %d, want >= %d", e.maxhirs, MinHIRResident)
	}
}

func TestEngine_SizeLimitFactorOne_BoundsSLength(t *testing.T) {
	t.Parallel()

	const cacheSize = 200
	e, err := New(cacheSize, 1.0, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(0); i < 5000; i++ {
		e.ProcessReference(i % 1000)
		if e.s.len() > e.maxSLength {
			t.Fatalf("|S| = %d exceeds maxSLength = %d after %d refs", e.s.len(), e.maxSLength, i+1)
		}
	}
	if e.maxSLength != cacheSize {
		t.Fatalf("maxSLength = %d, want %d", e.maxSLength, cacheSize)
	}
}

// assertAllInvariants runs the full invariant check unconditionally
// (bypassing the debugAsserts build-tag gate) so ordinary `go test`
// without -tags lirsim_debug still exercises §8's invariants.
func assertAllInvariants(t *testing.T, e *Engine, step int) {
	t.Helper()
	if le := e.s.peekLRU(); le != nil && le.flag != LIR {
		t.Fatalf("step %d: LRU of S is %v, want LIR", step, le.flag)
	}
	if e.lirs > e.maxlirs {
		t.Fatalf("step %d: lirs=%d exceeds maxlirs=%d", step, e.lirs, e.maxlirs)
	}
	if e.hirs > e.maxhirs {
		t.Fatalf("step %d: hirs=%d exceeds maxhirs=%d", step, e.hirs, e.maxhirs)
	}
	if e.s.len() > e.maxSLength {
		t.Fatalf("step %d: |S|=%d exceeds maxSLength=%d", step, e.s.len(), e.maxSLength)
	}
	if e.lirs+e.hirs > e.cacheSize {
		t.Fatalf("step %d: resident entries %d exceed cacheSize %d", step, e.lirs+e.hirs, e.cacheSize)
	}
	// Every entry in Q must be HIR and resident (Invariant 3/4).
	for ent := e.q.peekLRU(); ent != nil; {
		if ent.flag != HIR || !ent.resident {
			t.Fatalf("step %d: Q entry key=%d has flag=%v resident=%v", step, ent.key, ent.flag, ent.resident)
		}
		ent = ent.qLinks.prev
	}
}

func TestEngine_InvariantsHoldAcrossMixedTrace(t *testing.T) {
	t.Parallel()

	e, err := New(200, 2.0, 1)
	if err != nil {
		t.Fatal(err)
	}

	trace := make([]uint64, 0, 2000)
	for i := uint64(0); i < 300; i++ {
		trace = append(trace, i)
	}
	for i := uint64(0); i < 300; i++ {
		trace = append(trace, i%50)
	}
	for i := uint64(0); i < 1000; i++ {
		trace = append(trace, (i*7)%400)
	}

	for step, key := range trace {
		e.ProcessReference(key)
		assertAllInvariants(t, e, step)
	}
}
