//go:build go1.18

package lirs

import "testing"

// FuzzEngine_InvariantsNeverViolated drives ProcessReference with an
// arbitrary byte stream turned into a bounded keyspace and checks the
// invariants of §3/§8 after every reference. Guards against panics and
// invariant drift on inputs no hand-written scenario would think to try.
func FuzzEngine_InvariantsNeverViolated(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	f.Add([]byte{1, 1, 1, 1, 1})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		const limit = 1 << 12
		if len(data) > limit {
			data = data[:limit]
		}

		e, err := New(200, 2.0, 1)
		if err != nil {
			t.Fatal(err)
		}

		// Map arbitrary bytes to a small keyspace so the fuzzer can
		// actually exercise repeats, promotions, and evictions instead
		// of producing all-distinct keys.
		for i, b := range data {
			key := uint64(b) % 64
			e.ProcessReference(key)
			assertAllInvariants(t, e, i)
		}
		if hr := e.HitRate(); hr < 0 || hr > 100 {
			t.Fatalf("HitRate() out of [0,100]: %v", hr)
		}
	})
}
