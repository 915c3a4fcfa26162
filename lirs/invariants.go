package lirs

// assertInvariants checks the invariants of §3/§8 that are cheap enough
// to run after every reference in a debug build (-tags lirsim_debug).
// A violation here is always a programmer bug in this package, never a
// malformed trace, so it panics with diagnostic context rather than
// returning an error.
func (e *Engine) assertInvariants() {
	if le := e.s.peekLRU(); le != nil && le.flag != LIR {
		panicInvariant("LRU of S is not LIR")
	}
	if e.lirs > e.maxlirs {
		panicInvariant("lirs exceeds maxlirs")
	}
	if e.hirs > e.maxhirs {
		panicInvariant("hirs exceeds maxhirs")
	}
	if e.s.len() > e.maxSLength {
		panicInvariant("|S| exceeds maxSLength")
	}
	if e.lirs+e.hirs > e.cacheSize {
		panicInvariant("resident entries exceed cacheSize")
	}
}
