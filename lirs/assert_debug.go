//go:build lirsim_debug

package lirs

// debugAsserts gates the invariant checks in assertInvariants.
// Build with -tags lirsim_debug to enable them; release builds skip
// them entirely (see assert_release.go) since §8's invariants are
// proven by construction and the checks are not needed on every
// reference in production use.
const debugAsserts = true
