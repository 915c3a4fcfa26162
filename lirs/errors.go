package lirs

// ConfigError reports an out-of-bounds Engine constructor argument.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return "lirs: " + e.msg }

func newConfigError(msg string) error { return &ConfigError{msg: msg} }

// InvariantViolation reports a failed invariant assertion. It should
// never be observed for a correct implementation on any input trace;
// it exists so a debug build fails loudly with diagnostic context
// instead of silently corrupting state.
type InvariantViolation struct {
	msg string
}

func (e *InvariantViolation) Error() string { return "lirs: invariant violated: " + e.msg }

func panicInvariant(msg string) {
	panic(&InvariantViolation{msg: msg})
}
