package mbqcirq

import "errors"

// Compilation errors. All of them abort compilation immediately; a failed
// compilation never returns a partial program.
var (
	// ErrQubitPoolExhausted means the physical qubit pool ran dry. MaxSpace is
	// precomputed to be sufficient for a well-formed pattern, so hitting this
	// is an internal consistency error rather than a user error.
	ErrQubitPoolExhausted = errors.New("qubit pool exhausted")

	// ErrUnknownNode means a command or correction domain referenced a node
	// that is neither live, measured, nor listed in the pattern's
	// deterministic results.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnsupportedPlane means the measurement plane is not compilable under
	// the selected plane-support option.
	ErrUnsupportedPlane = errors.New("unsupported measurement plane")

	// ErrOptionType means a compile option carried an invalid value.
	ErrOptionType = errors.New("invalid compile option")

	// ErrCliffordIndex means a local Clifford index was outside 0..23.
	ErrCliffordIndex = errors.New("clifford index out of range")

	// ErrUnorderedCondition means a conditional operation reads a classical
	// register before any measurement writes it.
	ErrUnorderedCondition = errors.New("condition precedes its measurement")
)
