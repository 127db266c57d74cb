package alpenglow

import "fmt"

// UsageError reports an invalid combination of Options. It is returned by
// [Options.validate] before any geometry or rendering work begins, so
// callers can fail fast on misconfiguration.
type UsageError struct {
	Field  string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("alpenglow: invalid option %s: %s", e.Field, e.Reason)
}

// GeometryError reports a failure in the constructive area geometry
// pipeline: degenerate input that the exact-arithmetic kernels could not
// resolve (coordinates outside the tile's representable range, a boundary
// trace that failed to close).
type GeometryError struct {
	Op     string
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("alpenglow: geometry error in %s: %s", e.Op, e.Reason)
}

// DecodeError reports a malformed instruction stream: an opcode outside the
// known ranges, a forward jump with no matching label, or a dword count
// that does not match the opcode's declared operand width.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("alpenglow: decode error at dword %d: %s", e.Offset, e.Reason)
}
