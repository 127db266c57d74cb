package vm

import "math"

// Instruction is the decoded form of one bytecode entry. Location carries
// no dwords and exists purely as a compile-time jump label.
type Instruction struct {
	Op       Opcode
	Operands []uint32 // dwords following the opcode dword, if any
	IsLabel  bool
	Label    *Location
}

// Location is a forward-jump target. Two Locations are considered the same
// jump destination by instructionsEquals if they occupy the same position
// (count of preceding non-label instructions) in their respective streams.
type Location struct {
	name string
}

// NewLocation creates a named label for use in a program being assembled.
func NewLocation(name string) *Location { return &Location{name: name} }

// Encode serializes a list of instructions into a dword stream. Jump
// instructions (OpOpaqueJump and any instruction carrying a *Location
// operand via JumpOperand) are resolved to dword offsets from the
// instruction immediately following the jump to the label's position.
func Encode(instrs []Instruction) []uint32 {
	positions := make(map[*Location]int)
	dwordPos := 0
	for _, in := range instrs {
		if in.IsLabel {
			positions[in.Label] = dwordPos
			continue
		}
		dwordPos += 1 + len(in.Operands)
	}

	var out []uint32
	dwordPos = 0
	for _, in := range instrs {
		if in.IsLabel {
			continue
		}
		first := uint32(in.Op)
		operands := in.Operands
		if in.Op == OpOpaqueJump && in.Label != nil {
			target := positions[in.Label]
			here := dwordPos + 1 + len(operands)
			offset := uint32(target - here)
			operands = append([]uint32{offset}, operands...)
		}
		out = append(out, first)
		out = append(out, operands...)
		dwordPos += 1 + len(operands)
	}
	return out
}

// Decode parses a dword stream back into an instruction list. Since the
// stream carries no label markers, decoded jump targets are left as raw
// dword offsets (Instruction.Operands[0] for OpOpaqueJump) rather than
// resolved *Location pointers.
func Decode(dwords []uint32) ([]Instruction, error) {
	var out []Instruction
	i := 0
	for i < len(dwords) {
		first := dwords[i]
		n := instructionLength(first)
		if n < 1 || i+n > len(dwords) {
			return nil, &DecodeError{Offset: i, Reason: "truncated or unreachable opcode"}
		}
		out = append(out, Instruction{
			Op:       Opcode(first & 0xFF),
			Operands: append([]uint32(nil), dwords[i+1:i+n]...),
		})
		i += n
	}
	return out, nil
}

// DecodeError reports a malformed instruction stream.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return "vm: decode error at dword " + itoa(e.Offset) + ": " + e.Reason
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// instructionsEquals implements the round-trip contract:
// non-location instructions compare pairwise by opcode and operands;
// equivalent label placements (same count of preceding non-label
// instructions in each stream) are treated as equal, and differing
// placements are not.
func instructionsEquals(a, b []Instruction) bool {
	av, bv := stripLabelPositions(a), stripLabelPositions(b)
	if len(av.instrs) != len(bv.instrs) {
		return false
	}
	for i := range av.instrs {
		if av.instrs[i].Op != bv.instrs[i].Op {
			return false
		}
		if len(av.instrs[i].Operands) != len(bv.instrs[i].Operands) {
			return false
		}
		for j := range av.instrs[i].Operands {
			if av.instrs[i].Operands[j] != bv.instrs[i].Operands[j] {
				return false
			}
		}
	}
	if len(av.labelPositions) != len(bv.labelPositions) {
		return false
	}
	for i := range av.labelPositions {
		if av.labelPositions[i] != bv.labelPositions[i] {
			return false
		}
	}
	return true
}

type strippedStream struct {
	instrs        []Instruction
	labelPositions []int
}

func stripLabelPositions(instrs []Instruction) strippedStream {
	var s strippedStream
	count := 0
	for _, in := range instrs {
		if in.IsLabel {
			s.labelPositions = append(s.labelPositions, count)
			continue
		}
		s.instrs = append(s.instrs, in)
		count++
	}
	return s
}

// relativeTolerance is the agreement bound between the direct evaluator
// (internal/program) and the compiled stack machine.
const relativeTolerance = 1e-5

func approxEqualRel(a, b float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return diff <= relativeTolerance*scale
}
