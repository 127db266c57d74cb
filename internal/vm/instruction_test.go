package vm

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	instrs := []Instruction{
		{Op: OpPremultiply},
		{Op: OpMultiplyScalar, Operands: []uint32{0x3f000000}}, // 0.5f
		{Op: OpReturn},
	}
	dwords := Encode(instrs)
	decoded, err := Decode(dwords)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !instructionsEquals(instrs, decoded) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, instrs)
	}
}

func TestInstructionsEqualsIgnoresLabelCountAtSamePosition(t *testing.T) {
	loc := NewLocation("x")
	a := []Instruction{
		{IsLabel: true, Label: loc},
		{Op: OpExit},
	}
	b := []Instruction{
		{Op: OpExit},
	}
	// A label with nothing before it occupies position 0 in both streams
	// (0 preceding non-label instructions), so the streams are equivalent.
	if !instructionsEquals(a, b) {
		t.Errorf("expected label-only difference to compare equal")
	}
}

func TestInstructionsEqualsDetectsDifferentLabelPlacement(t *testing.T) {
	loc := NewLocation("x")
	a := []Instruction{
		{Op: OpPremultiply},
		{IsLabel: true, Label: loc},
		{Op: OpExit},
	}
	b := []Instruction{
		{IsLabel: true, Label: loc},
		{Op: OpPremultiply},
		{Op: OpExit},
	}
	if instructionsEquals(a, b) {
		t.Errorf("expected differing label placement to compare unequal")
	}
}

func TestDecodeTruncatedStreamErrors(t *testing.T) {
	dwords := []uint32{uint32(OpPush)} // Push needs 5 dwords total
	if _, err := Decode(dwords); err == nil {
		t.Errorf("expected truncated-stream decode error")
	}
}

func TestOpaqueJumpSkipsForwardOffset(t *testing.T) {
	instrs := []Instruction{
		{Op: OpPush, Operands: []uint32{floatBits(1), floatBits(1), floatBits(1), floatBits(1)}},
		{Op: OpOpaqueJump, Operands: []uint32{1}},
		{Op: OpMultiplyScalar, Operands: []uint32{floatBits(0.5)}},
		{Op: OpExit},
	}
	m := NewMachine(instrs)
	got, err := m.Run(EvalContext{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.A != 1 {
		t.Errorf("opaque jump should have skipped the scalar multiply, got A=%v", got.A)
	}
}

func floatBits(f float64) uint32 {
	return float32Bits(float32(f))
}
