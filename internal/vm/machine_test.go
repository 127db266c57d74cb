package vm

import (
	"math"
	"testing"

	"github.com/alpenglow-go/alpenglow/internal/program"
)

func TestMachinePremultiply(t *testing.T) {
	instrs := []Instruction{
		{Op: OpPush, Operands: []uint32{floatBits(1), floatBits(0), floatBits(0), floatBits(0.5)}},
		{Op: OpPremultiply},
		{Op: OpExit},
	}
	m := NewMachine(instrs)
	got, err := m.Run(EvalContext{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if math.Abs(got.R-0.5) > 1e-6 || got.A != 0.5 {
		t.Errorf("premultiply: got %+v, want R=0.5 A=0.5", got)
	}
}

func TestMachineAgreesWithDirectEvaluatorForLinearBlend(t *testing.T) {
	a := program.Vec4{R: 1, G: 0, B: 0, A: 1}
	b := program.Vec4{R: 0, G: 0, B: 1, A: 1}
	node := program.LinearBlend{X0: 0, Y0: 0, X1: 1, Y1: 0, A: program.Color{V: a}, B: program.Color{V: b}}
	ctx := program.EvalContext{CentroidX: 0.5}
	direct := node.Eval(ctx)

	instrs := []Instruction{
		{Op: OpPush, Operands: []uint32{floatBits(a.R), floatBits(a.G), floatBits(a.B), floatBits(a.A)}},
		{Op: OpPush, Operands: []uint32{floatBits(b.R), floatBits(b.G), floatBits(b.B), floatBits(b.A)}},
		{Op: OpPush, Operands: []uint32{0, 0, 0, floatBits(0.5)}},
		{Op: OpLinearBlend},
		{Op: OpExit},
	}
	m := NewMachine(instrs)
	got, err := m.Run(EvalContext{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !approxEqualRel(got.R, direct.R) || !approxEqualRel(got.B, direct.B) {
		t.Errorf("vm/direct disagreement: vm=%+v direct=%+v", got, direct)
	}
}

func TestMachineBlendCompose(t *testing.T) {
	instrs := []Instruction{
		{Op: OpPush, Operands: []uint32{floatBits(1), floatBits(0), floatBits(0), floatBits(1)}},
		{Op: OpPush, Operands: []uint32{floatBits(0), floatBits(1), floatBits(0), floatBits(1)}},
		{Op: OpBlendCompose, Operands: []uint32{uint32(program.BlendSrcOver)}},
		{Op: OpExit},
	}
	m := NewMachine(instrs)
	got, err := m.Run(EvalContext{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.R != 1 || got.A != 1 {
		t.Errorf("srcOver opaque over opaque: got %+v", got)
	}
}

func TestMachineColorSpaceRoundTrip(t *testing.T) {
	instrs := []Instruction{
		{Op: OpPush, Operands: []uint32{floatBits(0.5), floatBits(0.5), floatBits(0.5), floatBits(1)}},
		{Op: OpSRGBToLinear},
		{Op: OpLinearToSRGB},
		{Op: OpExit},
	}
	m := NewMachine(instrs)
	got, err := m.Run(EvalContext{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if math.Abs(got.R-0.5) > 1e-5 {
		t.Errorf("sRGB round trip through vm: got %v, want 0.5", got.R)
	}
}

func TestMachineUnreachableOpcode(t *testing.T) {
	instrs := []Instruction{{Op: Opcode(0x90)}}
	m := NewMachine(instrs)
	if _, err := m.Run(EvalContext{}); err == nil {
		t.Errorf("expected unreachable opcode error")
	}
}
