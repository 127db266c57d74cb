package vm

import (
	"math"

	"github.com/alpenglow-go/alpenglow/internal/program"
)

const (
	maxOperandStack = 10
	maxCallStack    = 8
)

// EvalContext mirrors program.EvalContext; the stack machine is evaluated
// against the same per-pixel-sample state as the direct DAG evaluator.
type EvalContext struct {
	HasFace                bool
	Area                   float64
	CentroidX, CentroidY   float64
	MinX, MinY, MaxX, MaxY float64
}

func toProgramContext(ctx EvalContext) program.EvalContext {
	return program.EvalContext{
		HasFace: ctx.HasFace, Area: ctx.Area,
		CentroidX: ctx.CentroidX, CentroidY: ctx.CentroidY,
		MinX: ctx.MinX, MinY: ctx.MinY, MaxX: ctx.MaxX, MaxY: ctx.MaxY,
	}
}

// StackOverflowError is raised when a program exceeds the fixed operand or
// call stack depth.
type StackOverflowError struct{ Which string }

func (e *StackOverflowError) Error() string { return "vm: " + e.Which + " stack overflow" }

// UnreachableOpcodeError is a decode-time data error: an unreachable opcode
// surfaced by the instruction decoder.
type UnreachableOpcodeError struct{ Op Opcode }

func (e *UnreachableOpcodeError) Error() string {
	return "vm: unreachable opcode " + itoa(int(e.Op))
}

// Machine executes a decoded instruction stream against an EvalContext.
type Machine struct {
	instrs   []Instruction
	operand  []program.Vec4
	callStack []int
	pc       int
}

// NewMachine constructs a Machine for a fixed instruction list (reused
// across many Run calls to avoid per-pixel allocation, per the rasterizer's
// "scratch buffers owned by the rasterizer instance" policy,).
func NewMachine(instrs []Instruction) *Machine {
	return &Machine{instrs: instrs}
}

// Run executes the program from dword 0 against ctx and returns the final
// top-of-stack value.
func (m *Machine) Run(ctx EvalContext) (program.Vec4, error) {
	m.operand = m.operand[:0]
	m.callStack = m.callStack[:0]
	m.pc = 0
	pctx := toProgramContext(ctx)

	for m.pc < len(m.instrs) {
		in := m.instrs[m.pc]
		if in.IsLabel {
			m.pc++
			continue
		}
		advance, err := m.step(in, pctx)
		if err != nil {
			return program.Vec4{}, err
		}
		if advance == exitSignal {
			break
		}
		m.pc += advance
	}
	if len(m.operand) == 0 {
		return program.Vec4{}, nil
	}
	return m.operand[len(m.operand)-1], nil
}

const exitSignal = -1

func (m *Machine) push(v program.Vec4) error {
	if len(m.operand) >= maxOperandStack {
		return &StackOverflowError{Which: "operand"}
	}
	m.operand = append(m.operand, v)
	return nil
}

func (m *Machine) pop() program.Vec4 {
	if len(m.operand) == 0 {
		return program.Vec4{}
	}
	v := m.operand[len(m.operand)-1]
	m.operand = m.operand[:len(m.operand)-1]
	return v
}

func (m *Machine) top() program.Vec4 {
	if len(m.operand) == 0 {
		return program.Vec4{}
	}
	return m.operand[len(m.operand)-1]
}

func (m *Machine) setTop(v program.Vec4) {
	if len(m.operand) == 0 {
		m.operand = append(m.operand, v)
		return
	}
	m.operand[len(m.operand)-1] = v
}

// step executes one instruction and returns the pc delta to apply (or
// exitSignal to terminate).
func (m *Machine) step(in Instruction, ctx program.EvalContext) (int, error) {
	switch in.Op {
	case OpExit:
		return exitSignal, nil
	case OpReturn:
		if len(m.callStack) == 0 {
			return exitSignal, nil
		}
		ret := m.callStack[len(m.callStack)-1]
		m.callStack = m.callStack[:len(m.callStack)-1]
		return ret - m.pc, nil
	case OpStackBlend:
		dst, src := m.pop(), m.pop()
		if err := m.push(program.Compose(program.BlendSrcOver, src, dst)); err != nil {
			return 0, err
		}
		return 1, nil
	case OpLinearBlend:
		t, b, a := m.pop(), m.pop(), m.pop()
		tt := clamp01(t.A)
		if err := m.push(lerp(a, b, tt)); err != nil {
			return 0, err
		}
		return 1, nil
	case OpBlendCompose:
		if len(in.Operands) < 1 {
			return 0, &UnreachableOpcodeError{Op: in.Op}
		}
		mode := program.BlendMode(in.Operands[0])
		dst, src := m.pop(), m.pop()
		if err := m.push(program.Compose(mode, src, dst)); err != nil {
			return 0, err
		}
		return 1, nil
	case OpOpaqueJump:
		// The Machine walks the decoded Instruction list rather than the raw
		// dword stream, so the offset here is interpreted in instruction
		// count rather than dwords (Decode already collapsed each
		// instruction's operand dwords into one Instruction).
		if len(in.Operands) < 1 {
			return 0, &UnreachableOpcodeError{Op: in.Op}
		}
		if m.top().A >= 1-1e-9 {
			return 1 + int(int32(in.Operands[0])), nil
		}
		return 1, nil
	case OpPremultiply:
		v := m.top()
		m.setTop(program.Vec4{R: v.R * v.A, G: v.G * v.A, B: v.B * v.A, A: v.A})
		return 1, nil
	case OpUnpremultiply:
		v := m.top()
		if v.A <= 0 {
			m.setTop(program.Vec4{})
		} else {
			m.setTop(program.Vec4{R: v.R / v.A, G: v.G / v.A, B: v.B / v.A, A: v.A})
		}
		return 1, nil
	case OpSRGBToLinear:
		m.setTop(program.ConvertColorSpace(program.SRGB, program.LinearSRGB, m.top()))
		return 1, nil
	case OpLinearToSRGB:
		m.setTop(program.ConvertColorSpace(program.LinearSRGB, program.SRGB, m.top()))
		return 1, nil
	case OpDisplayP3ToLinear:
		m.setTop(program.ConvertColorSpace(program.DisplayP3, program.LinearSRGB, m.top()))
		return 1, nil
	case OpLinearToDisplayP3:
		m.setTop(program.ConvertColorSpace(program.LinearSRGB, program.DisplayP3, m.top()))
		return 1, nil
	case OpOklabToLinear:
		m.setTop(program.ConvertColorSpace(program.Oklab, program.LinearSRGB, m.top()))
		return 1, nil
	case OpLinearToOklab:
		m.setTop(program.ConvertColorSpace(program.LinearSRGB, program.Oklab, m.top()))
		return 1, nil
	case OpNormalize:
		v := m.top()
		length := math.Sqrt(v.R*v.R + v.G*v.G + v.B*v.B)
		if length > 0 {
			m.setTop(program.Vec4{R: v.R / length, G: v.G / length, B: v.B / length, A: v.A})
		}
		return 1, nil
	case OpNormalDebug:
		v := m.top()
		m.setTop(program.Vec4{R: v.R*0.5 + 0.5, G: v.G*0.5 + 0.5, B: v.B*0.5 + 0.5, A: 1})
		return 1, nil
	case OpMultiplyScalar:
		if len(in.Operands) < 1 {
			return 0, &UnreachableOpcodeError{Op: in.Op}
		}
		v := m.top()
		k := math.Float32frombits(in.Operands[0])
		m.setTop(program.Vec4{R: v.R * float64(k), G: v.G * float64(k), B: v.B * float64(k), A: v.A * float64(k)})
		return 1, nil
	case OpPush:
		if err := m.push(dwordsToVec4(in.Operands)); err != nil {
			return 0, err
		}
		return 1, nil
	default:
		return 0, &UnreachableOpcodeError{Op: in.Op}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b program.Vec4, t float64) program.Vec4 {
	return program.Vec4{
		R: (1-t)*a.R + t*b.R,
		G: (1-t)*a.G + t*b.G,
		B: (1-t)*a.B + t*b.B,
		A: (1-t)*a.A + t*b.A,
	}
}

func float32Bits(f float32) uint32 { return math.Float32bits(f) }

func dwordsToVec4(operands []uint32) program.Vec4 {
	var v program.Vec4
	fields := [4]*float64{&v.R, &v.G, &v.B, &v.A}
	for i := 0; i < len(operands) && i < 4; i++ {
		*fields[i] = float64(math.Float32frombits(operands[i]))
	}
	return v
}
