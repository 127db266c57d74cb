package program

import "math"

// BlendMode selects a Porter-Duff compositing operator or a W3C separable
// advanced blend mode.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota
	BlendSrcIn
	BlendSrcOut
	BlendSrcAtop
	BlendDstOver
	BlendDstIn
	BlendDstOut
	BlendDstAtop
	BlendXor
	BlendClear
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
)

// Compose exposes this package's compositing math for a given mode/operand
// pair so internal/vm's stack machine (which interprets BlendCompose as a
// flat opcode rather than a DAG node) can share the identical formulas.
func Compose(mode BlendMode, src, dst Vec4) Vec4 {
	return BlendCompose{Mode: mode, Src: Color{V: src}, Dst: Color{V: dst}}.Eval(EvalContext{})
}

// porterDuffFactors returns (Fa, Fb) such that
// result = src*Fa + dst*Fb, per Porter & Duff (1984).
func porterDuffFactors(mode BlendMode, srcA, dstA float64) (fa, fb float64, ok bool) {
	switch mode {
	case BlendSrcOver:
		return 1, 1 - srcA, true
	case BlendSrcIn:
		return dstA, 0, true
	case BlendSrcOut:
		return 1 - dstA, 0, true
	case BlendSrcAtop:
		return dstA, 1 - srcA, true
	case BlendDstOver:
		return 1 - dstA, 1, true
	case BlendDstIn:
		return 0, srcA, true
	case BlendDstOut:
		return 0, 1 - srcA, true
	case BlendDstAtop:
		return 1 - dstA, srcA, true
	case BlendXor:
		return 1 - dstA, 1 - srcA, true
	case BlendClear:
		return 0, 0, true
	default:
		return 0, 0, false
	}
}

// separableBlend applies a W3C compositing-and-blending separable blend
// function to a single premultiplied-alpha-free (straight) channel pair.
func separableBlend(mode BlendMode, cs, cb float64) float64 {
	switch mode {
	case BlendMultiply:
		return cs * cb
	case BlendScreen:
		return cs + cb - cs*cb
	case BlendOverlay:
		return separableBlend(BlendHardLight, cb, cs)
	case BlendDarken:
		return math.Min(cs, cb)
	case BlendLighten:
		return math.Max(cs, cb)
	case BlendColorDodge:
		if cb == 0 {
			return 0
		}
		if cs == 1 {
			return 1
		}
		return math.Min(1, cb/(1-cs))
	case BlendColorBurn:
		if cb == 1 {
			return 1
		}
		if cs == 0 {
			return 0
		}
		return 1 - math.Min(1, (1-cb)/cs)
	case BlendHardLight:
		if cs <= 0.5 {
			return separableBlend(BlendMultiply, cb, 2*cs)
		}
		return separableBlend(BlendScreen, cb, 2*cs-1)
	case BlendSoftLight:
		if cs <= 0.5 {
			return cb - (1-2*cs)*cb*(1-cb)
		}
		var d float64
		if cb <= 0.25 {
			d = ((16*cb-12)*cb + 4) * cb
		} else {
			d = math.Sqrt(cb)
		}
		return cb + (2*cs-1)*(d-cb)
	case BlendDifference:
		return math.Abs(cs - cb)
	case BlendExclusion:
		return cs + cb - 2*cs*cb
	default:
		return cs
	}
}

// BlendCompose composites Src over Dst under mode, following the W3C
// Compositing and Blending spec's "simple alpha compositing" formula:
// Co = Cs*alphaS + Cb*alphaB*(1-alphaS) for advanced blend modes (where Cs
// is itself first replaced by the blended color), and the classic
// Porter-Duff factor pair for the compositing-only modes.
type BlendCompose struct {
	Mode     BlendMode
	Src, Dst Node
}

func (b BlendCompose) Children() []Node    { return []Node{b.Src, b.Dst} }
func (b BlendCompose) NeedsFace() bool     { return anyNeedsFace(b.Children()) }
func (b BlendCompose) NeedsArea() bool     { return anyNeedsArea(b.Children()) }
func (b BlendCompose) NeedsCentroid() bool { return anyNeedsCentroid(b.Children()) }

func (b BlendCompose) Eval(ctx EvalContext) Vec4 {
	src := b.Src.Eval(ctx)
	dst := b.Dst.Eval(ctx)

	if fa, fb, ok := porterDuffFactors(b.Mode, src.A, dst.A); ok {
		return Vec4{
			R: src.R*fa + dst.R*fb,
			G: src.G*fa + dst.G*fb,
			B: src.B*fa + dst.B*fb,
			A: src.A*fa + dst.A*fb,
		}
	}

	// Advanced separable modes operate on un-premultiplied channels, then
	// recomposite with source-over (CSS Compositing and Blending §3.4).
	blended := Vec4{
		R: separableBlend(b.Mode, src.R, dst.R),
		G: separableBlend(b.Mode, src.G, dst.G),
		B: separableBlend(b.Mode, src.B, dst.B),
	}
	outA := src.A + dst.A*(1-src.A)
	mix := func(cs, cb, cr float64) float64 {
		return (1-dst.A)*src.A*cs + dst.A*src.A*cr + (1-src.A)*dst.A*cb
	}
	return Vec4{
		R: mix(src.R, dst.R, blended.R),
		G: mix(src.G, dst.G, blended.G),
		B: mix(src.B, dst.B, blended.B),
		A: outA,
	}
}

func (b BlendCompose) Simplified() Node {
	src, dst := b.Src.Simplified(), b.Dst.Simplified()
	if sc, ok := AsColor(src); ok {
		if dc, ok := AsColor(dst); ok {
			return Color{V: BlendCompose{b.Mode, sc, dc}.Eval(EvalContext{})}
		}
	}
	return BlendCompose{b.Mode, src, dst}
}

func (b BlendCompose) WithPathInclusion(predicate func(uint64) bool) Node {
	return BlendCompose{b.Mode, b.Src.WithPathInclusion(predicate), b.Dst.WithPathInclusion(predicate)}
}

func (b BlendCompose) Equal(o Node) bool {
	other, ok := o.(BlendCompose)
	return ok && other.Mode == b.Mode && b.Src.Equal(other.Src) && b.Dst.Equal(other.Dst)
}
