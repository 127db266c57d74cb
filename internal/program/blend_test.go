package program

import (
	"math"
	"testing"
)

func approxVec4(t *testing.T, got, want Vec4, tol float64, msg string) {
	t.Helper()
	if math.Abs(got.R-want.R) > tol || math.Abs(got.G-want.G) > tol ||
		math.Abs(got.B-want.B) > tol || math.Abs(got.A-want.A) > tol {
		t.Errorf("%s: got %+v, want %+v", msg, got, want)
	}
}

func TestBlendComposeSrcOverOpaqueSrc(t *testing.T) {
	b := BlendCompose{
		Mode: BlendSrcOver,
		Src:  Color{V: Vec4{1, 0, 0, 1}},
		Dst:  Color{V: Vec4{0, 1, 0, 1}},
	}
	got := b.Eval(EvalContext{})
	approxVec4(t, got, Vec4{1, 0, 0, 1}, 1e-9, "srcOver opaque src")
}

func TestBlendComposeClear(t *testing.T) {
	b := BlendCompose{Mode: BlendClear, Src: Color{V: Vec4{1, 1, 1, 1}}, Dst: Color{V: Vec4{0.5, 0.5, 0.5, 1}}}
	got := b.Eval(EvalContext{})
	approxVec4(t, got, Vec4{}, 1e-9, "clear")
}

func TestBlendMultiplyBlack(t *testing.T) {
	if got := separableBlend(BlendMultiply, 0, 0.7); got != 0 {
		t.Errorf("multiply with 0 source = %v, want 0", got)
	}
}

func TestBlendScreenWhite(t *testing.T) {
	if got := separableBlend(BlendScreen, 1, 0.3); got != 1 {
		t.Errorf("screen with 1 source = %v, want 1", got)
	}
}

func TestBlendComposeSimplifiesConstants(t *testing.T) {
	b := BlendCompose{Mode: BlendSrcOver, Src: Color{V: Vec4{1, 0, 0, 1}}, Dst: Color{V: Vec4{0, 0, 1, 1}}}
	simplified := b.Simplified()
	if _, ok := AsColor(simplified); !ok {
		t.Errorf("expected constant folding to Color, got %T", simplified)
	}
}
