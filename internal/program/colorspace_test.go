package program

import (
	"math"
	"testing"
)

func TestSRGBRoundTrip(t *testing.T) {
	for _, c := range []float64{0, 0.01, 0.2126, 0.55, 1} {
		lin := srgbToLinear(c)
		back := linearToSRGB(lin)
		if math.Abs(back-c) > 1e-9 {
			t.Errorf("sRGB round trip for %v: got %v", c, back)
		}
	}
}

func TestOklabRoundTrip(t *testing.T) {
	v := Vec4{0.5, 0.25, 0.75, 1}
	lab := linearSRGBToOklab(v)
	back := oklabToLinearSRGB(lab)
	if math.Abs(back.R-v.R) > 1e-6 || math.Abs(back.G-v.G) > 1e-6 || math.Abs(back.B-v.B) > 1e-6 {
		t.Errorf("Oklab round trip: got %+v, want %+v", back, v)
	}
}

func TestColorSpaceConvertIdentitySimplifies(t *testing.T) {
	n := ColorSpaceConvert{From: SRGB, To: SRGB, Child: Color{V: Vec4{1, 1, 1, 1}}}
	simplified := n.Simplified()
	if _, ok := AsColor(simplified); !ok {
		t.Errorf("identity conversion should simplify to the child, got %T", simplified)
	}
}

func TestColorSpaceConvertFoldsConstant(t *testing.T) {
	n := ColorSpaceConvert{From: SRGB, To: LinearSRGB, Child: Color{V: Vec4{0.5, 0.5, 0.5, 1}}}
	simplified := n.Simplified()
	col, ok := AsColor(simplified)
	if !ok {
		t.Fatalf("expected Color, got %T", simplified)
	}
	want := srgbToLinear(0.5)
	if math.Abs(col.V.R-want) > 1e-9 {
		t.Errorf("R = %v, want %v", col.V.R, want)
	}
}
