package program

import "testing"

type fakeSampler struct {
	w, h int
	at   func(x, y int) (Vec4, bool)
}

func (f fakeSampler) Width() int  { return f.w }
func (f fakeSampler) Height() int { return f.h }
func (f fakeSampler) SampleNearest(x, y int) (Vec4, bool) { return f.at(x, y) }

func TestImageEvalSamplesAtTransformedCentroid(t *testing.T) {
	s := fakeSampler{w: 4, h: 4, at: func(x, y int) (Vec4, bool) {
		if x == 2 && y == 3 {
			return Vec4{1, 0, 0, 1}, true
		}
		return Vec4{}, true
	}}
	im := Image{Sampler: s, A: 1, D: 1, Wrap: WrapClamp}
	got := im.Eval(EvalContext{CentroidX: 2.4, CentroidY: 3.9})
	if got.R != 1 {
		t.Errorf("expected sample at (2,3), got %+v", got)
	}
}

func TestImageEvalClampsOutOfBounds(t *testing.T) {
	s := fakeSampler{w: 2, h: 2, at: func(x, y int) (Vec4, bool) {
		if x == 1 && y == 1 {
			return Vec4{1, 1, 1, 1}, true
		}
		return Vec4{}, false
	}}
	im := Image{Sampler: s, A: 1, D: 1, Wrap: WrapClamp}
	got := im.Eval(EvalContext{CentroidX: 50, CentroidY: 50})
	if got.R != 1 {
		t.Errorf("expected clamped sample (1,1), got %+v", got)
	}
}

func TestImageEvalNilSamplerIsTransparent(t *testing.T) {
	im := Image{}
	got := im.Eval(EvalContext{})
	if got != (Vec4{}) {
		t.Errorf("nil sampler should evaluate transparent, got %+v", got)
	}
}
