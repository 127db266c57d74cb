package program

import "testing"

func TestFilterScalesAlpha(t *testing.T) {
	f := Filter{Kind: FilterBox, Weight: 0.5, Child: Color{V: Vec4{1, 1, 1, 1}}}
	got := f.Eval(EvalContext{})
	if got.A != 0.5 {
		t.Errorf("A = %v, want 0.5", got.A)
	}
}

func TestFilterSimplifiesFullWeightToChild(t *testing.T) {
	f := Filter{Kind: FilterBox, Weight: 1, Child: Color{V: Vec4{1, 0, 0, 1}}}
	if _, ok := AsColor(f.Simplified()); !ok {
		t.Errorf("full-weight filter should simplify to a Color, got %T", f.Simplified())
	}
}

func TestFilterSimplifiesZeroWeightToTransparent(t *testing.T) {
	f := Filter{Kind: FilterBox, Weight: 0, Child: Color{V: Vec4{1, 0, 0, 1}}}
	col, ok := AsColor(f.Simplified())
	if !ok || col.V.A != 0 {
		t.Errorf("zero-weight filter should simplify to transparent Color, got %+v", f.Simplified())
	}
}
