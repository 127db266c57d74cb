package filterkernel

import (
	"math"
	"testing"
)

func unitSquareAt(cx, cy, half float64) []Edge {
	pts := [][2]float64{
		{cx - half, cy - half},
		{cx + half, cy - half},
		{cx + half, cy + half},
		{cx - half, cy + half},
	}
	var edges []Edge
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		edges = append(edges, Edge{a[0], a[1], b[0], b[1]})
	}
	return edges
}

func TestBoxWeightIsArea(t *testing.T) {
	if w := BoxWeight(0.37); w != 0.37 {
		t.Errorf("BoxWeight(0.37) = %v, want 0.37", w)
	}
}

func TestMitchellNetravali1DAtZero(t *testing.T) {
	got := MitchellNetravali1D(0)
	want := (6 - 2.0/3.0) / 6
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("MitchellNetravali1D(0) = %v, want %v", got, want)
	}
}

func TestMitchellNetravaliFullCoverageNormalizesNearBox(t *testing.T) {
	edges := unitSquareAt(0, 0, 2) // large enough to cover the whole kernel support
	got := MitchellNetravaliWeight(edges, 48)
	if math.Abs(got-1) > 1e-2 {
		t.Errorf("full-coverage Mitchell-Netravali weight = %v, want ~1", got)
	}
}

func TestBilinearFullCoverageIsOne(t *testing.T) {
	edges := unitSquareAt(0, 0, 1) // covers the whole bilinear support [-1,1]^2
	got := BilinearWeight(edges)
	if math.Abs(got-1) > 1e-6 {
		t.Errorf("full-coverage bilinear weight = %v, want 1", got)
	}
}
