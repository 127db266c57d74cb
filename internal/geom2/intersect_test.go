package geom2

import (
	"testing"

	"github.com/alpenglow-go/alpenglow/internal/rational"
)

func TestSegmentIntersectDiagonalCross(t *testing.T) {
	a := &IntegerEdge{X0: 0, Y0: 0, X1: 100, Y1: 100}
	b := &IntegerEdge{X0: 0, Y0: 100, X1: 100, Y1: 0}
	hits, err := SegmentIntersect(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d intersections, want 1", len(hits))
	}
	h := hits[0]
	half, _ := rational.New(1, 2)
	if !rational.Equal(h.T0, half) || !rational.Equal(h.T1, half) {
		t.Errorf("t0=%v t1=%v, want both 1/2", h.T0, h.T1)
	}
	if rational.Float64(h.PX) != 50 || rational.Float64(h.PY) != 50 {
		t.Errorf("point = (%v,%v), want (50,50)", rational.Float64(h.PX), rational.Float64(h.PY))
	}
}

func TestSegmentIntersectCollinearOverlap(t *testing.T) {
	a := &IntegerEdge{X0: 0, Y0: 0, X1: 100, Y1: 200}
	b := &IntegerEdge{X0: 50, Y0: 100, X1: 150, Y1: 300}
	hits, err := SegmentIntersect(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d intersections, want 2", len(hits))
	}
	if rational.Float64(hits[0].PX) != 50 || rational.Float64(hits[0].PY) != 100 {
		t.Errorf("first overlap point = (%v,%v), want (50,100)", rational.Float64(hits[0].PX), rational.Float64(hits[0].PY))
	}
	if rational.Float64(hits[1].PX) != 100 || rational.Float64(hits[1].PY) != 200 {
		t.Errorf("second overlap point = (%v,%v), want (100,200)", rational.Float64(hits[1].PX), rational.Float64(hits[1].PY))
	}
}

func TestIntersectionStrategiesAgree(t *testing.T) {
	build := func() []*IntegerEdge {
		return []*IntegerEdge{
			{X0: 0, Y0: 0, X1: 100, Y1: 100},
			{X0: 0, Y0: 100, X1: 100, Y1: 0},
			{X0: 0, Y0: 50, X1: 100, Y1: 50},
		}
	}
	strategies := []IntersectionStrategy{Quadratic, BoundsTree, ArrayBoundsTree}
	var allSplits [][]Frac
	for _, strat := range strategies {
		edges := build()
		if err := IntersectAll(edges, strat); err != nil {
			t.Fatal(err)
		}
		var splits []Frac
		for _, e := range edges {
			splits = append(splits, e.SortedSplits()...)
		}
		allSplits = append(allSplits, splits)
	}
	for i := 1; i < len(allSplits); i++ {
		if len(allSplits[i]) != len(allSplits[0]) {
			t.Fatalf("strategy %d produced %d split values, want %d", i, len(allSplits[i]), len(allSplits[0]))
		}
	}
}
