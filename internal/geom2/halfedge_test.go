package geom2

import "testing"

func square(pathID uint64, x0, y0, x1, y1 int32) []*IntegerEdge {
	return []*IntegerEdge{
		{PathID: pathID, X0: x0, Y0: y0, X1: x1, Y1: y0},
		{PathID: pathID, X0: x1, Y0: y0, X1: x1, Y1: y1},
		{PathID: pathID, X0: x1, Y0: y1, X1: x0, Y1: y1},
		{PathID: pathID, X0: x0, Y0: y1, X1: x0, Y1: y0},
	}
}

func TestBuildTraceSingleSquare(t *testing.T) {
	edges := square(1, 0, 0, 10, 10)
	g, err := Build(edges)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Edges) != 8 {
		t.Fatalf("got %d half-edges, want 8", len(g.Edges))
	}
	if err := g.SortAndLink(); err != nil {
		t.Fatal(err)
	}
	boundaries := Trace(g)
	var inner, outer int
	for _, b := range boundaries {
		if b.Inner {
			inner++
		} else {
			outer++
		}
	}
	if inner != 1 || outer != 1 {
		t.Fatalf("got %d inner, %d outer boundaries, want 1 and 1", inner, outer)
	}

	faces := AssignHoles(boundaries)
	if len(faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(faces))
	}
	if len(faces[0].Holes) != 0 {
		t.Errorf("got %d holes, want 0", len(faces[0].Holes))
	}

	maps := ComputeWindingMaps(faces, edges)
	if len(maps) != 1 {
		t.Fatalf("got %d winding maps, want 1", len(maps))
	}
	if w := maps[0][1]; w == 0 {
		t.Errorf("winding number for path 1 inside the square is 0, want nonzero")
	}
}

func TestSquareWithHole(t *testing.T) {
	outer := square(1, 0, 0, 100, 100)
	// Inner hole ring, wound opposite to the outer boundary.
	hole := []*IntegerEdge{
		{PathID: 1, X0: 30, Y0: 30, X1: 30, Y1: 70},
		{PathID: 1, X0: 30, Y0: 70, X1: 70, Y1: 70},
		{PathID: 1, X0: 70, Y0: 70, X1: 70, Y1: 30},
		{PathID: 1, X0: 70, Y0: 30, X1: 30, Y1: 30},
	}
	edges := append(outer, hole...)
	g, err := Build(edges)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SortAndLink(); err != nil {
		t.Fatal(err)
	}
	boundaries := Trace(g)
	if len(boundaries) != 2 {
		t.Fatalf("got %d boundaries, want 2", len(boundaries))
	}
}
