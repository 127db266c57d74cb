package geom2

import (
	"errors"
	"sort"

	"github.com/alpenglow-go/alpenglow/internal/rational"
)

// HalfEdge is a directed segment between two rational endpoints, stored in
// an arena and referencing its neighbors by index rather than through cyclic
// pointer structures. NoEdge is the sentinel used where a pointer-based
// structure would use nil.
type HalfEdge struct {
	PathID     uint64
	EdgeID     int
	T0, T1     rational.Q128
	StartX, StartY rational.Q128
	EndX, EndY     rational.Q128
	Twin, Next, Prev int
	FaceLeft   int
	visited    bool
}

// NoEdge is the sentinel index meaning "no half-edge".
const NoEdge = -1

// Graph owns the half-edge arena for one tile's CAG pass.
type Graph struct {
	Edges []HalfEdge
}

// vertexKey groups half-edges by their exact rational start point.
type vertexKey struct {
	X, Y rational.Q128
}

// Build splits every IntegerEdge at its recorded t-values into
// RationalHalfEdges and their twins. It does not
// yet sort or link; call SortAndLink afterward.
func Build(edges []*IntegerEdge) (*Graph, error) {
	g := &Graph{}
	for edgeID, e := range edges {
		splits := e.SortedSplits()
		x0 := rational.FromInt(int64(e.X0))
		y0 := rational.FromInt(int64(e.Y0))
		x1 := rational.FromInt(int64(e.X1))
		y1 := rational.FromInt(int64(e.Y1))
		for i := 0; i+1 < len(splits); i++ {
			ta := fracToQ(splits[i])
			tb := fracToQ(splits[i+1])
			sx, sy, err := lerpQ(x0, y0, x1, y1, ta)
			if err != nil {
				return nil, err
			}
			ex, ey, err := lerpQ(x0, y0, x1, y1, tb)
			if err != nil {
				return nil, err
			}
			if rational.Equal(sx, ex) && rational.Equal(sy, ey) {
				continue // degenerate sub-segment
			}
			fwdIdx := len(g.Edges)
			g.Edges = append(g.Edges, HalfEdge{
				PathID: e.PathID, EdgeID: edgeID, T0: ta, T1: tb,
				StartX: sx, StartY: sy, EndX: ex, EndY: ey,
				Twin: fwdIdx + 1, Next: NoEdge, Prev: NoEdge, FaceLeft: NoEdge,
			})
			g.Edges = append(g.Edges, HalfEdge{
				PathID: e.PathID, EdgeID: edgeID, T0: tb, T1: ta,
				StartX: ex, StartY: ey, EndX: sx, EndY: sy,
				Twin: fwdIdx, Next: NoEdge, Prev: NoEdge, FaceLeft: NoEdge,
			})
		}
	}
	return g, nil
}

func fracToQ(f Frac) rational.Q128 {
	q, _ := rational.New(f.Num, f.Den)
	return q
}

func lerpQ(x0, y0, x1, y1, t rational.Q128) (rational.Q128, rational.Q128, error) {
	dx, err := rational.Sub(x1, x0)
	if err != nil {
		return rational.Q128{}, rational.Q128{}, err
	}
	dy, err := rational.Sub(y1, y0)
	if err != nil {
		return rational.Q128{}, rational.Q128{}, err
	}
	tdx, err := rational.Mul(t, dx)
	if err != nil {
		return rational.Q128{}, rational.Q128{}, err
	}
	tdy, err := rational.Mul(t, dy)
	if err != nil {
		return rational.Q128{}, rational.Q128{}, err
	}
	px, err := rational.Add(x0, tdx)
	if err != nil {
		return rational.Q128{}, rational.Q128{}, err
	}
	py, err := rational.Add(y0, tdy)
	if err != nil {
		return rational.Q128{}, rational.Q128{}, err
	}
	return px, py, nil
}

// SortAndLink groups half-edges by start vertex, orders each group by
// outgoing angle using only exact cross/dot products, and links next/prev
// so that each half-edge's Next is the boundary-continuing edge at its
// destination vertex.
func (g *Graph) SortAndLink() error {
	byVertex := make(map[vertexKey][]int)
	for i, e := range g.Edges {
		k := vertexKey{e.StartX, e.StartY}
		byVertex[k] = append(byVertex[k], i)
	}
	order := make(map[vertexKey][]int, len(byVertex))
	for k, idxs := range byVertex {
		sorted := append([]int(nil), idxs...)
		sort.Slice(sorted, func(i, j int) bool {
			return lessAngle(g.Edges[sorted[i]], g.Edges[sorted[j]])
		})
		order[k] = sorted
	}
	for i := range g.Edges {
		twin := g.Edges[i].Twin
		destKey := vertexKey{g.Edges[i].EndX, g.Edges[i].EndY}
		ring := order[destKey]
		pos := indexOf(ring, twin)
		if pos < 0 {
			return errors.New("geom2: twin not found at destination vertex")
		}
		next := ring[(pos+1)%len(ring)]
		g.Edges[i].Next = next
		g.Edges[next].Prev = i
	}
	return dropDegenerate(g)
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// dropDegenerate verifies every vertex retains even half-edge degree after
// Build already skipped zero-length sub-segments.
func dropDegenerate(g *Graph) error {
	degree := make(map[vertexKey]int)
	for _, e := range g.Edges {
		degree[vertexKey{e.StartX, e.StartY}]++
	}
	for k, d := range degree {
		if d%2 != 0 {
			return &ParityError{X: k.X, Y: k.Y, Degree: d}
		}
	}
	return nil
}

// ParityError reports a vertex whose half-edge degree is odd after
// filtering — a data error, indicating an intersection bug
// upstream.
type ParityError struct {
	X, Y   rational.Q128
	Degree int
}

func (e *ParityError) Error() string {
	return "geom2: odd-degree vertex after half-edge filtering"
}

// angleHalf returns 0 for directions in the upper half-plane (including the
// positive X axis), 1 otherwise — the standard trick for ordering 2D
// directions without trigonometry.
func angleHalf(y, x rational.Q128) int {
	if rational.IsNegative(y) {
		return 1
	}
	if rational.IsZero(y) && rational.IsNegative(x) {
		return 1
	}
	return 0
}

// lessAngle orders half-edges sharing a start vertex by the counterclockwise
// angle of their outgoing direction, using only exact cross and dot
// products.
func lessAngle(a, b HalfEdge) bool {
	ax, _ := rational.Sub(a.EndX, a.StartX)
	ay, _ := rational.Sub(a.EndY, a.StartY)
	bx, _ := rational.Sub(b.EndX, b.StartX)
	by, _ := rational.Sub(b.EndY, b.StartY)
	ha := angleHalf(ay, ax)
	hb := angleHalf(by, bx)
	if ha != hb {
		return ha < hb
	}
	cross, err := crossQ(ax, ay, bx, by)
	if err != nil {
		return false
	}
	return rational.IsNegative(cross)
}

func crossQ(ax, ay, bx, by rational.Q128) (rational.Q128, error) {
	t1, err := rational.Mul(ax, by)
	if err != nil {
		return rational.Q128{}, err
	}
	t2, err := rational.Mul(ay, bx)
	if err != nil {
		return rational.Q128{}, err
	}
	return rational.Sub(t1, t2)
}
