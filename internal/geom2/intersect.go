package geom2

import (
	"sort"

	"github.com/alpenglow-go/alpenglow/internal/rational"
)

// Intersection is a single intersection point between two IntegerEdges,
// carrying the parametric position on each edge and the intersection point,
// all as exact reduced rationals.
type Intersection struct {
	T0, T1 rational.Q128
	PX, PY rational.Q128
}

// SegmentIntersect computes every intersection between edges a and b using
// exact integer/rational arithmetic. A simple crossing yields one
// Intersection; collinear overlap yields the two overlap endpoints, each
// with its t-values on both edges; endpoint contact (a T-intersection)
// yields one Intersection with a 0/1 or 1/1 t-value on the touching edge.
func SegmentIntersect(a, b *IntegerEdge) ([]Intersection, error) {
	dx, dy := int64(a.X1-a.X0), int64(a.Y1-a.Y0)
	ex, ey := int64(b.X1-b.X0), int64(b.Y1-b.Y0)
	wx, wy := int64(b.X0-a.X0), int64(b.Y0-a.Y0)

	denom := dx*ey - dy*ex
	if denom != 0 {
		t0Num := wx*ey - wy*ex
		t1Num := wx*dy - wy*dx
		t0, err := normalizedT(t0Num, denom)
		if err != nil {
			return nil, err
		}
		t1, err := normalizedT(t1Num, denom)
		if err != nil {
			return nil, err
		}
		if !inUnitInterval(t0) || !inUnitInterval(t1) {
			return nil, nil
		}
		px, py, err := pointAtQ(a, t0)
		if err != nil {
			return nil, err
		}
		return []Intersection{{T0: t0, T1: t1, PX: px, PY: py}}, nil
	}

	// Collinear candidates: a and b lie on the same line iff (b0-a0) x D == 0.
	cross := wx*dy - wy*dx
	if cross != 0 {
		return nil, nil // parallel, not collinear
	}
	return collinearOverlap(a, b)
}

func normalizedT(num, den int64) (rational.Q128, error) {
	return rational.New(num, den)
}

func inUnitInterval(t rational.Q128) bool {
	return !rational.IsNegative(t) && rational.LessOrEqualOne(t)
}

func pointAtQ(e *IntegerEdge, t rational.Q128) (rational.Q128, rational.Q128, error) {
	x0 := rational.FromInt(int64(e.X0))
	y0 := rational.FromInt(int64(e.Y0))
	dx := rational.FromInt(int64(e.X1 - e.X0))
	dy := rational.FromInt(int64(e.Y1 - e.Y0))
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

// collinearOverlap projects edge b's endpoints onto edge a's parametric
// line, intersects the two [0,1] intervals, and returns the overlap
// endpoints with their t-values on both edges.
func collinearOverlap(a, b *IntegerEdge) ([]Intersection, error) {
	dx, dy := int64(a.X1-a.X0), int64(a.Y1-a.Y0)
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return nil, nil
	}
	projectOnA := func(px, py int32) (rational.Q128, error) {
		wx := int64(px) - int64(a.X0)
		wy := int64(py) - int64(a.Y0)
		return rational.New(wx*dx+wy*dy, lenSq)
	}
	ta0, err := projectOnA(a.X0, a.Y0)
	if err != nil {
		return nil, err
	}
	ta1, err := projectOnA(a.X1, a.Y1)
	if err != nil {
		return nil, err
	}
	tb0, err := projectOnA(b.X0, b.Y0)
	if err != nil {
		return nil, err
	}
	tb1, err := projectOnA(b.X1, b.Y1)
	if err != nil {
		return nil, err
	}
	_ = ta0 // ta0==0, ta1==1 by construction; kept for clarity
	_ = ta1

	lo, hi := tb0, tb1
	if rational.LessThan(hi, lo) {
		lo, hi = hi, lo
	}
	loB, hiB := rational.Zero, rational.One
	if rational.LessThan(tb1, tb0) {
		loB, hiB = rational.One, rational.Zero
	}
	// Clamp the overlap interval to [0,1] on A.
	if rational.LessThan(lo, rational.Zero) {
		lo = rational.Zero
	}
	if rational.LessThan(rational.One, hi) {
		hi = rational.One
	}
	if !rational.LessThan(lo, hi) {
		return nil, nil // no overlap (or single-point touch, handled elsewhere)
	}

	tbAt := func(tOnA rational.Q128) (rational.Q128, error) {
		// Linear map from A-parametric position back to B-parametric
		// position, using the two known correspondences (tb0<->0, tb1<->1)
		// on A's parametric line (since the segments are collinear).
		span, err := rational.Sub(tb1, tb0)
		if err != nil {
			return rational.Q128{}, err
		}
		if rational.IsZero(span) {
			return rational.Zero, nil
		}
		num, err := rational.Sub(tOnA, tb0)
		if err != nil {
			return rational.Q128{}, err
		}
		return rational.Div(num, span)
	}
	_ = loB
	_ = hiB

	t1Lo, err := tbAt(lo)
	if err != nil {
		return nil, err
	}
	t1Hi, err := tbAt(hi)
	if err != nil {
		return nil, err
	}
	pxLo, pyLo, err := pointAtQ(a, lo)
	if err != nil {
		return nil, err
	}
	pxHi, pyHi, err := pointAtQ(a, hi)
	if err != nil {
		return nil, err
	}
	return []Intersection{
		{T0: lo, T1: t1Lo, PX: pxLo, PY: pyLo},
		{T0: hi, T1: t1Hi, PX: pxHi, PY: pyHi},
	}, nil
}

// IntersectionStrategy enumerates the three supported edge-intersection
// traversal strategies; they must all produce the identical set of
// intersection t-values per edge.
type IntersectionStrategy uint8

const (
	Quadratic IntersectionStrategy = iota
	BoundsTree
	ArrayBoundsTree
)

// aabb is an axis-aligned bounding box in tile-integer coordinates.
type aabb struct {
	minX, minY, maxX, maxY int32
}

func edgeBounds(e *IntegerEdge) aabb {
	minX, maxX := e.X0, e.X1
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := e.Y0, e.Y1
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return aabb{minX, minY, maxX, maxY}
}

func (a aabb) overlaps(b aabb) bool {
	return a.minX <= b.maxX && b.minX <= a.maxX && a.minY <= b.maxY && b.minY <= a.maxY
}

// IntersectAll computes all pairwise intersections among edges using the
// given strategy and records the resulting t-values on each edge via
// AddSplit. The chosen strategy only affects traversal order/pruning, never
// the output set.
func IntersectAll(edges []*IntegerEdge, strategy IntersectionStrategy) error {
	switch strategy {
	case Quadratic:
		return intersectQuadratic(edges)
	case BoundsTree:
		return intersectBoundsTree(edges)
	case ArrayBoundsTree:
		return intersectArrayBoundsTree(edges)
	default:
		return intersectQuadratic(edges)
	}
}

func recordPair(a, b *IntegerEdge) error {
	hits, err := SegmentIntersect(a, b)
	if err != nil {
		return err
	}
	for _, h := range hits {
		a.AddSplit(Frac{h.T0.Num, int64(h.T0.Den)})
		b.AddSplit(Frac{h.T1.Num, int64(h.T1.Den)})
	}
	return nil
}

// intersectArrayBoundsTree is the flat-array variant of the bounds-tree
// strategy: edges are sorted once by their bounding box's minX into a
// single backing array, and each edge is tested against the later entries
// in order until one starts past its maxX, giving cache-friendly locality
// without a second pointer-chasing tree structure.
func intersectArrayBoundsTree(edges []*IntegerEdge) error {
	type entry struct {
		edge   *IntegerEdge
		bounds aabb
	}
	sorted := make([]entry, len(edges))
	for i, e := range edges {
		sorted[i] = entry{e, edgeBounds(e)}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].bounds.minX < sorted[j].bounds.minX })

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].bounds.minX > sorted[i].bounds.maxX {
				break // sorted by minX: no further j can overlap in X
			}
			if !sorted[i].bounds.overlaps(sorted[j].bounds) {
				continue
			}
			if err := recordPair(sorted[i].edge, sorted[j].edge); err != nil {
				return err
			}
		}
	}
	return nil
}

func intersectQuadratic(edges []*IntegerEdge) error {
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			if err := recordPair(edges[i], edges[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// bvhNode is a node of the recursive bounding-volume hierarchy used by the
// boundsTree strategy.
type bvhNode struct {
	bounds      aabb
	edges       []*IntegerEdge
	left, right *bvhNode
}

const bvhLeafSize = 4

func buildBVH(edges []*IntegerEdge) *bvhNode {
	if len(edges) == 0 {
		return nil
	}
	bounds := edgeBounds(edges[0])
	for _, e := range edges[1:] {
		b := edgeBounds(e)
		bounds = unionAABB(bounds, b)
	}
	if len(edges) <= bvhLeafSize {
		return &bvhNode{bounds: bounds, edges: edges}
	}
	wide := bounds.maxX-bounds.minX >= bounds.maxY-bounds.minY
	sorted := append([]*IntegerEdge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool {
		bi, bj := edgeBounds(sorted[i]), edgeBounds(sorted[j])
		if wide {
			return bi.minX+bi.maxX < bj.minX+bj.maxX
		}
		return bi.minY+bi.maxY < bj.minY+bj.maxY
	})
	mid := len(sorted) / 2
	return &bvhNode{
		bounds: bounds,
		left:   buildBVH(sorted[:mid]),
		right:  buildBVH(sorted[mid:]),
	}
}

func unionAABB(a, b aabb) aabb {
	return aabb{
		minX: minI32(a.minX, b.minX), minY: minI32(a.minY, b.minY),
		maxX: maxI32(a.maxX, b.maxX), maxY: maxI32(a.maxY, b.maxY),
	}
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// intersectBoundsTree descends a recursive bounding-volume hierarchy,
// testing an edge only against sibling subtrees whose bounds overlap its
// own. Every overlapping pair is tested exactly once per leaf-to-leaf
// descent; recordPair is idempotent (AddSplit deduplicates by value), so
// the rare pair visited from both sides of the tree does no harm.
func intersectBoundsTree(edges []*IntegerEdge) error {
	root := buildBVH(edges)
	var firstErr error
	var pairwiseLeaves func(n *bvhNode) []*IntegerEdge
	pairwiseLeaves = func(n *bvhNode) []*IntegerEdge {
		if n == nil {
			return nil
		}
		if n.edges != nil {
			for i := 0; i < len(n.edges); i++ {
				for j := i + 1; j < len(n.edges); j++ {
					if err := recordPair(n.edges[i], n.edges[j]); err != nil && firstErr == nil {
						firstErr = err
					}
				}
			}
			return n.edges
		}
		left := pairwiseLeaves(n.left)
		right := pairwiseLeaves(n.right)
		if n.left != nil && n.right != nil && n.left.bounds.overlaps(n.right.bounds) {
			for _, a := range left {
				for _, b := range right {
					if !edgeBounds(a).overlaps(edgeBounds(b)) {
						continue
					}
					if err := recordPair(a, b); err != nil && firstErr == nil {
						firstErr = err
					}
				}
			}
		}
		return append(left, right...)
	}
	pairwiseLeaves(root)
	return firstErr
}
