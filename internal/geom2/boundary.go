package geom2

import (
	"math"
	"sort"

	"github.com/alpenglow-go/alpenglow/internal/rational"
)

// Boundary is a cyclic list of half-edge indices bounding a simply
// connected region on one side. Inner boundaries (positive
// signed area, i.e. counterclockwise in a Y-down frame) bound the exterior
// of exactly one face; outer boundaries (non-positive) are potential holes.
type Boundary struct {
	HalfEdges  []int
	Points     [][2]float64 // vertex loop, float approximation for containment tests
	Inner      bool
	Area       float64 // signed, float approximation used only for area-descending sort
	RepX, RepY float64
}

// Trace walks every unvisited half-edge's Next chain to materialize the
// tile's RationalBoundaries.
func Trace(g *Graph) []*Boundary {
	var boundaries []*Boundary
	for start := range g.Edges {
		if g.Edges[start].visited {
			continue
		}
		var loop []int
		cur := start
		for {
			g.Edges[cur].visited = true
			loop = append(loop, cur)
			cur = g.Edges[cur].Next
			if cur == start {
				break
			}
		}
		area := signedAreaFloat(g, loop)
		rx, ry := representativePoint(g, loop)
		points := make([][2]float64, len(loop))
		for i, idx := range loop {
			e := g.Edges[idx]
			points[i] = [2]float64{rational.Float64(e.StartX), rational.Float64(e.StartY)}
		}
		b := &Boundary{HalfEdges: loop, Points: points, Inner: area > 0, Area: area, RepX: rx, RepY: ry}
		for _, idx := range loop {
			if b.Inner {
				g.Edges[idx].FaceLeft = len(boundaries)
			}
		}
		boundaries = append(boundaries, b)
	}
	return boundaries
}

func signedAreaFloat(g *Graph, loop []int) float64 {
	var sum float64
	for _, idx := range loop {
		e := g.Edges[idx]
		x0, y0 := rational.Float64(e.StartX), rational.Float64(e.StartY)
		x1, y1 := rational.Float64(e.EndX), rational.Float64(e.EndY)
		sum += x0*y1 - x1*y0
	}
	return sum / 2
}

// representativePoint returns a point guaranteed to lie strictly inside the
// boundary's region: the midpoint of the first half-edge, offset slightly
// toward the interior along its left normal. For a convex-enough local
// neighborhood (always true infinitesimally close to an edge midpoint on
// its interior side) this suffices as a seed point for winding queries.
func representativePoint(g *Graph, loop []int) (float64, float64) {
	if len(loop) == 0 {
		return 0, 0
	}
	e := g.Edges[loop[0]]
	x0, y0 := rational.Float64(e.StartX), rational.Float64(e.StartY)
	x1, y1 := rational.Float64(e.EndX), rational.Float64(e.EndY)
	mx, my := (x0+x1)/2, (y0+y1)/2
	dx, dy := x1-x0, y1-y0
	// Left normal in a Y-down, CCW-positive-area convention.
	nx, ny := -dy, dx
	length := math.Hypot(nx, ny)
	if length == 0 {
		return mx, my
	}
	const eps = 1e-4
	return mx + nx/length*eps, my + ny/length*eps
}

// Face is a region delimited by exactly one inner boundary and zero or
// more hole (outer) boundaries.
type Face struct {
	Inner *Boundary
	Holes []*Boundary
}

// AssignHoles sorts outer boundaries by bounding area descending and nests
// each inside the smallest inner boundary that contains it, via a point-in-
// polygon ray test on its representative point.
func AssignHoles(boundaries []*Boundary) []*Face {
	var inners []*Boundary
	var outers []*Boundary
	for _, b := range boundaries {
		if b.Inner {
			inners = append(inners, b)
		} else {
			outers = append(outers, b)
		}
	}
	sort.Slice(outers, func(i, j int) bool {
		return abs(outers[i].Area) > abs(outers[j].Area)
	})

	faces := make([]*Face, len(inners))
	innerOf := make(map[*Boundary]*Face, len(inners))
	for i, b := range inners {
		faces[i] = &Face{Inner: b}
		innerOf[b] = faces[i]
	}

	for _, hole := range outers {
		var best *Boundary
		bestArea := -1.0
		for _, inner := range inners {
			if inner == hole {
				continue
			}
			if !pointInLoop(inner, hole.RepX, hole.RepY) {
				continue
			}
			a := abs(inner.Area)
			if best == nil || a < bestArea {
				best = inner
				bestArea = a
			}
		}
		if best != nil {
			f := innerOf[best]
			f.Holes = append(f.Holes, hole)
		}
		// If no containing inner boundary is found, hole is the unbounded
		// face's outer boundary and carries no geometry of its own.
	}
	return faces
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// pointInLoop implements the standard even-odd ray-casting point-in-polygon
// test against a boundary's vertex loop (used only to decide hole
// containment, where an approximate float test is sufficient: holes never
// sit exactly on their parent's boundary).
func pointInLoop(b *Boundary, px, py float64) bool {
	inside := false
	pts := b.Points
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := pts[i][0], pts[i][1]
		xj, yj := pts[j][0], pts[j][1]
		if (yi > py) != (yj > py) {
			xCross := xj + (py-yj)/(yi-yj)*(xi-xj)
			if px < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
