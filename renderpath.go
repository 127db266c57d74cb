package alpenglow

import "math"

// FillRule selects how a RenderPath's loops combine into a filled region.
type FillRule uint8

const (
	// NonZero fills a point when the signed sum of loop windings around it
	// is nonzero.
	NonZero FillRule = iota
	// EvenOdd fills a point when the number of loop crossings on a ray from
	// it to infinity is odd.
	EvenOdd
)

func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// pathID is a monotonically increasing counter handing out stable identity
// to RenderPaths, used as the key in per-face winding maps.
var pathID uint64

func nextPathID() uint64 {
	pathID++
	return pathID
}

// RenderPath is an immutable polygonal region: an ordered sequence of
// closed loops of planar points, together with a fill rule and a stable
// identity. Loops may self-intersect or overlap one another; the fill rule
// resolves the resulting region at clip and trace time.
//
// RenderPath is produced by flattening a [Path]'s Bezier elements — it
// never stores curve data itself, so every downstream geometry kernel works
// with straight edges only.
type RenderPath struct {
	id    uint64
	loops [][]Point
	rule  FillRule
}

// NewRenderPath builds a RenderPath from pre-flattened closed loops. Each
// loop must already be closed implicitly (the last point connects back to
// the first); callers should not repeat the first point at the end.
func NewRenderPath(rule FillRule, loops ...[]Point) *RenderPath {
	owned := make([][]Point, len(loops))
	for i, l := range loops {
		owned[i] = append([]Point(nil), l...)
	}
	return &RenderPath{id: nextPathID(), loops: owned, rule: rule}
}

// FlattenPath builds a RenderPath by flattening a curve-based [Path] into
// straight-line loops, splitting at each MoveTo and implicit/explicit Close.
func FlattenPath(p *Path, rule FillRule) *RenderPath {
	loops := flattenLoops(p.Elements())
	return &RenderPath{id: nextPathID(), loops: loops, rule: rule}
}

// ID returns the RenderPath's stable identity, used as a key in per-face
// winding maps and RenderProgram capability analysis.
func (r *RenderPath) ID() uint64 { return r.id }

// Rule returns the path's fill rule.
func (r *RenderPath) Rule() FillRule { return r.rule }

// Loops returns the path's closed point loops. The returned slices must not
// be mutated.
func (r *RenderPath) Loops() [][]Point { return r.loops }

// Bounds returns the axis-aligned bounding box of all loops. The second
// return value is false for an empty path.
func (r *RenderPath) Bounds() (BoundingBox, bool) {
	box, ok := BoundingBox{}, false
	for _, loop := range r.loops {
		for _, pt := range loop {
			if !ok {
				box = BoundingBox{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
				ok = true
				continue
			}
			box = box.Extend(pt)
		}
	}
	return box, ok
}

// Transformed returns a new RenderPath with m applied to every vertex. The
// result keeps the same fill rule but gets a fresh identity, matching the
// spec's rule that transformation produces a distinct path for winding-map
// purposes.
func (r *RenderPath) Transformed(m Matrix) *RenderPath {
	loops := make([][]Point, len(r.loops))
	for i, loop := range r.loops {
		out := make([]Point, len(loop))
		for j, pt := range loop {
			out[j] = m.TransformPoint(pt)
		}
		loops[i] = out
	}
	return &RenderPath{id: nextPathID(), loops: loops, rule: r.rule}
}

// BoundingBox is an axis-aligned rectangle in path space.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Extend returns the smallest BoundingBox containing b and p.
func (b BoundingBox) Extend(p Point) BoundingBox {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// Union returns the smallest BoundingBox containing both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Intersects reports whether the two bounding boxes overlap (touching edges
// count as overlap).
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Width returns MaxX-MinX.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// BoundedSubpath is a contiguous portion of a RenderPath's flattened loops
// together with its axis-aligned bounding box. The CAG
// pipeline clips RenderPaths to tiles by producing BoundedSubpaths whose
// bounds lie within a tile, and by splitting loop segments at tile borders.
type BoundedSubpath struct {
	PathID uint64
	Rule   FillRule
	Points []Point
	Bounds BoundingBox
}

// Subpaths splits a RenderPath's loops into one BoundedSubpath per loop.
func (r *RenderPath) Subpaths() []BoundedSubpath {
	out := make([]BoundedSubpath, 0, len(r.loops))
	for _, loop := range r.loops {
		if len(loop) == 0 {
			continue
		}
		box := BoundingBox{MinX: loop[0].X, MinY: loop[0].Y, MaxX: loop[0].X, MaxY: loop[0].Y}
		for _, pt := range loop[1:] {
			box = box.Extend(pt)
		}
		out = append(out, BoundedSubpath{PathID: r.id, Rule: r.rule, Points: loop, Bounds: box})
	}
	return out
}

// flattenTolerance bounds the perpendicular deviation allowed between a
// flattened polyline and the curve it approximates (grounded on the
// teacher's internal/path flatten constant).
const flattenTolerance = 0.1

// flattenLoops walks a Path's elements and returns one []Point loop per
// MoveTo..Close (or MoveTo..MoveTo) span, flattening quadratic and cubic
// Bezier segments via recursive de Casteljau subdivision.
func flattenLoops(elements []PathElement) [][]Point {
	var loops [][]Point
	var cur []Point
	var start, last Point
	flush := func() {
		if len(cur) > 0 {
			loops = append(loops, cur)
			cur = nil
		}
	}
	for _, el := range elements {
		switch e := el.(type) {
		case MoveTo:
			flush()
			start, last = e.Point, e.Point
			cur = append(cur, e.Point)
		case LineTo:
			last = e.Point
			cur = append(cur, e.Point)
		case QuadTo:
			cur = flattenQuadratic(cur, last, e.Control, e.Point, 0)
			last = e.Point
		case CubicTo:
			cur = flattenCubic(cur, last, e.Control1, e.Control2, e.Point, 0)
			last = e.Point
		case Close:
			if len(cur) > 0 && (cur[len(cur)-1] != start) {
				cur = append(cur, start)
			}
			last = start
			flush()
		}
	}
	flush()
	return loops
}

func flattenQuadratic(out []Point, p0, p1, p2 Point, depth int) []Point {
	if depth >= 16 || quadFlatEnough(p0, p1, p2) {
		return append(out, p2)
	}
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	mid := p01.Lerp(p12, 0.5)
	out = flattenQuadratic(out, p0, p01, mid, depth+1)
	return flattenQuadratic(out, mid, p12, p2, depth+1)
}

func quadFlatEnough(p0, p1, p2 Point) bool {
	return distanceToLine(p1, p0, p2) < flattenTolerance
}

func flattenCubic(out []Point, p0, p1, p2, p3 Point, depth int) []Point {
	if depth >= 24 || cubicFlatEnough(p0, p1, p2, p3) {
		return append(out, p3)
	}
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	out = flattenCubic(out, p0, p01, p012, mid, depth+1)
	return flattenCubic(out, mid, p123, p23, p3, depth+1)
}

func cubicFlatEnough(p0, p1, p2, p3 Point) bool {
	return distanceToLine(p1, p0, p3) < flattenTolerance && distanceToLine(p2, p0, p3) < flattenTolerance
}

// distanceToLine returns the perpendicular distance from p to the line
// through a and b.
func distanceToLine(p, a, b Point) float64 {
	d := b.Sub(a)
	length := d.Length()
	if length < 1e-12 {
		return p.Distance(a)
	}
	return math.Abs(d.Cross(p.Sub(a))) / length
}
