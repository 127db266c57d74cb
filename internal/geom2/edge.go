package geom2

import "sort"

// IntegerEdge is a line segment whose endpoints are 32-bit signed integers
// in a tile's rounded coordinate frame, carrying the identity of the
// RenderPath it came from and the sorted rational t-values where
// intersections with other edges occur.
type IntegerEdge struct {
	PathID     uint64
	X0, Y0     int32
	X1, Y1     int32
	LoopIndex  int // which closed loop of the owning path this edge belongs to
	splitsAt   []Frac
	seenSplits map[Frac]bool
}

// Frac is a t-value in [0,1] on an edge, represented as a numerator/
// denominator pair of plain int64s rather than a full Q128: callers reduce
// through rational.Q128 when exactness across edges matters, but within a
// single IntegerEdge's own split list a lightweight key suffices.
type Frac struct {
	Num, Den int64
}

// AddSplit records a t-value at which this edge must be split, deduplicating
// exact repeats.
func (e *IntegerEdge) AddSplit(f Frac) {
	if e.seenSplits == nil {
		e.seenSplits = make(map[Frac]bool)
	}
	g := reduceFrac(f)
	if e.seenSplits[g] {
		return
	}
	e.seenSplits[g] = true
	e.splitsAt = append(e.splitsAt, g)
}

// SortedSplits returns the edge's distinct split t-values, including the
// implicit endpoints 0/1 and 1/1, sorted ascending.
func (e *IntegerEdge) SortedSplits() []Frac {
	out := make([]Frac, 0, len(e.splitsAt)+2)
	out = append(out, Frac{0, 1}, Frac{1, 1})
	out = append(out, e.splitsAt...)
	sort.Slice(out, func(i, j int) bool { return fracLess(out[i], out[j]) })
	return dedupFracs(out)
}

func reduceFrac(f Frac) Frac {
	if f.Num == 0 {
		return Frac{0, 1}
	}
	g := gcdInt64(abs64(f.Num), abs64(f.Den))
	if g == 0 {
		g = 1
	}
	return Frac{f.Num / g, f.Den / g}
}

func gcdInt64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func fracLess(a, b Frac) bool {
	return a.Num*b.Den < b.Num*a.Den
}

func fracEqual(a, b Frac) bool {
	return a.Num*b.Den == b.Num*a.Den
}

func dedupFracs(sorted []Frac) []Frac {
	out := sorted[:0:0]
	for i, f := range sorted {
		if i == 0 || !fracEqual(f, sorted[i-1]) {
			out = append(out, f)
		}
	}
	return out
}

// PointAt linearly interpolates the edge's endpoints at t = num/den.
func (e *IntegerEdge) PointAt(f Frac) (x, y float64) {
	t := float64(f.Num) / float64(f.Den)
	x = float64(e.X0) + t*float64(e.X1-e.X0)
	y = float64(e.Y0) + t*float64(e.Y1-e.Y0)
	return
}

// clipCode is the Cohen-Sutherland outcode for a point against a rectangle.
type clipCode uint8

const (
	codeLeft   clipCode = 1
	codeRight  clipCode = 2
	codeBottom clipCode = 4
	codeTop    clipCode = 8
)

func outcode(x, y, minX, minY, maxX, maxY float64) clipCode {
	var c clipCode
	if x < minX {
		c |= codeLeft
	} else if x > maxX {
		c |= codeRight
	}
	if y < minY {
		c |= codeBottom
	} else if y > maxY {
		c |= codeTop
	}
	return c
}

// ClipSegment clips the segment (x0,y0)-(x1,y1) against the rectangle using
// Cohen-Sutherland clipping. It reports false if the segment lies entirely
// outside.
func ClipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	c0 := outcode(x0, y0, minX, minY, maxX, maxY)
	c1 := outcode(x1, y1, minX, minY, maxX, maxY)
	for {
		if c0 == 0 && c1 == 0 {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}
		var x, y float64
		out := c0
		if out == 0 {
			out = c1
		}
		switch {
		case out&codeTop != 0:
			x = x0 + (x1-x0)*(maxY-y0)/(y1-y0)
			y = maxY
		case out&codeBottom != 0:
			x = x0 + (x1-x0)*(minY-y0)/(y1-y0)
			y = minY
		case out&codeRight != 0:
			y = y0 + (y1-y0)*(maxX-x0)/(x1-x0)
			x = maxX
		case out&codeLeft != 0:
			y = y0 + (y1-y0)*(minX-x0)/(x1-x0)
			x = minX
		}
		if out == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, minX, minY, maxX, maxY)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, minX, minY, maxX, maxY)
		}
	}
}

// BuildIntegerEdges clips a path loop's points to the tile bounds and
// rounds the surviving segments into the tile's integer coordinate frame,
// dropping segments that degenerate to a point.
func BuildIntegerEdges(pathID uint64, loopIndex int, loop []struct{ X, Y float64 }, minX, minY, maxX, maxY float64, tr Transform) []*IntegerEdge {
	var edges []*IntegerEdge
	n := len(loop)
	for i := 0; i < n; i++ {
		a := loop[i]
		b := loop[(i+1)%n]
		cx0, cy0, cx1, cy1, ok := ClipSegment(a.X, a.Y, b.X, b.Y, minX, minY, maxX, maxY)
		if !ok {
			continue
		}
		ix0, iy0 := tr.ToInteger(cx0, cy0)
		ix1, iy1 := tr.ToInteger(cx1, cy1)
		if ix0 == ix1 && iy0 == iy1 {
			continue
		}
		edges = append(edges, &IntegerEdge{
			PathID: pathID, LoopIndex: loopIndex,
			X0: ix0, Y0: iy0, X1: ix1, Y1: iy1,
		})
	}
	return edges
}
