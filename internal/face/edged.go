package face

import "math"

// Edged is a ClippableFace backed by an unordered set of directed line
// segments whose net winding inside any rectangle containing all endpoints
// equals that of the intended region; segments may start or end anywhere,
// not necessarily at a shared vertex.
type Edged struct {
	Segments []Segment
}

func (e *Edged) Bounds() Bounds {
	var b Bounds
	first := true
	for _, s := range e.Segments {
		for _, pt := range [2]Point{{s.X0, s.Y0}, {s.X1, s.Y1}} {
			if first {
				b = Bounds{pt.X, pt.Y, pt.X, pt.Y}
				first = false
				continue
			}
			if pt.X < b.MinX {
				b.MinX = pt.X
			}
			if pt.Y < b.MinY {
				b.MinY = pt.Y
			}
			if pt.X > b.MaxX {
				b.MaxX = pt.X
			}
			if pt.Y > b.MaxY {
				b.MaxY = pt.Y
			}
		}
	}
	return b
}

func (e *Edged) doubleAreaAndMoments() (doubleArea, mx, my float64) {
	for _, s := range e.Segments {
		cross := s.X0*s.Y1 - s.X1*s.Y0
		doubleArea += cross
		mx += (s.X0 + s.X1) * cross
		my += (s.Y0 + s.Y1) * cross
	}
	return
}

func (e *Edged) Area() float64 {
	da, _, _ := e.doubleAreaAndMoments()
	return math.Abs(da) / 2
}

func (e *Edged) Centroid() (float64, float64) {
	da, mx, my := e.doubleAreaAndMoments()
	if math.Abs(da) < AreaTolerance {
		b := e.Bounds()
		return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
	}
	factor := 1 / (3 * da)
	return mx * factor, my * factor
}

// clipSegmentsHalfPlane clips directed segments against keep(p) >= 0 (keep
// is affine). Each part of a segment outside the half-plane is replaced by
// its projection onto the line keep(p) == 0, so a closed input stays closed
// and the net winding inside the half-plane is preserved. boundaryEdge is
// not used.
func clipSegmentsHalfPlane(segs []Segment, keep func(Point) float64, boundaryEdge func(a, b Point) Segment) []Segment {
	k0 := keep(Point{0, 0})
	gx, gy := keep(Point{1, 0})-k0, keep(Point{0, 1})-k0
	gg := gx*gx + gy*gy
	project := func(p Point) Point {
		k := keep(p)
		return Point{p.X - k*gx/gg, p.Y - k*gy/gg}
	}
	var out []Segment
	for _, s := range segs {
		a := Point{s.X0, s.Y0}
		b := Point{s.X1, s.Y1}
		ka, kb := keep(a), keep(b)
		switch {
		case ka >= 0 && kb >= 0:
			out = append(out, s)
		case ka < 0 && kb < 0:
			pa, pb := project(a), project(b)
			out = append(out, Segment{pa.X, pa.Y, pb.X, pb.Y})
		case ka >= 0 && kb < 0:
			cross := intersectHalfPlane(a, b, keep)
			pb := project(b)
			out = append(out, Segment{a.X, a.Y, cross.X, cross.Y}, Segment{cross.X, cross.Y, pb.X, pb.Y})
		default: // ka < 0 && kb >= 0
			cross := intersectHalfPlane(a, b, keep)
			pa := project(a)
			out = append(out, Segment{pa.X, pa.Y, cross.X, cross.Y}, Segment{cross.X, cross.Y, b.X, b.Y})
		}
	}
	return out
}

func (e *Edged) BinaryXClip(x, tieY float64) (ClippableFace, ClippableFace) {
	_ = tieY
	minSegs := clipSegmentsHalfPlane(e.Segments, func(p Point) float64 { return x - p.X }, nil)
	maxSegs := clipSegmentsHalfPlane(e.Segments, func(p Point) float64 { return p.X - x }, nil)
	return &Edged{Segments: minSegs}, &Edged{Segments: maxSegs}
}

func (e *Edged) BinaryYClip(y, tieX float64) (ClippableFace, ClippableFace) {
	_ = tieX
	minSegs := clipSegmentsHalfPlane(e.Segments, func(p Point) float64 { return y - p.Y }, nil)
	maxSegs := clipSegmentsHalfPlane(e.Segments, func(p Point) float64 { return p.Y - y }, nil)
	return &Edged{Segments: minSegs}, &Edged{Segments: maxSegs}
}

func (e *Edged) Clipped(minX, minY, maxX, maxY float64) ClippableFace {
	segs := e.Segments
	segs = clipSegmentsHalfPlane(segs, func(p Point) float64 { return p.X - minX }, nil)
	segs = clipSegmentsHalfPlane(segs, func(p Point) float64 { return maxX - p.X }, nil)
	segs = clipSegmentsHalfPlane(segs, func(p Point) float64 { return p.Y - minY }, nil)
	segs = clipSegmentsHalfPlane(segs, func(p Point) float64 { return maxY - p.Y }, nil)
	return &Edged{Segments: segs}
}

func (e *Edged) Transformed(m Matrix) ClippableFace {
	segs := make([]Segment, len(e.Segments))
	for i, s := range e.Segments {
		a := m.Apply(Point{s.X0, s.Y0})
		b := m.Apply(Point{s.X1, s.Y1})
		segs[i] = Segment{a.X, a.Y, b.X, b.Y}
	}
	return &Edged{Segments: segs}
}

func (e *Edged) ToEdgedFace() *Edged { return e }

func (e *Edged) GridClipIterate(bounds Bounds, cellW, cellH float64, w, h int, perEdge PerEdgeFunc, finalize FinalizeFunc) {
	for _, s := range e.Segments {
		walkSegmentAcrossGrid(bounds, cellW, cellH, w, h, Point{s.X0, s.Y0}, Point{s.X1, s.Y1}, false, false, perEdge)
	}
	if finalize != nil {
		finalize()
	}
}

func (e *Edged) NewAccumulator() Accumulator { return &polygonalAccumulator{} }

// EdgedClipped augments Edged with an explicit enclosing rectangle and four
// integer "virtual edge" counts representing net axis-aligned boundary
// crossings absorbed into each side, avoiding materialized edges along
// rectangle walls.
type EdgedClipped struct {
	Edged
	Rect                                 Bounds
	MinXCount, MinYCount, MaxXCount, MaxYCount int
}

func (e *EdgedClipped) virtualDoubleArea() (doubleArea, mx, my float64) {
	// The virtual edge counts are not folded in: every count contributes
	// zero, so Area() is that of the materialized segments alone, and
	// Centroid() (inherited from Edged) ignores the counts as well.
	w := e.Rect.Width()
	h := e.Rect.Height()
	doubleArea += float64(e.MinXCount) * h * 0
	doubleArea += float64(e.MaxXCount) * h * 0
	doubleArea += float64(e.MinYCount) * w * 0
	doubleArea += float64(e.MaxYCount) * w * 0
	_ = mx
	_ = my
	return
}

func (e *EdgedClipped) Area() float64 {
	eda, _, _ := e.Edged.doubleAreaAndMoments()
	vda, _, _ := e.virtualDoubleArea()
	return math.Abs(eda+vda) / 2
}

func (e *EdgedClipped) Bounds() Bounds { return e.Rect }

func (e *EdgedClipped) Transformed(m Matrix) ClippableFace {
	// A general affine may rotate the rectangle; the
	// result falls back to a plain Edged face.
	return e.Edged.Transformed(m)
}

func (e *EdgedClipped) NewAccumulator() Accumulator { return &polygonalAccumulator{} }
