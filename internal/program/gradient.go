package program

import (
	"math"
	"sort"
)

// GradientStop is one color stop in a LinearGradient or RadialGradient.
type GradientStop struct {
	Offset float64 // in [0,1]
	Color  Vec4
}

func sampleStops(stops []GradientStop, t float64) Vec4 {
	if len(stops) == 0 {
		return Vec4{}
	}
	sorted := append([]GradientStop(nil), stops...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	if t <= sorted[0].Offset {
		return sorted[0].Color
	}
	if t >= sorted[len(sorted)-1].Offset {
		return sorted[len(sorted)-1].Color
	}
	for i := 1; i < len(sorted); i++ {
		if t <= sorted[i].Offset {
			prev := sorted[i-1]
			span := sorted[i].Offset - prev.Offset
			if span <= 0 {
				return sorted[i].Color
			}
			localT := (t - prev.Offset) / span
			return lerpVec4(prev.Color, sorted[i].Color, localT)
		}
	}
	return sorted[len(sorted)-1].Color
}

// LinearGradient samples a multi-stop gradient along an axis from (X0,Y0)
// to (X1,Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []GradientStop
}

func (g LinearGradient) Children() []Node    { return nil }
func (g LinearGradient) NeedsFace() bool     { return false }
func (g LinearGradient) NeedsArea() bool     { return false }
func (g LinearGradient) NeedsCentroid() bool { return true }
func (g LinearGradient) ratio(ctx EvalContext) float64 {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return 0
	}
	t := ((ctx.CentroidX-g.X0)*dx + (ctx.CentroidY-g.Y0)*dy) / lenSq
	return clamp01(t)
}
func (g LinearGradient) Eval(ctx EvalContext) Vec4 { return sampleStops(g.Stops, g.ratio(ctx)) }
func (g LinearGradient) Simplified() Node          { return g }
func (g LinearGradient) WithPathInclusion(func(uint64) bool) Node { return g }
func (g LinearGradient) Equal(o Node) bool {
	other, ok := o.(LinearGradient)
	if !ok || other.X0 != g.X0 || other.Y0 != g.Y0 || other.X1 != g.X1 || other.Y1 != g.Y1 || len(other.Stops) != len(g.Stops) {
		return false
	}
	for i := range g.Stops {
		if g.Stops[i] != other.Stops[i] {
			return false
		}
	}
	return true
}

// RadialGradient samples a multi-stop gradient by normalized distance from
// (CX,CY) out to radius R.
type RadialGradient struct {
	CX, CY, R float64
	Stops     []GradientStop
}

func (g RadialGradient) Children() []Node    { return nil }
func (g RadialGradient) NeedsFace() bool     { return false }
func (g RadialGradient) NeedsArea() bool     { return false }
func (g RadialGradient) NeedsCentroid() bool { return true }
func (g RadialGradient) Eval(ctx EvalContext) Vec4 {
	dx, dy := ctx.CentroidX-g.CX, ctx.CentroidY-g.CY
	dist := math.Hypot(dx, dy)
	t := clamp01(dist / math.Max(g.R, 1e-12))
	return sampleStops(g.Stops, t)
}
func (g RadialGradient) Simplified() Node                          { return g }
func (g RadialGradient) WithPathInclusion(func(uint64) bool) Node { return g }
func (g RadialGradient) Equal(o Node) bool {
	other, ok := o.(RadialGradient)
	if !ok || other.CX != g.CX || other.CY != g.CY || other.R != g.R || len(other.Stops) != len(g.Stops) {
		return false
	}
	for i := range g.Stops {
		if g.Stops[i] != other.Stops[i] {
			return false
		}
	}
	return true
}
