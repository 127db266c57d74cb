// Package geom2 implements the constructive area geometry pipeline: tile
// coordinate transforms, integer-edge construction and intersection, and
// half-edge boundary tracing into faces with per-path winding maps.
package geom2

import (
	"math"

	"github.com/alpenglow-go/alpenglow/internal/rational"
)

// CoordBits is the signed integer coordinate budget each tile's rounded
// frame is scaled into, leaving headroom so that every exact-intersection
// intermediate still fits in a 64-bit numerator/denominator pair.
const CoordBits = 20

// MaxCoord is the largest representable magnitude of a tile-local integer
// coordinate.
const MaxCoord = 1 << CoordBits

// Transform maps RenderPath points into a tile's integer coordinate frame
// and back. It is an affine scale+translate chosen so the tile's bounds map
// into [-MaxCoord, MaxCoord].
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// NewTransform builds the coordinate transform for a tile spanning
// [minX,minY]-[maxX,maxY] in RenderProgram units.
func NewTransform(minX, minY, maxX, maxY float64) Transform {
	w := maxX - minX
	h := maxY - minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	maxDim := math.Max(w, h)
	exp := math.Ceil(math.Log2(maxDim))
	scale := math.Pow(2, CoordBits-exp)
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	return Transform{
		ScaleX: scale, ScaleY: scale,
		OffsetX: cx, OffsetY: cy,
	}
}

// ToInteger maps a tile-space point to the rounded integer frame.
func (t Transform) ToInteger(x, y float64) (int32, int32) {
	ix := int32(math.Round((x - t.OffsetX) * t.ScaleX))
	iy := int32(math.Round((y - t.OffsetY) * t.ScaleY))
	return ix, iy
}

// FromInteger maps an integer-frame coordinate back to tile space.
func (t Transform) FromInteger(ix, iy int32) (float64, float64) {
	x := float64(ix)/t.ScaleX + t.OffsetX
	y := float64(iy)/t.ScaleY + t.OffsetY
	return x, y
}

// FromIntegerFloat maps a (possibly fractional, e.g. an intersection point's
// float approximation) integer-frame coordinate back to tile space.
func (t Transform) FromIntegerFloat(ix, iy float64) (float64, float64) {
	return ix/t.ScaleX + t.OffsetX, iy/t.ScaleY + t.OffsetY
}

// ToIntegerQ returns the integer-frame coordinates as exact rationals, for
// callers that need to continue in exact arithmetic (the background tile
// rectangle, which has no floating-point origin).
func (t Transform) ToIntegerQ(x, y float64) (rational.Q128, rational.Q128) {
	ix, iy := t.ToInteger(x, y)
	return rational.FromInt(int64(ix)), rational.FromInt(int64(iy))
}
