package alpenglow

import "github.com/alpenglow-go/alpenglow/internal/program"

// Node is a RenderProgram DAG node: an immutable expression that evaluates
// to a color at a point (or over a face, for area/centroid-aware nodes).
// Build one with the constructors below, then pass it to Rasterize or
// PartitionRenderableFaces.
type Node = program.Node

// ColorSpace selects a color space a ColorSpaceConvert node converts
// between.
type ColorSpace = program.ColorSpace

const (
	LinearSRGB = program.LinearSRGB
	SRGB       = program.SRGB
	DisplayP3  = program.DisplayP3
	Oklab      = program.Oklab
)

// BlendMode selects a Porter-Duff compositing operator or a W3C separable
// advanced blend mode for a Blend node.
type BlendMode = program.BlendMode

const (
	BlendSrcOver     = program.BlendSrcOver
	BlendSrcIn       = program.BlendSrcIn
	BlendSrcOut      = program.BlendSrcOut
	BlendSrcAtop     = program.BlendSrcAtop
	BlendDstOver     = program.BlendDstOver
	BlendDstIn       = program.BlendDstIn
	BlendDstOut      = program.BlendDstOut
	BlendDstAtop     = program.BlendDstAtop
	BlendXor         = program.BlendXor
	BlendClear       = program.BlendClear
	BlendMultiply    = program.BlendMultiply
	BlendScreen      = program.BlendScreen
	BlendOverlay     = program.BlendOverlay
	BlendDarken      = program.BlendDarken
	BlendLighten     = program.BlendLighten
	BlendColorDodge  = program.BlendColorDodge
	BlendColorBurn   = program.BlendColorBurn
	BlendHardLight   = program.BlendHardLight
	BlendSoftLight   = program.BlendSoftLight
	BlendDifference  = program.BlendDifference
	BlendExclusion   = program.BlendExclusion
)

// ColorNode is a constant-color leaf node.
func ColorNode(c RGBA) Node {
	return program.Color{V: c.Vec4()}
}

// Stack over-composites layers from bottom to top, straight-alpha "over".
func Stack(layers ...Node) Node {
	return program.NewStack(layers...)
}

// PathBooleanNode branches on whether path includes the current face: inside
// is used where path's interior covers the face, outside elsewhere.
func PathBooleanNode(path *RenderPath, inside, outside Node) Node {
	return program.NewPathBoolean(path.ID(), inside, outside)
}

// LinearBlendNode blends a and b along the axis from (x0,y0) to (x1,y1).
func LinearBlendNode(x0, y0, x1, y1 float64, a, b Node) Node {
	return program.LinearBlend{X0: x0, Y0: y0, X1: x1, Y1: y1, A: a, B: b}
}

// RadialBlendNode blends a (center) and b (edge) over the disk of radius r
// centered at (cx,cy).
func RadialBlendNode(cx, cy, r float64, a, b Node) Node {
	return program.RadialBlend{CX: cx, CY: cy, R: r, A: a, B: b}
}

// BarycentricBlendNode blends a, b, c by the centroid's barycentric
// coordinates within the triangle (x0,y0)-(x1,y1)-(x2,y2).
func BarycentricBlendNode(x0, y0, x1, y1, x2, y2 float64, a, b, c Node) Node {
	return program.BarycentricBlend{X0: x0, Y0: y0, X1: x1, Y1: y1, X2: x2, Y2: y2, A: a, B: b, C: c}
}

// PremultiplyNode converts a child's straight-alpha color to premultiplied.
func PremultiplyNode(child Node) Node { return program.Premultiply{Child: child} }

// UnpremultiplyNode converts a child's premultiplied color to straight alpha.
func UnpremultiplyNode(child Node) Node { return program.Unpremultiply{Child: child} }

// NormalizeNode rescales a premultiplied child so alpha saturates at 1.
func NormalizeNode(child Node) Node { return program.Normalize{Child: child} }

// ColorSpaceConvertNode converts a child's color between color spaces,
// passing alpha through unchanged.
func ColorSpaceConvertNode(from, to ColorSpace, child Node) Node {
	return program.ColorSpaceConvert{From: from, To: to, Child: child}
}

// BlendComposeNode composites src over dst under mode.
func BlendComposeNode(mode BlendMode, src, dst Node) Node {
	return program.BlendCompose{Mode: mode, Src: src, Dst: dst}
}

// GradientStop is one color stop in a LinearGradientNode or
// RadialGradientNode, in [0,1] offset order.
type GradientStop struct {
	Offset float64
	Color  RGBA
}

func toProgramStops(stops []GradientStop) []program.GradientStop {
	out := make([]program.GradientStop, len(stops))
	for i, s := range stops {
		out[i] = program.GradientStop{Offset: s.Offset, Color: s.Color.Vec4()}
	}
	return out
}

// LinearGradientNode samples a multi-stop gradient along the axis from
// (x0,y0) to (x1,y1).
func LinearGradientNode(x0, y0, x1, y1 float64, stops ...GradientStop) Node {
	return program.LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: toProgramStops(stops)}
}

// RadialGradientNode samples a multi-stop gradient by normalized distance
// from (cx,cy) out to radius r.
func RadialGradientNode(cx, cy, r float64, stops ...GradientStop) Node {
	return program.RadialGradient{CX: cx, CY: cy, R: r, Stops: toProgramStops(stops)}
}

// FilterKind selects a reconstruction kernel for a FilterNode.
type FilterKind = program.FilterKind

const (
	FilterKindBox               = program.FilterBox
	FilterKindBilinear          = program.FilterBilinear
	FilterKindMitchellNetravali = program.FilterMitchellNetravali
)

// FilterNode scales a child's alpha contribution by a reconstruction-filter
// weight already computed by the rasterizer for the current sample.
func FilterNode(kind FilterKind, weight float64, child Node) Node {
	return program.Filter{Kind: kind, Weight: weight, Child: child}
}

// WrapMode controls how an ImageNode samples outside its source's bounds.
type WrapMode = program.WrapMode

const (
	WrapClamp       = program.WrapClamp
	WrapRepeat      = program.WrapRepeat
	WrapTransparent = program.WrapTransparent
)

// Sampler is the pixel source an ImageNode reads from. *ImageRaster
// implements it, as does any value returned by NewImageSampler.
type Sampler = program.Sampler

// ImageNode samples src at the evaluation context's centroid after applying
// the affine pixel-space transform a,b,c,d,e,f: u = a*x + c*y + e,
// v = b*x + d*y + f.
func ImageNode(src Sampler, a, b, c, d, e, f float64, wrap WrapMode) Node {
	return program.Image{Sampler: src, A: a, B: b, C: c, D: d, E: e, F: f, Wrap: wrap}
}
