package program

// FilterKind selects a per-face-area resampling kernel applied before a
// child node is sampled.
type FilterKind uint8

const (
	FilterBox FilterKind = iota
	FilterBilinear
	FilterMitchellNetravali
)

// Filter scales a child node's alpha contribution by a reconstruction-filter
// weight. The weight itself is computed upstream by internal/raster (which
// owns the per-cell edge accumulation internal/filterkernel needs); Filter
// only carries the already-evaluated Weight through the DAG so it can
// participate in Stack/BlendCompose composition uniformly with other nodes.
type Filter struct {
	Kind   FilterKind
	Weight float64
	Child  Node
}

func (f Filter) Children() []Node    { return []Node{f.Child} }
func (f Filter) NeedsFace() bool     { return f.Child.NeedsFace() }
func (f Filter) NeedsArea() bool     { return f.Child.NeedsArea() }
func (f Filter) NeedsCentroid() bool { return f.Child.NeedsCentroid() }

func (f Filter) Eval(ctx EvalContext) Vec4 {
	v := f.Child.Eval(ctx)
	return Vec4{R: v.R, G: v.G, B: v.B, A: v.A * clamp01(f.Weight)}
}

func (f Filter) Simplified() Node {
	child := f.Child.Simplified()
	if f.Weight >= 1 {
		return child
	}
	if f.Weight <= 0 {
		return Color{}
	}
	if col, ok := AsColor(child); ok {
		return Color{V: Filter{f.Kind, f.Weight, col}.Eval(EvalContext{})}
	}
	return Filter{f.Kind, f.Weight, child}
}

func (f Filter) WithPathInclusion(predicate func(uint64) bool) Node {
	return Filter{f.Kind, f.Weight, f.Child.WithPathInclusion(predicate)}
}

func (f Filter) Equal(o Node) bool {
	other, ok := o.(Filter)
	return ok && other.Kind == f.Kind && other.Weight == f.Weight && f.Child.Equal(other.Child)
}
