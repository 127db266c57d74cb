package alpenglow

import "log/slog"

// PolygonFilter selects the reconstruction filter used to convolve a face's
// exact polygon coverage into pixel samples.
type PolygonFilter uint8

const (
	// FilterBox is the default filter: contribution equals the face's area
	// within the cell, support radius 0.5.
	FilterBox PolygonFilter = iota
	// FilterBilinear integrates a tent kernel of support radius 1 over the face.
	FilterBilinear
	// FilterMitchellNetravali integrates the Mitchell-Netravali cubic kernel
	// of support radius 2 over the face.
	FilterMitchellNetravali
)

// String returns a human-readable filter name.
func (f PolygonFilter) String() string {
	switch f {
	case FilterBox:
		return "Box"
	case FilterBilinear:
		return "Bilinear"
	case FilterMitchellNetravali:
		return "MitchellNetravali"
	default:
		return "Unknown"
	}
}

// EdgeIntersectionSortMethod controls the advisory reordering of IntegerEdges
// before intersection testing. Ordering never changes the resulting
// intersection set, only the performance of the chosen intersection method.
type EdgeIntersectionSortMethod uint8

const (
	SortNone EdgeIntersectionSortMethod = iota
	SortCenterSize
	SortMinMax
	SortMinMaxSize
	SortCenterMinMax
	SortRandom
)

// EdgeIntersectionMethod selects the algorithm used to find all pairwise
// IntegerEdge intersections within a tile.
type EdgeIntersectionMethod uint8

const (
	IntersectQuadratic EdgeIntersectionMethod = iota
	IntersectBoundsTree
	IntersectArrayBoundsTree
)

// RenderableFaceType selects the ClippableFace representation used to
// materialize each RationalFace.
type RenderableFaceType uint8

const (
	FaceTypePolygonal RenderableFaceType = iota
	FaceTypeEdged
	FaceTypeEdgedClipped
)

// RenderableFaceMethod selects how RationalFaces are grouped into
// RenderableFaces.
type RenderableFaceMethod uint8

const (
	FaceMethodSimple RenderableFaceMethod = iota
	FaceMethodFullyCombined
	FaceMethodSimplifyingCombined
	FaceMethodTraced
)

// ExecutionMethod names how a face's RenderProgram is evaluated per sample;
// see ExecInstructions for what the rasterizer does with it.
type ExecutionMethod uint8

const (
	// ExecInstructions is the default. The rasterizer does not compile
	// programs to the stack-machine bytecode: every face's program is
	// evaluated by the direct DAG evaluator whichever ExecutionMethod is
	// set, and the value only appears in Rasterize's debug log.
	ExecInstructions ExecutionMethod = iota
	// ExecEvaluation walks the RenderProgram DAG directly with a recursive
	// evaluator. Used as a reference implementation and for the
	// evaluator-agreement property (§8 invariant 9).
	ExecEvaluation
)

// Option configures an [Options] value. Construct with [NewOptions].
type Option func(*Options)

// Options bundles every tunable named in. All fields have
// documented conformant defaults applied by [NewOptions].
type Options struct {
	OutputRasterOffsetX, OutputRasterOffsetY float64
	TileSize                                 int
	PolygonFiltering                         PolygonFilter
	PolygonFilterWindowMultiplier            float64
	EdgeIntersectionSortMethod               EdgeIntersectionSortMethod
	EdgeIntersectionMethod                   EdgeIntersectionMethod
	RenderableFaceType                       RenderableFaceType
	RenderableFaceMethod                     RenderableFaceMethod
	SplitPrograms                            bool
	ExecutionMethod                          ExecutionMethod
	Log                                      *slog.Logger
}

// NewOptions builds an [Options] value with spec-conformant defaults,
// applying each Option in order. Mirrors the teacher's functional-options
// construction (compare gg.ContextOption / gg.defaultOptions).
func NewOptions(opts ...Option) Options {
	o := Options{
		TileSize:                      256,
		PolygonFiltering:              FilterBox,
		PolygonFilterWindowMultiplier: 1,
		EdgeIntersectionSortMethod:    SortCenterMinMax,
		EdgeIntersectionMethod:        IntersectArrayBoundsTree,
		RenderableFaceType:            FaceTypePolygonal,
		RenderableFaceMethod:          FaceMethodTraced,
		SplitPrograms:                 true,
		ExecutionMethod:               ExecInstructions,
	}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// WithOutputRasterOffset translates every write into the OutputRaster.
func WithOutputRasterOffset(x, y float64) Option {
	return func(o *Options) {
		o.OutputRasterOffsetX, o.OutputRasterOffsetY = x, y
	}
}

// WithTileSize sets the side length, in RenderProgram units, of each CAG tile.
func WithTileSize(n int) Option {
	return func(o *Options) { o.TileSize = n }
}

// WithPolygonFiltering selects the reconstruction filter.
func WithPolygonFiltering(f PolygonFilter) Option {
	return func(o *Options) { o.PolygonFiltering = f }
}

// WithPolygonFilterWindowMultiplier scales the filter radius. A value other
// than 1 disables the grid-clip fast path (§4.6); conformance for that path
// is an open, unimplemented question (§9) and is rejected by [Rasterize].
func WithPolygonFilterWindowMultiplier(m float64) Option {
	return func(o *Options) { o.PolygonFilterWindowMultiplier = m }
}

// WithEdgeIntersectionSortMethod selects the advisory pre-intersection edge order.
func WithEdgeIntersectionSortMethod(m EdgeIntersectionSortMethod) Option {
	return func(o *Options) { o.EdgeIntersectionSortMethod = m }
}

// WithEdgeIntersectionMethod selects the pairwise intersection algorithm.
func WithEdgeIntersectionMethod(m EdgeIntersectionMethod) Option {
	return func(o *Options) { o.EdgeIntersectionMethod = m }
}

// WithRenderableFaceType selects the ClippableFace representation.
func WithRenderableFaceType(t RenderableFaceType) Option {
	return func(o *Options) { o.RenderableFaceType = t }
}

// WithRenderableFaceMethod selects how faces are grouped.
func WithRenderableFaceMethod(m RenderableFaceMethod) Option {
	return func(o *Options) { o.RenderableFaceMethod = m }
}

// WithSplitPrograms toggles further splitting faces by connectivity under
// the final specialized program.
func WithSplitPrograms(v bool) Option {
	return func(o *Options) { o.SplitPrograms = v }
}

// WithExecutionMethod sets Options.ExecutionMethod (see ExecInstructions).
func WithExecutionMethod(m ExecutionMethod) Option {
	return func(o *Options) { o.ExecutionMethod = m }
}

// WithLog attaches a diagnostic sink for this call only, overriding the
// package-wide default set by [SetLogger].
func WithLog(l *slog.Logger) Option {
	return func(o *Options) { o.Log = l }
}

// logger returns the effective logger: the per-call override if set,
// otherwise the package default.
func (o Options) logger() *slog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return defaultLogger()
}

// validate checks the usage-error cases named in.
func (o Options) validate() error {
	if o.TileSize <= 0 {
		return &UsageError{Field: "TileSize", Reason: "must be positive"}
	}
	if o.PolygonFilterWindowMultiplier <= 0 {
		return &UsageError{Field: "PolygonFilterWindowMultiplier", Reason: "must be positive"}
	}
	if o.PolygonFilterWindowMultiplier != 1 {
		return &UsageError{
			Field:  "PolygonFilterWindowMultiplier",
			Reason: "non-default window multipliers are not implemented for conformance",
		}
	}
	if o.RenderableFaceMethod == FaceMethodSimplifyingCombined && o.RenderableFaceType == FaceTypePolygonal {
		return &UsageError{
			Field:  "RenderableFaceMethod",
			Reason: "simplifyingCombined is invalid with renderableFaceType=polygonal",
		}
	}
	return nil
}
