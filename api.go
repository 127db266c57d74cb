package alpenglow

import (
	"github.com/alpenglow-go/alpenglow/internal/face"
	"github.com/alpenglow-go/alpenglow/internal/filterkernel"
	"github.com/alpenglow-go/alpenglow/internal/geom2"
	"github.com/alpenglow-go/alpenglow/internal/raster"
)

// RenderableFace pairs a clipped region with the (already specialized and
// simplified) program that colors it — the result of PartitionRenderableFaces
// and the input to Rasterize's accumulation pass.
type RenderableFace = raster.RenderableFace

// OutputRaster is the only externally mutating contract the rasterizer
// calls into; *ImageRaster implements it.
type OutputRaster = raster.OutputRaster

func toRasterRule(r FillRule) raster.FillRule {
	if r == EvenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}

func toFaceLoops(loops [][]Point) [][]face.Point {
	out := make([][]face.Point, len(loops))
	for i, loop := range loops {
		pts := make([]face.Point, len(loop))
		for j, p := range loop {
			pts[j] = p.ToFace()
		}
		out[i] = pts
	}
	return out
}

func toRasterOptions(o Options) raster.Options {
	var strategy geom2.IntersectionStrategy
	switch o.EdgeIntersectionMethod {
	case IntersectBoundsTree:
		strategy = geom2.BoundsTree
	case IntersectArrayBoundsTree:
		strategy = geom2.ArrayBoundsTree
	default:
		strategy = geom2.Quadratic
	}

	var kind filterkernel.Kind
	switch o.PolygonFiltering {
	case FilterBilinear:
		kind = filterkernel.Bilinear
	case FilterMitchellNetravali:
		kind = filterkernel.MitchellNetravali
	default:
		kind = filterkernel.Box
	}

	var variant raster.FaceVariant
	switch o.RenderableFaceType {
	case FaceTypeEdged:
		variant = raster.VariantEdged
	case FaceTypeEdgedClipped:
		variant = raster.VariantEdgedClipped
	default:
		variant = raster.VariantPolygonal
	}

	var combine raster.CombinePolicy
	switch o.RenderableFaceMethod {
	case FaceMethodFullyCombined:
		combine = raster.CombineFullyCombined
	case FaceMethodSimplifyingCombined:
		combine = raster.CombineSimplifyingCombined
	case FaceMethodTraced:
		combine = raster.CombineTraced
	default:
		combine = raster.CombineSimple
	}

	return raster.Options{
		TileSize:                      float64(o.TileSize),
		FilterKind:                    kind,
		PolygonFilterWindowMultiplier: int(o.PolygonFilterWindowMultiplier),
		Variant:                       variant,
		Combine:                       combine,
		Strategy:                      strategy,
		SplitPrograms:                 o.SplitPrograms,
	}
}

func toPathSpecs(paths []*RenderPath) []raster.PathSpec {
	out := make([]raster.PathSpec, len(paths))
	for i, p := range paths {
		out[i] = raster.PathSpec{ID: p.ID(), Rule: toRasterRule(p.Rule()), Loops: toFaceLoops(p.Loops())}
	}
	return out
}

// PartitionRenderableFaces runs the constructive area geometry pipeline
//: prog is simplified and specialized against each
// non-overlapping face the paths carve bounds into, yielding one
// RenderableFace per face. This is the operation Rasterize itself calls
// before accumulating; exposed directly so callers can inspect or cache the
// partition (e.g. across frames where only the program, not the geometry,
// changes).
func PartitionRenderableFaces(prog Node, paths []*RenderPath, bounds BoundingBox, opts Options) ([]RenderableFace, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.logger()
	rbounds := face.Bounds{MinX: bounds.MinX, MinY: bounds.MinY, MaxX: bounds.MaxX, MaxY: bounds.MaxY}
	ropts := toRasterOptions(opts)
	log.Debug("partitioning renderable faces",
		"tileSize", ropts.TileSize, "pathCount", len(paths), "strategy", int(ropts.Strategy))

	faces, err := raster.PartitionRenderableFaces(prog, rbounds, toPathSpecs(paths), ropts)
	if err != nil {
		return nil, err
	}
	log.Debug("partitioned renderable faces", "faceCount", len(faces))
	return faces, nil
}

// Rasterize implements full pipeline: partition prog against
// paths within bounds, then accumulate every resulting face's contribution
// into out via exact recursive area splitting. out is typically a freshly
// allocated *ImageRaster sized to bounds, but any OutputRaster works.
func Rasterize(prog Node, paths []*RenderPath, bounds BoundingBox, opts Options, out OutputRaster) error {
	faces, err := PartitionRenderableFaces(prog, paths, bounds, opts)
	if err != nil {
		return err
	}
	if ir, ok := out.(*ImageRaster); ok {
		ir.SetOffset(int(opts.OutputRasterOffsetX), int(opts.OutputRasterOffsetY))
	}
	log := opts.logger()
	log.Debug("rasterizing", "faceCount", len(faces), "executionMethod", int(opts.ExecutionMethod))
	return raster.RasterizeAccumulate(faces, toRasterOptions(opts), out)
}
