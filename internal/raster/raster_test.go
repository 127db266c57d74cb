package raster

import (
	"testing"

	"github.com/alpenglow-go/alpenglow/internal/face"
	"github.com/alpenglow-go/alpenglow/internal/program"
)

type recordingOutput struct {
	fullRegions []fullRegionCall
	partials    []partialCall
}

type fullRegionCall struct {
	minX, minY, maxX, maxY int
	color                  program.Vec4
}

type partialCall struct {
	x, y  int
	color program.Vec4
	area  float64
}

func (r *recordingOutput) AddClientFullRegion(minX, minY, maxX, maxY int, color program.Vec4) {
	r.fullRegions = append(r.fullRegions, fullRegionCall{minX, minY, maxX, maxY, color})
}
func (r *recordingOutput) AddClientPartialPixel(x, y int, color program.Vec4, area float64) {
	r.partials = append(r.partials, partialCall{x, y, color, area})
}
func (r *recordingOutput) AddFilterPixel(x, y int, color program.Vec4, weight float64) {}

func squarePath(id uint64, minX, minY, maxX, maxY float64) PathSpec {
	return PathSpec{
		ID:   id,
		Rule: NonZero,
		Loops: [][]face.Point{{
			{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY},
		}},
	}
}

func TestPartitionAndRasterizeFilledSquare(t *testing.T) {
	path := squarePath(1, 2, 2, 6, 6)
	prog := program.PathBoolean{
		PathID:  1,
		Inside:  program.Color{V: program.Vec4{R: 1, A: 1}},
		Outside: program.Color{V: program.Vec4{}},
	}
	bounds := face.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	opts := Options{TileSize: 10, Variant: VariantPolygonal, Combine: CombineSimple}

	faces, err := PartitionRenderableFaces(prog, bounds, []PathSpec{path}, opts)
	if err != nil {
		t.Fatalf("PartitionRenderableFaces: %v", err)
	}
	if len(faces) == 0 {
		t.Fatal("expected at least one renderable face")
	}

	out := &recordingOutput{}
	if err := RasterizeAccumulate(faces, opts, out); err != nil {
		t.Fatalf("RasterizeAccumulate: %v", err)
	}
	if len(out.fullRegions) == 0 && len(out.partials) == 0 {
		t.Error("expected some pixel writes from rasterizing a filled square")
	}

	// The square spans exactly [2,6)x[2,6): every interior pixel should have
	// been recorded as a full red region or a fully-covered partial pixel.
	var sawRed bool
	for _, f := range out.fullRegions {
		if f.color.R == 1 && f.color.A == 1 {
			sawRed = true
		}
	}
	for _, p := range out.partials {
		if p.color.R == 1 && p.area > 0.99 {
			sawRed = true
		}
	}
	if !sawRed {
		t.Error("expected to see red fully-covered pixels inside the square")
	}
}

func TestPartitionRenderableFacesEmptyWhenTransparent(t *testing.T) {
	path := squarePath(1, 2, 2, 6, 6)
	prog := program.Color{V: program.Vec4{}}
	bounds := face.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	opts := Options{TileSize: 10}

	faces, err := PartitionRenderableFaces(prog, bounds, []PathSpec{path}, opts)
	if err != nil {
		t.Fatalf("PartitionRenderableFaces: %v", err)
	}
	for _, f := range faces {
		if col, ok := program.AsColor(f.Prog); ok && col.V.A > 0 {
			t.Errorf("expected only transparent faces, got %+v", col)
		}
	}
}
