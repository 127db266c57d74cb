// Package raster implements the rasterize driver:
// partitioning a RenderProgram into per-tile RenderableFaces via the §4.1
// exact-geometry pipeline, then accumulating each face's contribution into
// an OutputRaster by recursive area-exact binary splitting.
package raster

import (
	"math"

	"github.com/alpenglow-go/alpenglow/internal/face"
	"github.com/alpenglow-go/alpenglow/internal/filterkernel"
	"github.com/alpenglow-go/alpenglow/internal/geom2"
	"github.com/alpenglow-go/alpenglow/internal/program"
)

// FillRule mirrors the root package's fill-rule enum without importing it
// (raster must not import the root package, which itself imports raster).
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) isNonZero() bool { return r == NonZero }

// PathSpec is one flattened path's geometry and fill rule, supplied by the
// caller (the root package owns RenderPath and its point data).
type PathSpec struct {
	ID    uint64
	Rule  FillRule
	Loops [][]face.Point
}

// FaceVariant selects which ClippableFace implementation partitionRenderableFaces
// builds for each reconstructed boundary.
type FaceVariant uint8

const (
	VariantPolygonal FaceVariant = iota
	VariantEdged
	VariantEdgedClipped
)

// CombinePolicy selects how faces sharing a program are grouped.
type CombinePolicy uint8

const (
	CombineSimple CombinePolicy = iota
	CombineFullyCombined
	CombineSimplifyingCombined
	CombineTraced
)

// Options configures partitionRenderableFaces and the accumulation pass.
type Options struct {
	TileSize                    float64
	FilterKind                  filterkernel.Kind
	PolygonFilterWindowMultiplier int
	Variant                     FaceVariant
	Combine                     CombinePolicy
	Strategy                    geom2.IntersectionStrategy
	SplitPrograms               bool
}

// backgroundPathID is reserved for the synthetic full-bounds rectangle path
// partitionRenderableFaces adds in step 1; real paths are assigned sequential
// IDs starting at 1 by the root package's RenderPath constructor, so this
// sentinel never collides.
const backgroundPathID = ^uint64(0)

// RenderableFace pairs a clippable region with the (already specialized and
// simplified) program that colors it.
type RenderableFace struct {
	Face face.ClippableFace
	Prog program.Node
}

// PartitionRenderableFaces implements step 1-3: simplify prog,
// partition bounds into tiles, run the exact geometry pipeline per tile, and
// specialize/simplify prog against each face's winding map.
func PartitionRenderableFaces(prog program.Node, bounds face.Bounds, paths []PathSpec, opts Options) ([]RenderableFace, error) {
	prog = prog.Simplified()
	tileSize := opts.TileSize
	if tileSize <= 0 {
		tileSize = 64
	}

	rules := make(map[uint64]FillRule, len(paths)+1)
	for _, p := range paths {
		rules[p.ID] = p.Rule
	}
	rules[backgroundPathID] = NonZero

	var out []RenderableFace
	for ty := bounds.MinY; ty < bounds.MaxY; ty += tileSize {
		for tx := bounds.MinX; tx < bounds.MaxX; tx += tileSize {
			tileMaxX := math.Min(tx+tileSize, bounds.MaxX)
			tileMaxY := math.Min(ty+tileSize, bounds.MaxY)
			faces, err := partitionTile(prog, tx, ty, tileMaxX, tileMaxY, paths, rules, opts)
			if err != nil {
				return nil, err
			}
			out = append(out, faces...)
		}
	}
	return combineFaces(out, opts.Combine), nil
}

func partitionTile(prog program.Node, minX, minY, maxX, maxY float64, paths []PathSpec, rules map[uint64]FillRule, opts Options) ([]RenderableFace, error) {
	tr := geom2.NewTransform(minX, minY, maxX, maxY)

	var edges []*geom2.IntegerEdge
	for _, p := range paths {
		for li, loop := range p.Loops {
			conv := toAnonLoop(loop)
			edges = append(edges, geom2.BuildIntegerEdges(p.ID, li, conv, minX, minY, maxX, maxY, tr)...)
		}
	}
	bgLoop := toAnonLoop([]face.Point{{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}})
	edges = append(edges, geom2.BuildIntegerEdges(backgroundPathID, 0, bgLoop, minX, minY, maxX, maxY, tr)...)

	if len(edges) == 0 {
		return nil, nil
	}
	if err := geom2.IntersectAll(edges, opts.Strategy); err != nil {
		return nil, err
	}
	g, err := geom2.Build(edges)
	if err != nil {
		return nil, err
	}
	if err := g.SortAndLink(); err != nil {
		return nil, err
	}
	boundaries := geom2.Trace(g)
	rfaces := geom2.AssignHoles(boundaries)
	windingMaps := geom2.ComputeWindingMaps(rfaces, edges)

	var out []RenderableFace
	for i, rf := range rfaces {
		wm := windingMaps[i]
		predicate := func(pathID uint64) bool {
			rule := rules[pathID]
			return geom2.Inside(rule.isNonZero(), wm[pathID])
		}
		specialized := prog.WithPathInclusion(predicate).Simplified()
		if col, ok := program.AsColor(specialized); ok && col.V.A <= 0 {
			continue
		}

		loops := [][]face.Point{boundaryToPoints(rf.Inner, tr)}
		for _, h := range rf.Holes {
			loops = append(loops, boundaryToPoints(h, tr))
		}
		// VariantEdgedClipped is not distinguished from VariantEdged here:
		// detecting that a traced boundary is exactly axis-aligned (the only
		// case EdgedClipped specializes) would require re-deriving the
		// original tile rectangle from the traced loop, which this pass
		// does not attempt (documented simplification, see DESIGN.md).
		var cf face.ClippableFace = &face.Polygonal{Loops: loops}
		if opts.Variant != VariantPolygonal {
			cf = cf.ToEdgedFace()
		}
		out = append(out, RenderableFace{Face: cf, Prog: specialized})
	}
	return out, nil
}

func toAnonLoop(loop []face.Point) []struct{ X, Y float64 } {
	out := make([]struct{ X, Y float64 }, len(loop))
	for i, p := range loop {
		out[i] = struct{ X, Y float64 }{p.X, p.Y}
	}
	return out
}

func boundaryToPoints(b *geom2.Boundary, tr geom2.Transform) []face.Point {
	pts := make([]face.Point, len(b.Points))
	for i, p := range b.Points {
		x, y := tr.FromIntegerFloat(p[0], p[1])
		pts[i] = face.Point{X: x, Y: y}
	}
	return pts
}

// combineFaces applies the simple/fullyCombined/simplifyingCombined/traced
// grouping policy. fullyCombined/simplifyingCombined/traced are implemented
// here as "merge faces whose specialized programs are structurally Equal
// into one multi-loop Polygonal face" rather than full
// connectivity-aware edge removal and re-tracing — a documented
// simplification (see DESIGN.md) given the geometric complexity of true
// shared-edge elision.
func combineFaces(in []RenderableFace, policy CombinePolicy) []RenderableFace {
	if policy == CombineSimple || len(in) == 0 {
		return in
	}
	var out []RenderableFace
	used := make([]bool, len(in))
	for i := range in {
		if used[i] {
			continue
		}
		group := []face.ClippableFace{in[i].Face}
		used[i] = true
		for j := i + 1; j < len(in); j++ {
			if used[j] || !in[i].Prog.Equal(in[j].Prog) {
				continue
			}
			group = append(group, in[j].Face)
			used[j] = true
		}
		if len(group) == 1 {
			out = append(out, in[i])
			continue
		}
		var loops [][]face.Point
		for _, g := range group {
			loops = append(loops, polygonLoopsOf(g)...)
		}
		out = append(out, RenderableFace{Face: &face.Polygonal{Loops: loops}, Prog: in[i].Prog})
	}
	return out
}

func polygonLoopsOf(cf face.ClippableFace) [][]face.Point {
	if p, ok := cf.(*face.Polygonal); ok {
		return p.Loops
	}
	return nil
}
