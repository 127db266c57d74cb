package raster

import (
	"math"

	"github.com/alpenglow-go/alpenglow/internal/face"
	"github.com/alpenglow-go/alpenglow/internal/filterkernel"
	"github.com/alpenglow-go/alpenglow/internal/program"
)

// OutputRaster is the only externally mutating contract in the rasterizer
//; the root package's ImageRaster implements it.
type OutputRaster interface {
	AddClientFullRegion(minX, minY, maxX, maxY int, color program.Vec4)
	AddClientPartialPixel(x, y int, color program.Vec4, area float64)
	AddFilterPixel(x, y int, color program.Vec4, weight float64)
}

// RasterizeAccumulate walks every RenderableFace and accumulates its
// contribution into out.
func RasterizeAccumulate(faces []RenderableFace, opts Options, out OutputRaster) error {
	for _, rf := range faces {
		b := rf.Face.Bounds()
		area := rf.Face.Area()
		if err := binaryRasterize(rf.Face, rf.Prog, area, b, opts, out); err != nil {
			return err
		}
	}
	return nil
}

// binaryRasterize is the recursive exact-area splitter.
func binaryRasterize(cf face.ClippableFace, prog program.Node, area float64, b face.Bounds, opts Options, out OutputRaster) error {
	if area <= face.AreaTolerance {
		return nil
	}
	w, h := b.Width(), b.Height()
	if area >= w*h-face.FullAreaTolerance {
		addFullArea(b, prog, opts, out)
		return nil
	}
	if w <= 1+1e-9 && h <= 1+1e-9 {
		cx, cy := cf.Centroid()
		addPartialPixel(area, clampInto(cx, b.MinX, b.MaxX), clampInto(cy, b.MinY, b.MaxY), b, prog, opts, out)
		return nil
	}
	if w <= 8 && h <= 8 {
		return terminalGridRasterize(cf, prog, b, opts, out)
	}

	if w >= h {
		mid := math.Floor(b.MinX + w/2)
		lo, hi := cf.BinaryXClip(mid, b.MinY)
		loB := face.Bounds{MinX: b.MinX, MinY: b.MinY, MaxX: mid, MaxY: b.MaxY}
		hiB := face.Bounds{MinX: mid, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
		if loArea := lo.Area(); loArea > face.AreaTolerance {
			if err := binaryRasterize(lo, prog, loArea, loB, opts, out); err != nil {
				return err
			}
		}
		if hiArea := hi.Area(); hiArea > face.AreaTolerance {
			if err := binaryRasterize(hi, prog, hiArea, hiB, opts, out); err != nil {
				return err
			}
		}
		return nil
	}

	mid := math.Floor(b.MinY + h/2)
	lo, hi := cf.BinaryYClip(mid, b.MinX)
	loB := face.Bounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: mid}
	hiB := face.Bounds{MinX: b.MinX, MinY: mid, MaxX: b.MaxX, MaxY: b.MaxY}
	if loArea := lo.Area(); loArea > face.AreaTolerance {
		if err := binaryRasterize(lo, prog, loArea, loB, opts, out); err != nil {
			return err
		}
	}
	if hiArea := hi.Area(); hiArea > face.AreaTolerance {
		if err := binaryRasterize(hi, prog, hiArea, hiB, opts, out); err != nil {
			return err
		}
	}
	return nil
}

// terminalGridRasterize performs one gridClipIterate pass and accumulates
// per-cell area/centroid via the face's reusable Accumulator.
func terminalGridRasterize(cf face.ClippableFace, prog program.Node, b face.Bounds, opts Options, out OutputRaster) error {
	w, h := int(math.Round(b.Width())), int(math.Round(b.Height()))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	accs := make(map[[2]int]face.Accumulator, w*h)
	get := func(cx, cy int) face.Accumulator {
		a, ok := accs[[2]int{cx, cy}]
		if !ok {
			a = cf.NewAccumulator()
			a.SetAccumulationBounds(b.MinX+float64(cx), b.MinY+float64(cy), b.MinX+float64(cx)+1, b.MinY+float64(cy)+1)
			accs[[2]int{cx, cy}] = a
		}
		return a
	}
	cf.GridClipIterate(b, 1, 1, w, h, func(cellX, cellY int, x0, y0, x1, y1 float64, _, _ bool) {
		get(cellX, cellY).AddEdge(x0, y0, x1, y1)
	}, func() {
		for _, a := range accs {
			a.MarkNewPolygon()
		}
	})

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			a, ok := accs[[2]int{cx, cy}]
			if !ok {
				continue
			}
			area, centroidX, centroidY := a.FinalizeFace()
			cellB := face.Bounds{MinX: b.MinX + float64(cx), MinY: b.MinY + float64(cy), MaxX: b.MinX + float64(cx) + 1, MaxY: b.MinY + float64(cy) + 1}
			if area >= 1-face.FullAreaTolerance {
				addFullArea(cellB, prog, opts, out)
			} else if area > face.AreaTolerance {
				addPartialPixel(area, clampInto(centroidX, cellB.MinX, cellB.MaxX), clampInto(centroidY, cellB.MinY, cellB.MaxY), cellB, prog, opts, out)
			}
		}
	}
	return nil
}

func clampInto(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func evalAt(prog program.Node, area float64, cx, cy float64, b face.Bounds) program.Vec4 {
	return prog.Eval(program.EvalContext{
		HasFace: true, Area: area, CentroidX: cx, CentroidY: cy,
		MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY,
	})
}

// addFullArea implements "addFullArea": a single full-region
// write for the cell, evaluated once at its center (valid exactly for
// constant-color programs, and used as the cell-representative sample for
// non-constant ones — full per-pixel looping for non-constant programs
// inside a fully-covered region is a documented simplification).
func addFullArea(b face.Bounds, prog program.Node, opts Options, out OutputRaster) {
	cx, cy := (b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2
	color := evalAt(prog, b.Width()*b.Height(), cx, cy, b)
	out.AddClientFullRegion(int(math.Floor(b.MinX)), int(math.Floor(b.MinY)), int(math.Ceil(b.MaxX)), int(math.Ceil(b.MaxY)), color)
}

// addPartialPixel implements "addPartialPixel": box-filter
// pixels scale by area directly; bilinear/Mitchell-Netravali scatter to the
// neighboring filter taps ( non-goal path, approximated here by
// sampling the kernel weight at the covered area's centroid rather than
// integrating the exact clipped polygon per tap — see DESIGN.md).
func addPartialPixel(area, cx, cy float64, b face.Bounds, prog program.Node, opts Options, out OutputRaster) {
	color := evalAt(prog, area, cx, cy, b)
	x, y := int(math.Floor(b.MinX)), int(math.Floor(b.MinY))
	if opts.FilterKind == filterkernel.Box {
		out.AddClientPartialPixel(x, y, color, area)
		return
	}
	addFilterPixel(x, y, cx, cy, area, color, opts, out)
}
