// Package alpenglow rasterizes a resolution-independent 2D vector scene —
// paths combined with a composable shading program — into antialiased pixel
// output.
//
// # Overview
//
// Three subsystems cooperate:
//
//   - Constructive Area Geometry ([internal/geom2], [internal/rational]):
//     input paths are clipped per-tile, intersected in exact rational
//     arithmetic, and traced into a half-edge graph of non-overlapping
//     RationalFaces, each carrying a per-path winding map.
//   - The shading program model ([internal/program], [internal/vm]): an
//     immutable expression DAG is simplified, specialized per face against
//     that face's winding map, compiled to a linear bytecode, and executed
//     on a small stack machine per pixel sample.
//   - The CPU rasterizer ([internal/face], [internal/raster],
//     [internal/filterkernel]): each face is recursively clipped down to
//     pixel cells (or a small grid) and its program evaluated, with
//     contributions accumulated through a box, bilinear, or
//     Mitchell-Netravali reconstruction filter.
//
// # Quick start
//
//	prog := alpenglow.ColorNode(alpenglow.Black)
//	faces, err := alpenglow.PartitionRenderableFaces(prog, paths, bounds, alpenglow.NewOptions())
//	err = alpenglow.Rasterize(prog, paths, bounds, alpenglow.NewOptions(), raster)
//
// # Non-goals
//
// The GPU/WGSL compute pipeline, bibliography tooling, and HTML/canvas
// presentation shell are not part of this package; they are alternate
// front ends and back ends that consume or produce the same RenderProgram
// and pixel semantics.
//
// # Coordinate system
//
// Origin (0,0) at top-left, X increases right, Y increases down — the same
// convention used throughout the CAG and rasterize subsystems.
package alpenglow
