package raster

import (
	"math"

	"github.com/alpenglow-go/alpenglow/internal/filterkernel"
	"github.com/alpenglow-go/alpenglow/internal/program"
)

// addFilterPixel scatters a covered area's color contribution to the
// neighboring filter taps (the 2x2 neighborhood for bilinear, 4x4 for
// Mitchell-Netravali)/§4.7. Each tap's weight is the
// filter kernel evaluated at the offset between the tap center and the
// covered region's centroid, scaled by the covered area — an approximation
// of the exact per-tap clipped-polygon integral (documented simplification,
// consistent with the filtered path being a named conformance non-goal).
func addFilterPixel(x, y int, cx, cy, area float64, color program.Vec4, opts Options, out OutputRaster) {
	radius := opts.FilterKind.Radius()
	span := int(math.Ceil(radius))
	for ty := y - span; ty <= y+span; ty++ {
		for tx := x - span; tx <= x+span; tx++ {
			tapCX, tapCY := float64(tx)+0.5, float64(ty)+0.5
			dx, dy := cx-tapCX, cy-tapCY
			var weight float64
			switch opts.FilterKind {
			case filterkernel.Bilinear:
				weight = filterkernel.BilinearTap(dx, dy)
			case filterkernel.MitchellNetravali:
				weight = filterkernel.MitchellNetravali1D(dx) * filterkernel.MitchellNetravali1D(dy)
			default:
				weight = filterkernel.BoxWeight(1)
			}
			if weight == 0 {
				continue
			}
			out.AddFilterPixel(tx, ty, color, weight*area)
		}
	}
}
