package alpenglow

import (
	"image"
	stdcolor "image/color"
	"image/png"
	"io"

	ximgdraw "golang.org/x/image/draw"

	"github.com/alpenglow-go/alpenglow/internal/program"
)

// ImageRaster is the OutputRaster Rasterize writes into: a plain
// premultiplied-alpha pixel buffer, over-composited as contributions
// arrive. It also implements
// program.Sampler, so a rasterized result can itself feed an ImageNode (an
// off-screen pass sampled by a later one), and NewImageSampler builds a
// Sampler from an arbitrary source image via golang.org/x/image/draw's
// resampling.
type ImageRaster struct {
	width, height    int
	offsetX, offsetY int
	pix              []program.Vec4
}

// NewImageRaster allocates a transparent width x height buffer.
func NewImageRaster(width, height int) *ImageRaster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &ImageRaster{width: width, height: height, pix: make([]program.Vec4, width*height)}
}

// SetOffset translates every subsequent AddClient*/AddFilterPixel call by
// (-x,-y) before indexing into the buffer, matching
// Options.OutputRasterOffsetX/Y.
func (r *ImageRaster) SetOffset(x, y int) {
	r.offsetX, r.offsetY = x, y
}

// Width returns the buffer's width in pixels.
func (r *ImageRaster) Width() int { return r.width }

// Height returns the buffer's height in pixels.
func (r *ImageRaster) Height() int { return r.height }

func (r *ImageRaster) index(x, y int) (int, bool) {
	x -= r.offsetX
	y -= r.offsetY
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0, false
	}
	return y*r.width + x, true
}

// composite over-composites the straight-alpha color, with its alpha scaled
// by coverage (an area fraction for client writes, a reconstruction-filter
// weight for filtered writes), onto the existing premultiplied pixel — the
// premultiplied form of the "over" formula program.Stack uses between DAG
// layers, applied here between successive OutputRaster contributions.
func (r *ImageRaster) composite(i int, color program.Vec4, coverage float64) {
	if coverage <= 0 {
		return
	}
	if coverage > 1 {
		coverage = 1
	}
	dst := r.pix[i]
	srcA := color.A * coverage
	outA := srcA + dst.A*(1-srcA)
	if outA <= 0 {
		r.pix[i] = program.Vec4{}
		return
	}
	r.pix[i] = program.Vec4{
		R: color.R*srcA + dst.R*(1-srcA),
		G: color.G*srcA + dst.G*(1-srcA),
		B: color.B*srcA + dst.B*(1-srcA),
		A: outA,
	}
}

// AddClientFullRegion implements raster.OutputRaster: color fully covers
// every pixel in [minX,maxX)x[minY,maxY).
func (r *ImageRaster) AddClientFullRegion(minX, minY, maxX, maxY int, color program.Vec4) {
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			if i, ok := r.index(x, y); ok {
				r.composite(i, color, 1)
			}
		}
	}
}

// AddClientPartialPixel implements raster.OutputRaster: color covers area
// (in [0,1]) of pixel (x,y) under the box filter.
func (r *ImageRaster) AddClientPartialPixel(x, y int, color program.Vec4, area float64) {
	if i, ok := r.index(x, y); ok {
		r.composite(i, color, area)
	}
}

// AddFilterPixel implements raster.OutputRaster: color contributes weight to
// pixel (x,y) under a bilinear or Mitchell-Netravali reconstruction filter.
func (r *ImageRaster) AddFilterPixel(x, y int, color program.Vec4, weight float64) {
	if i, ok := r.index(x, y); ok {
		r.composite(i, color, weight)
	}
}

// SampleNearest implements program.Sampler.
func (r *ImageRaster) SampleNearest(x, y int) (program.Vec4, bool) {
	i, ok := r.index(x, y)
	if !ok {
		return program.Vec4{}, false
	}
	return r.pix[i], true
}

// Image converts the buffer to a standard, straight-alpha image.NRGBA,
// suitable for image/png or any other stdlib/x/image consumer.
func (r *ImageRaster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	for i, v := range r.pix {
		straight := program.Vec4{}
		if v.A > 0 {
			straight = program.Vec4{R: v.R / v.A, G: v.G / v.A, B: v.B / v.A, A: v.A}
		}
		x, y := i%r.width, i/r.width
		img.SetNRGBA(x, y, stdcolor.NRGBA{
			R: uint8(clamp255(straight.R * 255)),
			G: uint8(clamp255(straight.G * 255)),
			B: uint8(clamp255(straight.B * 255)),
			A: uint8(clamp255(straight.A * 255)),
		})
	}
	return img
}

// EncodePNG writes the buffer to w as a PNG, via the stdlib image/png
// encoder over the image/NRGBA built by Image.
func (r *ImageRaster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}

// NewImageSampler resamples src to exactly width x height pixels using
// scaler (golang.org/x/image/draw's high-quality scalers; nil defaults to
// draw.CatmullRom) and returns the result as a program.Sampler, for use as
// an ImageNode's source. This is the one place golang.org/x/image's
// resampling does real work: the rasterizer's own geometry pipeline never
// needs image scaling, only an ImageNode sourced from an external raster
// does.
func NewImageSampler(src image.Image, width, height int, scaler ximgdraw.Interpolator) Sampler {
	if scaler == nil {
		scaler = ximgdraw.CatmullRom
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), ximgdraw.Over, nil)

	out := NewImageRaster(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := dst.NRGBAAt(x, y)
			a := float64(c.A) / 255
			out.pix[y*width+x] = program.Vec4{
				R: float64(c.R) / 255 * a,
				G: float64(c.G) / 255 * a,
				B: float64(c.B) / 255 * a,
				A: a,
			}
		}
	}
	return out
}
