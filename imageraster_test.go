package alpenglow

import (
	"image"
	"image/color"
	"testing"

	"github.com/alpenglow-go/alpenglow/internal/program"
)

func TestImageRasterFullRegionAndPartial(t *testing.T) {
	r := NewImageRaster(4, 4)
	r.AddClientFullRegion(0, 0, 2, 2, program.Vec4{R: 1, A: 1})
	r.AddClientPartialPixel(2, 2, program.Vec4{G: 1, A: 1}, 0.5)

	c, ok := r.SampleNearest(1, 1)
	if !ok || c.R != 1 || c.A != 1 {
		t.Errorf("full region pixel = %+v, ok=%v", c, ok)
	}

	c, ok = r.SampleNearest(2, 2)
	if !ok || c.A != 0.5 {
		t.Errorf("partial pixel alpha = %+v, ok=%v", c, ok)
	}

	if _, ok := r.SampleNearest(10, 10); ok {
		t.Error("expected out-of-bounds sample to fail")
	}
}

func TestImageRasterOffset(t *testing.T) {
	r := NewImageRaster(2, 2)
	r.SetOffset(5, 5)
	r.AddClientFullRegion(5, 5, 7, 7, program.Vec4{B: 1, A: 1})

	c, ok := r.SampleNearest(5, 5)
	if !ok || c.B != 1 {
		t.Errorf("offset full region = %+v, ok=%v", c, ok)
	}
	if _, ok := r.SampleNearest(0, 0); ok {
		t.Error("expected (0,0) to fall outside the offset buffer")
	}
}

func TestImageRasterEncodePNGRoundTrip(t *testing.T) {
	r := NewImageRaster(2, 2)
	r.AddClientFullRegion(0, 0, 2, 2, program.Vec4{R: 1, G: 1, A: 1})
	img := r.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected image bounds: %v", img.Bounds())
	}
	got := img.NRGBAAt(0, 0)
	if got.R != 255 || got.G != 255 || got.A != 255 {
		t.Errorf("NRGBAAt(0,0) = %+v", got)
	}
}

func TestNewImageSampler(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	sampler := NewImageSampler(src, 2, 2, nil)
	if sampler.Width() != 2 || sampler.Height() != 2 {
		t.Fatalf("unexpected sampler dimensions %dx%d", sampler.Width(), sampler.Height())
	}
	c, ok := sampler.SampleNearest(0, 0)
	if !ok || c.A < 0.99 || c.R < 0.99 {
		t.Errorf("SampleNearest(0,0) = %+v, ok=%v", c, ok)
	}
}
