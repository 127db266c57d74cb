// Command alpglowdemo renders a sample scene through the full rasterizer
// pipeline: build a few RenderPaths and a RenderProgram, partition and
// rasterize them with Rasterize, and save the result as a PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/alpenglow-go/alpenglow"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		output = flag.String("output", "demo.png", "output file")
	)
	flag.Parse()

	prog, paths, bounds := buildScene(*width, *height)

	opts := alpenglow.NewOptions(
		alpenglow.WithTileSize(128),
		alpenglow.WithExecutionMethod(alpenglow.ExecInstructions),
	)

	out := alpenglow.NewImageRaster(*width, *height)
	if err := alpenglow.Rasterize(prog, paths, bounds, opts, out); err != nil {
		log.Fatalf("rasterize: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer f.Close()
	if err := out.EncodePNG(f); err != nil {
		log.Fatalf("encode png: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// buildScene composes a linear-gradient background, a radial-gradient-filled
// circle, and a rounded rectangle sampling a generated checkerboard image,
// nested through PathBoolean nodes, and returns the RenderProgram together
// with the RenderPaths that drive its PathBoolean branches.
func buildScene(w, h int) (alpenglow.Node, []*alpenglow.RenderPath, alpenglow.BoundingBox) {
	bounds := alpenglow.BoundingBox{MinX: 0, MinY: 0, MaxX: float64(w), MaxY: float64(h)}

	background := alpenglow.LinearGradientNode(0, 0, 0, float64(h),
		alpenglow.GradientStop{Offset: 0, Color: alpenglow.RGB(0.1, 0.2, 0.4)},
		alpenglow.GradientStop{Offset: 1, Color: alpenglow.RGB(0.5, 0.4, 0.6)},
	)

	circlePath := alpenglow.NewPath()
	circlePath.Circle(float64(w)/4, float64(h)/2, float64(h)/5)
	circleRender := circlePath.ToRenderPath(alpenglow.NonZero)

	circleFill := alpenglow.RadialGradientNode(float64(w)/4, float64(h)/2, float64(h)/5,
		alpenglow.GradientStop{Offset: 0, Color: alpenglow.RGBA2(1, 0.3, 0.3, 0.9)},
		alpenglow.GradientStop{Offset: 1, Color: alpenglow.RGBA2(0.3, 0.1, 0.6, 0.9)},
	)
	circleProgram := alpenglow.PathBooleanNode(circleRender, circleFill, background)

	rectPath := alpenglow.NewPath()
	rectPath.RoundedRectangle(float64(w)/2, float64(h)/4, float64(w)/3, float64(h)/2, 24)
	rectRender := rectPath.ToRenderPath(alpenglow.NonZero)

	checker := alpenglow.NewImageSampler(checkerboardImage(64, 64), 64, 64, nil)
	rectFill := alpenglow.ImageNode(checker, 64/(float64(w)/3), 0, 0, 64/(float64(h)/2),
		-64*(float64(w)/2)/(float64(w)/3), -64*(float64(h)/4)/(float64(h)/2), alpenglow.WrapRepeat)
	rectProgram := alpenglow.PathBooleanNode(rectRender, rectFill, circleProgram)

	return rectProgram, []*alpenglow.RenderPath{circleRender, rectRender}, bounds
}

// checkerboardImage generates a small black/white checkerboard as a source
// image for the demo's ImageNode.
func checkerboardImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	const cell = 8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/cell+y/cell)%2 == 0 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}
