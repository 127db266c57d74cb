package alpenglow

import "testing"

func TestRasterizeFilledSquare(t *testing.T) {
	path := NewPath()
	path.Rectangle(2, 2, 4, 4)
	square := path.ToRenderPath(NonZero)

	prog := PathBooleanNode(square, ColorNode(RGBA2(1, 0, 0, 1)), ColorNode(Transparent))
	bounds := BoundingBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	opts := NewOptions(WithTileSize(10))

	out := NewImageRaster(10, 10)
	if err := Rasterize(prog, []*RenderPath{square}, bounds, opts, out); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	c, ok := out.SampleNearest(3, 3)
	if !ok {
		t.Fatal("expected (3,3) to be in bounds")
	}
	if c.R < 0.99 || c.A < 0.99 {
		t.Errorf("expected opaque red at (3,3), got %+v", c)
	}

	c, ok = out.SampleNearest(9, 9)
	if !ok {
		t.Fatal("expected (9,9) to be in bounds")
	}
	if c.A > 1e-6 {
		t.Errorf("expected transparent at (9,9), got %+v", c)
	}
}

func TestRasterizeRejectsInvalidOptions(t *testing.T) {
	prog := ColorNode(Black)
	bounds := BoundingBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}
	opts := NewOptions(WithTileSize(0))

	if _, err := PartitionRenderableFaces(prog, nil, bounds, opts); err == nil {
		t.Fatal("expected UsageError for zero TileSize")
	}
}

func TestPartitionRenderableFacesNoPaths(t *testing.T) {
	prog := ColorNode(Blue)
	bounds := BoundingBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}
	faces, err := PartitionRenderableFaces(prog, nil, bounds, NewOptions(WithTileSize(4)))
	if err != nil {
		t.Fatalf("PartitionRenderableFaces: %v", err)
	}
	if len(faces) == 0 {
		t.Fatal("expected at least the background face")
	}
}
