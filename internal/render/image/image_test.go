package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 255), G: uint8(y % 255), B: 100, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRender_ProducesSquarePNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	writePNG(t, src, 800, 200)

	dst := filepath.Join(dir, "out.png")
	if err := Render(src, dst, 256); err != nil {
		t.Fatalf("Render: %v", err)
	}

	bounds, err := decodeBounds(dst)
	if err != nil {
		t.Fatalf("decodeBounds: %v", err)
	}
	if bounds.Dx() != 256 || bounds.Dy() != 256 {
		t.Fatalf("got %dx%d, want 256x256", bounds.Dx(), bounds.Dy())
	}
}

func TestRender_FallsBackOnDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(src, []byte("not a real png"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "out.png")
	if err := Render(src, dst, 128); err != nil {
		t.Fatalf("Render should fall back to placeholder, not fail: %v", err)
	}

	bounds, err := decodeBounds(dst)
	if err != nil {
		t.Fatalf("decodeBounds: %v", err)
	}
	if bounds.Dx() != 128 || bounds.Dy() != 128 {
		t.Fatalf("got %dx%d, want 128x128", bounds.Dx(), bounds.Dy())
	}
}
