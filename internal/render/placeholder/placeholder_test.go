package placeholder

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func decode(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestRender_HDRProducesSizedPNG(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")
	if err := Render("skybox.hdr", dst, 128); err != nil {
		t.Fatalf("Render: %v", err)
	}
	w, h := decode(t, dst)
	if w != 128 || h != 128 {
		t.Fatalf("got %dx%d, want 128x128", w, h)
	}
}

func TestRender_CompressedTextureProducesSizedPNG(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")
	if err := Render("terrain.dds", dst, 64); err != nil {
		t.Fatalf("Render: %v", err)
	}
	w, h := decode(t, dst)
	if w != 64 || h != 64 {
		t.Fatalf("got %dx%d, want 64x64", w, h)
	}
}

func TestRender_UnknownExtensionFallsBackToFramedIcon(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")
	if err := Render("mystery.xyz", dst, 32); err != nil {
		t.Fatalf("Render: %v", err)
	}
	w, h := decode(t, dst)
	if w != 32 || h != 32 {
		t.Fatalf("got %dx%d, want 32x32", w, h)
	}
}

func TestRender_NoLeftoverTempFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.png")
	if err := Render("a.hdr", dst, 16); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := os.Stat(dst + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected no leftover temp file, stat err=%v", err)
	}
}
