package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/renzora/assetcore/internal/asseterr"
	"github.com/renzora/assetcore/internal/render/glb"
)

func writeAsset(t *testing.T, projectsDir, project, rel string, content []byte) string {
	t.Helper()
	path := filepath.Join(projectsDir, project, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderThumbnail_GeneratesAndCaches(t *testing.T) {
	projectsDir := t.TempDir()
	writeAsset(t, projectsDir, "proj", "assets/images/a.png", []byte("not really a png"))

	d := New(projectsDir, glb.New("", 5*time.Second, 1))

	result, err := d.RenderThumbnail(context.Background(), "proj", "assets/images/a.png", 64)
	if err != nil {
		t.Fatalf("RenderThumbnail: %v", err)
	}
	if result.Cached {
		t.Fatal("first render should not be cached")
	}

	full := filepath.Join(projectsDir, "proj", result.ThumbnailRelPath)
	if _, err := os.Stat(full); err != nil {
		t.Fatalf("expected thumbnail at %s: %v", full, err)
	}

	result2, err := d.RenderThumbnail(context.Background(), "proj", "assets/images/a.png", 64)
	if err != nil {
		t.Fatalf("RenderThumbnail (second): %v", err)
	}
	if !result2.Cached {
		t.Fatal("second render should be cached")
	}
	if result2.ThumbnailRelPath != result.ThumbnailRelPath {
		t.Fatalf("got %q, want %q", result2.ThumbnailRelPath, result.ThumbnailRelPath)
	}
}

func TestRenderThumbnail_CompressedTextureUsesPlaceholder(t *testing.T) {
	projectsDir := t.TempDir()
	writeAsset(t, projectsDir, "proj", "assets/textures/ground.dds", make([]byte, 4096))

	d := New(projectsDir, glb.New("", 5*time.Second, 1))

	result, err := d.RenderThumbnail(context.Background(), "proj", "assets/textures/ground.dds", 128)
	if err != nil {
		t.Fatalf("RenderThumbnail: %v", err)
	}
	full := filepath.Join(projectsDir, "proj", result.ThumbnailRelPath)
	if _, err := os.Stat(full); err != nil {
		t.Fatalf("expected placeholder thumbnail at %s: %v", full, err)
	}
}

func TestRenderThumbnail_MissingAssetReturnsNotFound(t *testing.T) {
	projectsDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(projectsDir, "proj"), 0o755); err != nil {
		t.Fatal(err)
	}

	d := New(projectsDir, glb.New("", 5*time.Second, 1))
	_, err := d.RenderThumbnail(context.Background(), "proj", "assets/images/missing.png", 64)
	if !errors.Is(err, asseterr.NotFound) {
		t.Fatalf("got %v, want asseterr.NotFound", err)
	}
}

func TestRenderThumbnail_PathTraversalRejected(t *testing.T) {
	projectsDir := t.TempDir()
	writeAsset(t, projectsDir, "other", "secret.png", []byte("x"))
	if err := os.MkdirAll(filepath.Join(projectsDir, "proj"), 0o755); err != nil {
		t.Fatal(err)
	}

	d := New(projectsDir, glb.New("", 5*time.Second, 1))
	_, err := d.RenderThumbnail(context.Background(), "proj", "../other/secret.png", 64)
	if !errors.Is(err, asseterr.InvalidPath) {
		t.Fatalf("got %v, want asseterr.InvalidPath", err)
	}
}

func TestRenderThumbnail_BlacklistedExtensionRejected(t *testing.T) {
	projectsDir := t.TempDir()
	writeAsset(t, projectsDir, "proj", "assets/scripts/run.sh", []byte("#!/bin/sh\n"))

	d := New(projectsDir, glb.New("", 5*time.Second, 1))
	_, err := d.RenderThumbnail(context.Background(), "proj", "assets/scripts/run.sh", 64)
	if !errors.Is(err, asseterr.FormatRejected) {
		t.Fatalf("got %v, want asseterr.FormatRejected", err)
	}
}

func TestRenderThumbnail_ModelWithoutGlbRendererFallsBackToPlaceholder(t *testing.T) {
	projectsDir := t.TempDir()
	writeAsset(t, projectsDir, "proj", "assets/models/cube.glb", make([]byte, 2048))

	d := New(projectsDir, nil)

	result, err := d.RenderThumbnail(context.Background(), "proj", "assets/models/cube.glb", 128)
	if err != nil {
		t.Fatalf("RenderThumbnail: %v", err)
	}
	full := filepath.Join(projectsDir, "proj", result.ThumbnailRelPath)
	if _, err := os.Stat(full); err != nil {
		t.Fatalf("expected placeholder thumbnail at %s: %v", full, err)
	}
}
