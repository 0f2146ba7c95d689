package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/renzora/assetcore/internal/render/glb"
)

func TestRenderBatch_RendersEveryModelAtEachSize(t *testing.T) {
	projectsDir := t.TempDir()
	writeAsset(t, projectsDir, "proj", "assets/models/cube.glb", make([]byte, 1024))
	writeAsset(t, projectsDir, "proj", "assets/models/sub/lamp.glb", make([]byte, 1024))

	d := New(projectsDir, glb.New("", 5*time.Second, 1))
	result := d.RenderBatch(context.Background(), "proj", ".glb")

	if result.Rendered != len(DefaultBatchSizes)*2 {
		t.Fatalf("got %d rendered, want %d", result.Rendered, len(DefaultBatchSizes)*2)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failed)
	}
}

func TestRenderBatch_SkipsMissingModelsDir(t *testing.T) {
	projectsDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(projectsDir, "proj"), 0o755); err != nil {
		t.Fatal(err)
	}

	d := New(projectsDir, glb.New("", 5*time.Second, 1))
	result := d.RenderBatch(context.Background(), "proj", ".glb")

	if result.Rendered != 0 || result.Cached != 0 {
		t.Fatalf("expected no work done, got %+v", result)
	}
}
