package render

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/classify"
)

// DefaultBatchSizes are the thumbnail sizes RenderBatch produces for every
// matching asset, per spec.md §4.7's batch mode.
var DefaultBatchSizes = []int{128, 256, 512}

const (
	batchSizeDelay = 100 * time.Millisecond
	batchFileDelay = 500 * time.Millisecond
)

// BatchResult summarizes one RenderBatch run.
type BatchResult struct {
	Rendered int
	Cached   int
	Skipped  int
	Failed   []string
}

// RenderBatch walks <project>/assets/models/ for files matching extension
// (".glb" by default) and renders each at DefaultBatchSizes, pausing
// between sizes and between files to bound transient memory pressure.
// Assets already recorded in the project's failure cache are skipped
// without retrying.
func (d *Dispatcher) RenderBatch(ctx context.Context, project, extension string) BatchResult {
	if extension == "" {
		extension = ".glb"
	}

	modelsDir := filepath.Join(d.projectRoot(project), "assets", "models")
	fc := loadFailCache(failCachePath(d.projectsDir, project))

	var result BatchResult
	_ = filepath.Walk(modelsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if filepath.Ext(path) != extension {
			return nil
		}

		relPath, relErr := filepath.Rel(d.projectRoot(project), path)
		if relErr != nil {
			return nil
		}

		if fc.hasFailed(relPath) {
			result.Skipped++
			return nil
		}

		assetFailed := false
		for i, size := range DefaultBatchSizes {
			res, renderErr := d.RenderThumbnail(ctx, project, relPath, size)
			if renderErr != nil {
				log.Warn().Err(renderErr).Str("project", project).Str("asset", relPath).Msg("render: batch render failed, recording in failure cache")
				fc.recordFailure(relPath)
				result.Failed = append(result.Failed, relPath)
				assetFailed = true
				break
			}
			if res.Cached {
				result.Cached++
			} else {
				result.Rendered++
			}

			if i < len(DefaultBatchSizes)-1 {
				time.Sleep(batchSizeDelay)
			}
		}
		if !assetFailed {
			time.Sleep(batchFileDelay)
		}
		return nil
	})

	return result
}

// modelExtensions exposes the GLB-family extensions RenderBatch is
// typically run against, for callers that want to iterate every recognized
// model format rather than a single extension.
func modelExtensions() []string {
	exts := make([]string, 0, 9)
	for _, e := range []string{"glb", "gltf", "obj", "fbx", "dae", "3ds", "blend", "stl", "ply"} {
		if classify.GeneratorFor("x."+e) == classify.GeneratorGlb {
			exts = append(exts, "."+e)
		}
	}
	return exts
}
