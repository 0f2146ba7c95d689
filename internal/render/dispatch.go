// Package render implements RendererDispatch (spec.md §4.6): the
// entry point that resolves an asset to a cached or freshly generated
// thumbnail PNG, selecting a generator backend by extension and always
// falling back to a synthetic placeholder on failure.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/renzora/assetcore/internal/asseterr"
	"github.com/renzora/assetcore/internal/classify"
	"github.com/renzora/assetcore/internal/render/glb"
	"github.com/renzora/assetcore/internal/render/image"
	"github.com/renzora/assetcore/internal/render/placeholder"
	"github.com/renzora/assetcore/internal/thumbnailindex"
)

// blacklistedExtensions are rejected outright before any I/O (spec.md §7
// FormatRejected): executables and scripts have no business being
// thumbnailed, and shelling out to a renderer on one would be a foothold
// for arbitrary execution if an asset path were ever attacker-controlled.
var blacklistedExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".sh": true, ".bash": true, ".bat": true, ".cmd": true, ".ps1": true,
	".app": true, ".msi": true, ".com": true,
}

// validateAssetPath rejects a request path before any I/O happens, per
// spec.md §7: InvalidPath for traversal outside the project root,
// FormatRejected for blacklisted extensions.
func validateAssetPath(projectRoot, assetRelPath string) error {
	if assetRelPath == "" || strings.Contains(assetRelPath, "\x00") {
		return fmt.Errorf("render: empty or malformed asset path: %w", asseterr.InvalidPath)
	}

	cleanRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("render: resolving project root: %w", asseterr.InvalidPath)
	}
	assetAbs, err := filepath.Abs(filepath.Join(cleanRoot, assetRelPath))
	if err != nil {
		return fmt.Errorf("render: resolving asset path: %w", asseterr.InvalidPath)
	}
	rel, err := filepath.Rel(cleanRoot, assetAbs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("render: %s escapes project root: %w", assetRelPath, asseterr.InvalidPath)
	}

	if ext := strings.ToLower(filepath.Ext(assetRelPath)); blacklistedExtensions[ext] {
		return fmt.Errorf("render: %s: %w", assetRelPath, asseterr.FormatRejected)
	}
	return nil
}

// thumbnailMaxAge is how long after its generation a cached thumbnail entry
// stays in the index before CleanupOldEntries drops it; cache hits do not
// extend it.
const thumbnailMaxAge = 30 * 24 * time.Hour

// Result is returned by RenderThumbnail.
type Result struct {
	ThumbnailRelPath string
	Cached           bool
}

// Dispatcher resolves assets to thumbnails, coalescing concurrent requests
// for the same (project, asset, size) and dispatching to the appropriate
// generator backend.
type Dispatcher struct {
	projectsDir string
	glbRenderer *glb.Renderer
	group       singleflight.Group
}

// New returns a Dispatcher rooted at projectsDir, using glbRenderer for
// model assets (see internal/render/glb).
func New(projectsDir string, glbRenderer *glb.Renderer) *Dispatcher {
	return &Dispatcher{projectsDir: projectsDir, glbRenderer: glbRenderer}
}

func (d *Dispatcher) projectRoot(project string) string {
	return filepath.Join(d.projectsDir, project)
}

// RenderThumbnail implements the render_thumbnail contract of spec.md §4.6.
func (d *Dispatcher) RenderThumbnail(ctx context.Context, project, assetRelPath string, size int) (Result, error) {
	cacheKey := fmt.Sprintf("%s::%s", project, assetRelPath)
	sfKey := fmt.Sprintf("%s@%d", cacheKey, size)

	v, err, _ := d.group.Do(sfKey, func() (any, error) {
		return d.renderOnce(ctx, project, assetRelPath, cacheKey, size)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (d *Dispatcher) renderOnce(ctx context.Context, project, assetRelPath, cacheKey string, size int) (Result, error) {
	projectRoot := d.projectRoot(project)

	if err := validateAssetPath(projectRoot, assetRelPath); err != nil {
		return Result{}, err
	}

	idxPath := thumbnailindex.CachePath(d.projectsDir, project)
	thumbsDir := thumbnailindex.ThumbnailsDir(d.projectsDir, project)

	idx := thumbnailindex.Load(idxPath)
	idx.CleanupOldEntries(thumbnailMaxAge)

	assetAbs := filepath.Join(projectRoot, assetRelPath)

	if idx.IsValid(cacheKey, assetAbs, thumbsDir) {
		entry, _ := idx.Get(cacheKey)
		return Result{ThumbnailRelPath: thumbnailRelPath(entry.ThumbnailFile), Cached: true}, nil
	}

	if _, err := os.Stat(assetAbs); err != nil {
		return Result{}, fmt.Errorf("render: %s: %w", assetRelPath, asseterr.NotFound)
	}

	stem := strings.TrimSuffix(filepath.Base(assetRelPath), filepath.Ext(assetRelPath))
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(assetRelPath), "."))
	thumbnailFile := fmt.Sprintf("%s_%s_%d.png", stem, ext, size)
	dstAbs := filepath.Join(thumbsDir, thumbnailFile)

	// Render into a uniquely-named temp file first, then rename over the
	// final path, so a reader polling the thumbnails directory never sees a
	// partially-written PNG.
	tmpAbs := dstAbs + "." + uuid.NewString() + ".tmp"
	if err := d.generate(ctx, assetAbs, tmpAbs, assetRelPath, size); err != nil {
		os.Remove(tmpAbs)
		return Result{}, fmt.Errorf("render: %s: %w", assetRelPath, err)
	}
	if err := os.Rename(tmpAbs, dstAbs); err != nil {
		os.Remove(tmpAbs)
		return Result{}, fmt.Errorf("render: committing %s: %w", thumbnailFile, err)
	}

	info, err := os.Stat(assetAbs)
	if err != nil {
		return Result{}, fmt.Errorf("render: stat asset after generation: %w", err)
	}

	idx.Put(cacheKey, thumbnailindex.CachedThumbnail{
		SourceFile:         assetRelPath,
		ThumbnailFile:      thumbnailFile,
		GeneratedAt:        uint64(time.Now().Unix()),
		SourceSize:         uint64(info.Size()),
		SourceLastModified: uint64(info.ModTime().Unix()),
	})
	if err := idx.Save(); err != nil {
		return Result{}, fmt.Errorf("render: saving thumbnail index: %w", err)
	}

	return Result{ThumbnailRelPath: thumbnailRelPath(thumbnailFile), Cached: false}, nil
}

// generate dispatches to the generator selected by the asset's extension,
// falling back to the placeholder renderer on any failure per spec.md
// §4.6's mandatory-fallback contract.
func (d *Dispatcher) generate(ctx context.Context, assetAbs, dstAbs, assetRelPath string, size int) error {
	switch classify.GeneratorFor(assetRelPath) {
	case classify.GeneratorGlb:
		if d.glbRenderer == nil {
			return placeholder.Render(assetAbs, dstAbs, size)
		}
		return d.glbRenderer.Render(ctx, assetAbs, dstAbs, size)

	case classify.GeneratorImage:
		if err := image.Render(assetAbs, dstAbs, size); err != nil {
			log.Warn().Err(err).Str("path", assetAbs).Msg("render: image generator failed, falling back to placeholder")
			return placeholder.Render(assetAbs, dstAbs, size)
		}
		return nil

	default:
		return placeholder.Render(assetAbs, dstAbs, size)
	}
}

func thumbnailRelPath(thumbnailFile string) string {
	return filepath.Join(".cache", "thumbnails", thumbnailFile)
}
