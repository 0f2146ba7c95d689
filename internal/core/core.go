// Package core wires the cache, scanner, validator, thumbnail index, and
// render dispatcher together into the operations a caller (CLI or
// embedding application) actually invokes: validating a project's cache,
// rendering a thumbnail, building the cached asset tree, and clearing
// cached state.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/cache"
	"github.com/renzora/assetcore/internal/classify"
	"github.com/renzora/assetcore/internal/render"
	"github.com/renzora/assetcore/internal/render/glb"
	"github.com/renzora/assetcore/internal/scanner"
	"github.com/renzora/assetcore/internal/thumbnailindex"
	"github.com/renzora/assetcore/internal/validator"
)

// Core bundles every component needed to service a project: the shared
// MemoryCache, the CacheValidator built on top of it, and the thumbnail
// RendererDispatch.
type Core struct {
	ProjectsDir string
	Cache       *cache.Cache
	Validator   *validator.Validator
	Render      *render.Dispatcher
}

// Options configures New.
type Options struct {
	ProjectsDir         string
	CacheMaxEntries     int
	CacheEnabled        bool
	GlbRendererBinary   string
	GlbTimeout          time.Duration
	GlbRetryMaxAttempts int
}

// New builds a Core from opts.
func New(opts Options) (*Core, error) {
	c, err := cache.New(opts.CacheMaxEntries, opts.CacheEnabled)
	if err != nil {
		return nil, fmt.Errorf("core: building cache: %w", err)
	}

	glbRenderer := glb.New(opts.GlbRendererBinary, opts.GlbTimeout, opts.GlbRetryMaxAttempts)

	return &Core{
		ProjectsDir: opts.ProjectsDir,
		Cache:       c,
		Validator:   validator.New(c, opts.ProjectsDir),
		Render:      render.New(opts.ProjectsDir, glbRenderer),
	}, nil
}

func (co *Core) projectRoot(project string) string {
	return filepath.Join(co.ProjectsDir, project)
}

// ValidateProject scans project and reports whether its cache is valid,
// needs an incremental update, or needs a full rebuild (CacheValidator,
// spec.md §4.5).
func (co *Core) ValidateProject(project string) (validator.CacheValidationResult, error) {
	return co.Validator.Validate(project)
}

// CommitProject re-scans project and writes a fresh manifest + file
// metadata bundle, the step a caller takes after acting on a
// ValidateProject plan (spec.md §4.5 update_project_manifest).
func (co *Core) CommitProject(project string) error {
	files, err := scanner.Scan(co.projectRoot(project))
	if err != nil {
		return fmt.Errorf("core: scanning project %s: %w", project, err)
	}
	return co.Validator.UpdateProjectManifest(project, files)
}

// RenderThumbnail resolves project's asset to a cached or freshly rendered
// thumbnail PNG (RendererDispatch, spec.md §4.6).
func (co *Core) RenderThumbnail(ctx context.Context, project, assetRelPath string, size int) (render.Result, error) {
	return co.Render.RenderThumbnail(ctx, project, assetRelPath, size)
}

// RenderBatch renders every model under project's assets/models directory
// matching extension (".glb" if empty) at the standard size set (spec.md
// §4.7 batch mode).
func (co *Core) RenderBatch(ctx context.Context, project, extension string) render.BatchResult {
	return co.Render.RenderBatch(ctx, project, extension)
}

// ClearProjectCache clears project's in-memory cache entries (manifest,
// files, processed assets, asset tree) and its on-disk thumbnail index,
// matching memory_cache.rs's clear_project_cache extended to the
// thumbnail store this module adds.
func (co *Core) ClearProjectCache(project string) int {
	cleared := co.Cache.ClearProjectCache(project)

	idxPath := thumbnailindex.CachePath(co.ProjectsDir, project)
	idx := thumbnailindex.Load(idxPath)
	removed := idx.ClearProject(project)
	if removed > 0 {
		if err := idx.Save(); err != nil {
			log.Warn().Err(err).Str("project", project).Msg("core: failed to persist cleared thumbnail index")
		}
	}

	log.Info().Str("project", project).Int("memory_keys", cleared).Int("thumbnail_entries", removed).Msg("core: cleared project cache")
	return cleared + removed
}

// CacheScriptList stores the discovered renscript listing (5-minute TTL).
func (co *Core) CacheScriptList(scripts []cache.ScriptSearchResult) bool {
	return co.Cache.CacheScriptList(scripts)
}

// CachedScriptList retrieves the cached renscript listing, if unexpired.
func (co *Core) CachedScriptList() ([]cache.ScriptSearchResult, bool) {
	return co.Cache.GetCachedScriptList()
}

// CacheCompiledScript stores compiledJS for scriptName (10-minute TTL).
func (co *Core) CacheCompiledScript(scriptName, compiledJS string) {
	co.Cache.CacheCompiledScript(scriptName, compiledJS)
}

// CachedCompiledScript retrieves a previously cached compiled script.
func (co *Core) CachedCompiledScript(scriptName string) (string, bool) {
	return co.Cache.GetCachedCompiledScript(scriptName)
}

// ClearAllCache clears every in-memory cache entry across every project
// (memory_cache.rs's clear_all_cache). It does not touch any project's
// on-disk thumbnail index — that is scoped per-project via
// ClearProjectCache.
func (co *Core) ClearAllCache() int {
	return co.Cache.ClearAll()
}

// BuildAssetTree walks project and produces a cached, hierarchical view of
// its assets (SPEC_FULL.md supplemental feature C.1), populating each
// file's thumbnail_url hint from the project's thumbnail index without
// triggering any rendering.
func (co *Core) BuildAssetTree(project string) (cache.ProjectAssetTree, error) {
	root := co.projectRoot(project)
	files, err := scanner.Scan(root)
	if err != nil {
		return cache.ProjectAssetTree{}, fmt.Errorf("core: scanning project %s: %w", project, err)
	}

	idx := thumbnailindex.Load(thumbnailindex.CachePath(co.ProjectsDir, project))

	dirs := map[string]*cache.CachedAssetNode{"": {Name: project, Path: "", IsDirectory: true}}

	totalFiles := 0
	for _, abs := range files {
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		dirRel := filepath.ToSlash(filepath.Dir(rel))
		if dirRel == "." {
			dirRel = ""
		}
		parent := getDirRecursive(dirs, dirRel)

		info, statErr := os.Stat(abs)
		if statErr != nil {
			continue
		}

		ext := filepath.Ext(rel)
		fileType := classify.FileType(rel)
		size := uint64(info.Size())
		mtime := uint64(info.ModTime().Unix())

		node := &cache.CachedAssetNode{
			Name:         filepath.Base(rel),
			Path:         rel,
			IsDirectory:  false,
			FileSize:     &size,
			LastModified: &mtime,
			Extension:    &ext,
			FileType:     &fileType,
		}
		if entry, ok := idx.Get(thumbnailindex.Key(project, rel)); ok {
			url := filepath.ToSlash(filepath.Join(".cache", "thumbnails", entry.ThumbnailFile))
			node.ThumbnailURL = &url
		}
		parent.Children = append(parent.Children, node)
		totalFiles++
	}
	totalDirs := len(dirs) - 1

	tree := cache.ProjectAssetTree{
		ProjectName:      project,
		RootPath:         root,
		Assets:           dirs[""].Children,
		GeneratedAt:      uint64(time.Now().Unix()),
		TotalFiles:       totalFiles,
		TotalDirectories: totalDirs,
	}
	co.Cache.CacheProjectAssetTree(tree)
	return tree, nil
}

// getDirRecursive returns the node for rel, creating any missing ancestor
// directories along the way.
func getDirRecursive(dirs map[string]*cache.CachedAssetNode, rel string) *cache.CachedAssetNode {
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}
	if n, ok := dirs[rel]; ok {
		return n
	}
	parent := getDirRecursive(dirs, filepath.Dir(rel))
	node := &cache.CachedAssetNode{Name: filepath.Base(rel), Path: rel, IsDirectory: true}
	parent.Children = append(parent.Children, node)
	dirs[rel] = node
	return node
}
