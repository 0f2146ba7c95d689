// Package thumbnailindex implements the ThumbnailIndex component (spec.md
// §4.3): a disk-persisted JSON ledger mapping "<project>::<asset_rel_path>"
// to metadata about the thumbnail PNG generated for that asset, used to
// decide whether a cached thumbnail is still valid without regenerating
// it.
//
// The index is a single JSON document per project. Every Load reads it
// from disk into a fresh Index guarded by a mutex; the package keeps no
// copy shared between Load calls. Writes are flushed to disk with a
// temp-file-then-rename so a crash mid-write never leaves a truncated or
// corrupt index on disk.
package thumbnailindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renzora/assetcore/internal/asseterr"
)

// CachedThumbnail is one entry in the index: the source asset it was
// generated from, the path to the generated PNG (relative to the
// project's .cache/thumbnails directory), and the metadata snapshot used
// to detect staleness.
type CachedThumbnail struct {
	SourceFile         string `json:"source_file"`
	SourceHash         string `json:"source_hash"`
	ThumbnailFile      string `json:"thumbnail_file"`
	GeneratedAt        uint64 `json:"generated_at"`
	SourceSize         uint64 `json:"source_size"`
	SourceLastModified uint64 `json:"source_last_modified"`
}

// Index is the in-memory, disk-backed thumbnail ledger for one project.
type Index struct {
	mu         sync.RWMutex
	path       string
	thumbnails map[string]CachedThumbnail
}

// Key builds the "<project>::<asset_rel_path>" index key used throughout
// the thumbnail pipeline.
func Key(project, assetRelPath string) string {
	return project + "::" + assetRelPath
}

// CachePath returns the on-disk location of a project's thumbnail index,
// rooted at projectsDir/<project>/.cache/thumbnails.json.
func CachePath(projectsDir, project string) string {
	return filepath.Join(projectsDir, project, ".cache", "thumbnails.json")
}

// ThumbnailsDir returns the directory generated thumbnail PNGs are
// written to for a project.
func ThumbnailsDir(projectsDir, project string) string {
	return filepath.Join(projectsDir, project, ".cache", "thumbnails")
}

// Load reads the index from path. A missing file or malformed JSON yields
// an empty, usable index rather than an error — the index is a cache, and
// losing it only costs a rebuild.
func Load(path string) *Index {
	idx := &Index{path: path, thumbnails: make(map[string]CachedThumbnail)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("thumbnailindex: failed to read index, starting empty")
		}
		return idx
	}

	var onDisk struct {
		Thumbnails map[string]CachedThumbnail `json:"thumbnails"`
	}
	if err := json.Unmarshal(data, &onDisk); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("thumbnailindex: failed to parse index, starting empty")
		return idx
	}
	if onDisk.Thumbnails != nil {
		idx.thumbnails = onDisk.Thumbnails
	}
	return idx
}

// Get retrieves the cached entry for key, if any.
func (idx *Index) Get(key string) (CachedThumbnail, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	t, ok := idx.thumbnails[key]
	return t, ok
}

// Put records or replaces the entry for key. Callers must call Save to
// persist the change.
func (idx *Index) Put(key string, thumbnail CachedThumbnail) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.thumbnails[key] = thumbnail
}

// Delete removes the entry for key, if present.
func (idx *Index) Delete(key string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.thumbnails, key)
}

// IsValid reports whether the cached thumbnail for key is still valid for
// the asset currently on disk at assetAbsPath: the entry must exist and
// its recorded (last_modified, file_size) must match the asset's current
// stat, and the thumbnail PNG itself must still exist.
func (idx *Index) IsValid(key, assetAbsPath, thumbnailsDir string) bool {
	idx.mu.RLock()
	cached, ok := idx.thumbnails[key]
	idx.mu.RUnlock()
	if !ok {
		return false
	}

	info, err := os.Stat(assetAbsPath)
	if err != nil {
		return false
	}
	if uint64(info.ModTime().Unix()) != cached.SourceLastModified || uint64(info.Size()) != cached.SourceSize {
		return false
	}

	if _, err := os.Stat(filepath.Join(thumbnailsDir, filepath.Base(cached.ThumbnailFile))); err != nil {
		return false
	}
	return true
}

// CleanupOldEntries removes any entry generated more than maxAge ago.
// Stale thumbnail PNGs on disk are left for a separate sweep since this
// index alone doesn't know whether another key still references the same
// file.
func (idx *Index) CleanupOldEntries(maxAge time.Duration) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	cutoff := uint64(time.Now().Add(-maxAge).Unix())
	removed := 0
	for k, t := range idx.thumbnails {
		if t.GeneratedAt < cutoff {
			delete(idx.thumbnails, k)
			removed++
		}
	}
	return removed
}

// ClearProject removes every entry whose key belongs to project.
func (idx *Index) ClearProject(project string) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	prefix := project + "::"
	removed := 0
	for k := range idx.thumbnails {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(idx.thumbnails, k)
			removed++
		}
	}
	return removed
}

// Save writes the index to disk atomically: the JSON document is written
// to a temp file in the same directory, then renamed over the final path
// so a reader never observes a partial write.
func (idx *Index) Save() error {
	idx.mu.RLock()
	snapshot := struct {
		Thumbnails map[string]CachedThumbnail `json:"thumbnails"`
	}{Thumbnails: idx.thumbnails}
	idx.mu.RUnlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(idx.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("thumbnailindex: creating %s: %w: %w", dir, asseterr.IoError, err)
	}

	tmp := idx.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("thumbnailindex: writing %s: %w: %w", tmp, asseterr.IoError, err)
	}
	if err := os.Rename(tmp, idx.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("thumbnailindex: committing %s: %w: %w", idx.path, asseterr.IoError, err)
	}
	return nil
}

// Len returns the number of entries currently held in memory.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.thumbnails)
}
