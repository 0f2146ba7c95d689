package render

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// failCache remembers assets that failed thumbnail generation so a batch
// re-render doesn't retry them on every run. It does not change
// RenderThumbnail's single-call contract — that still tries the asset and
// falls back to a placeholder — it only short-circuits RenderBatch.
type failCache struct {
	mu    sync.RWMutex
	path  string
	paths map[string]bool
}

func failCachePath(projectsDir, project string) string {
	return filepath.Join(projectsDir, project, ".cache", "thumbnails_failed.txt")
}

func loadFailCache(path string) *failCache {
	fc := &failCache{path: path, paths: make(map[string]bool)}

	f, err := os.Open(path)
	if err != nil {
		return fc // file doesn't exist yet, that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			fc.paths[line] = true
		}
	}
	return fc
}

func (fc *failCache) hasFailed(assetRelPath string) bool {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.paths[assetRelPath]
}

func (fc *failCache) recordFailure(assetRelPath string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.paths[assetRelPath] {
		return
	}
	fc.paths[assetRelPath] = true

	if err := os.MkdirAll(filepath.Dir(fc.path), 0o755); err != nil {
		log.Warn().Err(err).Str("path", fc.path).Msg("render: failed to create failure-cache directory")
		return
	}
	f, err := os.OpenFile(fc.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warn().Err(err).Str("path", fc.path).Msg("render: failed to persist failure cache")
		return
	}
	defer f.Close()
	if _, err := f.WriteString(assetRelPath + "\n"); err != nil {
		log.Warn().Err(err).Str("path", fc.path).Msg("render: failed to append to failure cache")
	}
}

func (fc *failCache) clear() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.paths = make(map[string]bool)
	os.Remove(fc.path)
}
