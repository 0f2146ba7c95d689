// Package scanner implements the ProjectScanner component (spec.md §4.4):
// a recursive walk of a project directory that returns every asset file
// eligible for change detection and thumbnailing, applying the ignore
// rules the rest of the pipeline depends on.
package scanner

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

var configFileNames = map[string]bool{
	"project.json":      true,
	"package.json":      true,
	"tsconfig.json":     true,
	"webpack.config.js": true,
}

// Scan walks projectRoot and returns the absolute paths of every file that
// should be considered for change detection and thumbnailing. Output
// order is unspecified; callers that need a stable order (e.g. for
// fingerprinting) must sort.
func Scan(projectRoot string) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, projectRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A single unreadable entry doesn't abort the whole scan; the
			// caller's fingerprint will simply not see it.
			return nil
		}
		if path == projectRoot {
			return nil
		}

		if d.IsDir() {
			if skipDir(d.Name()) {
				return fastwalk.SkipDir
			}
			return nil
		}

		if !Included(path, projectRoot) {
			return nil
		}

		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// skipDir reports whether a directory (by basename) must not be descended
// into. Dotfile-prefixed directories are skipped outright, with one
// exception: ".cache" itself is always descended into, since
// ".cache/thumbnails" must be reachable. File-level filtering in Included
// still excludes every other entry under ".cache".
func skipDir(name string) bool {
	if name == ".cache" {
		return false
	}
	return strings.HasPrefix(name, ".") && name != "."
}

// Included reports whether the file at absPath (known to be a regular
// file under projectRoot) belongs in the scan result, per the ignore
// rules in spec.md §4.4. It is exported so callers that already have a
// file list (e.g. from a file-watcher) can apply the same filter.
func Included(absPath, projectRoot string) bool {
	rel, err := filepath.Rel(projectRoot, absPath)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	isThumbnailCache := strings.Contains(rel, ".cache/thumbnails/")
	isOtherCache := strings.Contains(rel, ".cache") && !isThumbnailCache

	if isOtherCache || strings.Contains(rel, ".git") {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if part != "" && part != "." && strings.HasPrefix(part, ".") && !isThumbnailCache {
			return false
		}
	}

	base := filepath.Base(rel)
	if configFileNames[base] {
		return false
	}
	if strings.Contains(rel, "scenes/") && strings.HasSuffix(base, ".json") {
		return false
	}

	return true
}
