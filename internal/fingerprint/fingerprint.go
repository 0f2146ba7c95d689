// Package fingerprint computes the deterministic content+metadata hashes
// used to detect whether a project's asset set has changed since the last
// scan (spec.md §4.1).
//
// The algorithm deliberately hashes (path, mtime, size) rather than file
// contents: it is cheap enough to run on every validate() call and catches
// the overwhelming majority of meaningful edits. A slower, optional
// per-file content hash is provided separately for callers that want to
// populate FileMetadata.Hash out-of-band (spec.md §9, "Change
// classification vs. content hashing").
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog/log"
)

// FileStat is the minimal metadata fed into a fingerprint: a
// project-relative, forward-slash path plus its modification time and
// byte length. Unreadable metadata should be reported as zero rather than
// causing the caller to abort (spec.md §4.1 Failure model).
type FileStat struct {
	RelPath      string
	ModifiedUnix uint64
	Size         uint64
}

// StatFile stats absPath and returns a FileStat keyed by relPath. Unlike
// most of this package's helpers it never returns an error: an unreadable
// file simply contributes zero bytes to the fingerprint, which is the
// documented failure behavior — the file will show up as "modified" on the
// next scan, which is the correct outcome.
func StatFile(absPath, relPath string) FileStat {
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	info, err := os.Stat(absPath)
	if err != nil {
		log.Warn().Err(err).Str("path", absPath).Msg("fingerprint: stat failed, contributing zero metadata")
		return FileStat{RelPath: relPath}
	}
	return FileStat{
		RelPath:      relPath,
		ModifiedUnix: uint64(info.ModTime().Unix()),
		Size:         uint64(info.Size()),
	}
}

// StatFiles stats every absolute path in absPaths concurrently (hashing
// metadata is cheap per-file but directory trees can be large enough that
// offloading to a worker pool pays off, per spec.md §5 "long-running
// hashes SHOULD be offloaded to a worker pool"). relOf converts an
// absolute path to the project-relative path stored in the fingerprint.
func StatFiles(absPaths []string, relOf func(string) string) []FileStat {
	stats := make([]FileStat, len(absPaths))
	var g errgroup.Group
	g.SetLimit(16)
	for i, p := range absPaths {
		i, p := i, p
		g.Go(func() error {
			stats[i] = StatFile(p, relOf(p))
			return nil
		})
	}
	_ = g.Wait() // StatFile never errors; Wait only blocks for completion.
	return stats
}

// ProjectFingerprint computes the SHA-256 hex digest over the sorted
// sequence of file stats, per spec.md §4.1. The result is stable across
// runs and independent of input order.
func ProjectFingerprint(stats []FileStat) string {
	sorted := make([]FileStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RelPath < sorted[j].RelPath
	})

	h := sha256.New()
	var buf [8]byte
	for _, s := range sorted {
		h.Write([]byte(s.RelPath))
		binary.BigEndian.PutUint64(buf[:], s.ModifiedUnix)
		h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], s.Size)
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashContent returns the SHA-256 hex digest of raw bytes. It backs the
// out-of-band FileMetadata.Hash population for non-image assets.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
