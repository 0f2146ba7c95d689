package fingerprint

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestProjectFingerprint_StableRegardlessOfOrder(t *testing.T) {
	a := []FileStat{
		{RelPath: "b.glb", ModifiedUnix: 200, Size: 20},
		{RelPath: "a.png", ModifiedUnix: 100, Size: 10},
	}
	b := []FileStat{
		{RelPath: "a.png", ModifiedUnix: 100, Size: 10},
		{RelPath: "b.glb", ModifiedUnix: 200, Size: 20},
	}

	if ProjectFingerprint(a) != ProjectFingerprint(b) {
		t.Fatal("expected fingerprint to be independent of input order")
	}
}

func TestProjectFingerprint_ChangesWithMetadata(t *testing.T) {
	base := []FileStat{{RelPath: "a.png", ModifiedUnix: 100, Size: 10}}
	modified := []FileStat{{RelPath: "a.png", ModifiedUnix: 101, Size: 10}}

	if ProjectFingerprint(base) == ProjectFingerprint(modified) {
		t.Fatal("expected fingerprint to change when mtime changes")
	}
}

func TestStatFile_MissingFileContributesZeroMetadata(t *testing.T) {
	stat := StatFile(filepath.Join(t.TempDir(), "missing.bin"), "missing.bin")
	if stat.RelPath != "missing.bin" || stat.Size != 0 || stat.ModifiedUnix != 0 {
		t.Fatalf("expected zero metadata for missing file, got %+v", stat)
	}
}

func TestStatFiles_CoversEveryInput(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 5)
	for i := range paths {
		p := filepath.Join(dir, "file")
		p = p + string(rune('a'+i))
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths[i] = p
	}

	stats := StatFiles(paths, func(abs string) string {
		return filepath.Base(abs)
	})
	if len(stats) != len(paths) {
		t.Fatalf("expected %d stats, got %d", len(paths), len(stats))
	}
	for i, s := range stats {
		if s.Size != 1 {
			t.Fatalf("stat %d: expected size 1, got %d", i, s.Size)
		}
	}
}

func TestHashContent_DeterministicAndSensitiveToBytes(t *testing.T) {
	h1 := HashContent([]byte("hello"))
	h2 := HashContent([]byte("hello"))
	h3 := HashContent([]byte("world"))

	if h1 != h2 {
		t.Fatal("expected identical content to hash identically")
	}
	if h1 == h3 {
		t.Fatal("expected different content to hash differently")
	}
}

func TestContentHash_NonImageFallsBackToSHA256(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.glb")
	data := []byte("fake glb payload")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ContentHash(path)
	if err != nil {
		t.Fatalf("ContentHash: %v", err)
	}
	if got != HashContent(data) {
		t.Fatalf("expected SHA-256 fallback hash, got %q", got)
	}
}

func TestContentHash_MissingFileErrors(t *testing.T) {
	_, err := ContentHash(filepath.Join(t.TempDir(), "missing.glb"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestStatFile_ReflectsModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	stat := StatFile(path, "a.png")
	if stat.ModifiedUnix != uint64(mtime.Unix()) {
		t.Fatalf("expected mtime %d, got %d", mtime.Unix(), stat.ModifiedUnix)
	}
}
