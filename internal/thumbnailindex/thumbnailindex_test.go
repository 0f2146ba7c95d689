package thumbnailindex

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsEmptyIndex(t *testing.T) {
	dir := t.TempDir()
	idx := Load(filepath.Join(dir, "thumbnails.json"))
	if idx.Len() != 0 {
		t.Fatalf("expected empty index, got %d entries", idx.Len())
	}
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thumbnails.json")

	idx := Load(path)
	idx.Put(Key("proj", "tex/a.png"), CachedThumbnail{
		SourceFile:         "tex/a.png",
		ThumbnailFile:      "a_png_512.png",
		GeneratedAt:        1000,
		SourceSize:         42,
		SourceLastModified: 900,
	})
	if err := idx.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := Load(path)
	if reloaded.Len() != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", reloaded.Len())
	}
	got, ok := reloaded.Get(Key("proj", "tex/a.png"))
	if !ok || got.ThumbnailFile != "a_png_512.png" {
		t.Fatalf("unexpected reloaded entry: %+v", got)
	}
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thumbnails.json")
	idx := Load(path)
	idx.Put("k", CachedThumbnail{})
	if err := idx.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("expected temp file to be renamed away, not left on disk")
	}
}

func TestIsValid_StaleAfterAssetModified(t *testing.T) {
	dir := t.TempDir()
	assetPath := filepath.Join(dir, "a.png")
	if err := os.WriteFile(assetPath, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	thumbsDir := filepath.Join(dir, "thumbs")
	if err := os.MkdirAll(thumbsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(thumbsDir, "a_png_512.png"), []byte("thumb"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, _ := os.Stat(assetPath)
	idx := Load(filepath.Join(dir, "thumbnails.json"))
	key := Key("proj", "a.png")
	idx.Put(key, CachedThumbnail{
		ThumbnailFile:      "a_png_512.png",
		SourceSize:         uint64(info.Size()),
		SourceLastModified: uint64(info.ModTime().Unix()),
	})

	if !idx.IsValid(key, assetPath, thumbsDir) {
		t.Fatal("expected valid before modification")
	}

	// Force a different mtime so the staleness check has something to detect.
	future := time.Now().Add(time.Hour)
	if err := os.WriteFile(assetPath, []byte("v2, longer content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(assetPath, future, future); err != nil {
		t.Fatal(err)
	}

	if idx.IsValid(key, assetPath, thumbsDir) {
		t.Fatal("expected stale after asset content/size changed")
	}
}

func TestIsValid_MissingEntryIsInvalid(t *testing.T) {
	dir := t.TempDir()
	idx := Load(filepath.Join(dir, "thumbnails.json"))
	if idx.IsValid("nope", filepath.Join(dir, "a.png"), dir) {
		t.Fatal("missing entry must never be valid")
	}
}

func TestClearProject_RemovesOnlyMatchingKeys(t *testing.T) {
	dir := t.TempDir()
	idx := Load(filepath.Join(dir, "thumbnails.json"))
	idx.Put(Key("alpha", "a.png"), CachedThumbnail{})
	idx.Put(Key("beta", "b.png"), CachedThumbnail{})

	removed := idx.ClearProject("alpha")
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := idx.Get(Key("beta", "b.png")); !ok {
		t.Fatal("beta entry should survive clearing alpha")
	}
}

func TestCleanupOldEntries_RemovesOnlyExpired(t *testing.T) {
	dir := t.TempDir()
	idx := Load(filepath.Join(dir, "thumbnails.json"))
	idx.Put("old", CachedThumbnail{GeneratedAt: uint64(time.Now().Add(-48 * time.Hour).Unix())})
	idx.Put("new", CachedThumbnail{GeneratedAt: uint64(time.Now().Unix())})

	removed := idx.CleanupOldEntries(24 * time.Hour)
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := idx.Get("new"); !ok {
		t.Fatal("fresh entry should survive cleanup")
	}
}
