package cache

import (
	"context"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(100, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestGetString_MissReturnsFalse(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.GetString("nope"); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestSetString_RoundTrips(t *testing.T) {
	c := newTestCache(t)
	c.SetStringTTL("k", "v", 60)
	v, ok := c.GetString("k")
	if !ok || v != "v" {
		t.Fatalf("got (%q, %v), want (\"v\", true)", v, ok)
	}
}

func TestTTLZero_NeverExpires(t *testing.T) {
	e := newEntry("v", 0)
	time.Sleep(5 * time.Millisecond)
	if e.expired() {
		t.Fatal("ttl_seconds=0 entry must never expire")
	}
}

func TestTTL_ExpiresAfterWindow(t *testing.T) {
	e := entry{value: "v", createdAt: time.Now().Add(-2 * time.Second), ttlSeconds: 1}
	if !e.expired() {
		t.Fatal("entry older than its TTL should be expired")
	}
}

func TestGetString_EvictsExpiredOnRead(t *testing.T) {
	c := newTestCache(t)
	c.store.Add("k", entry{value: "stale", createdAt: time.Now().Add(-10 * time.Second), ttlSeconds: 1})
	if _, ok := c.GetString("k"); ok {
		t.Fatal("expired entry must be reported as a miss")
	}
	if c.store.Len() != 0 {
		t.Fatal("expired entry must be evicted on read, not just hidden")
	}
}

func TestDisabledCache_AlwaysMisses(t *testing.T) {
	c, err := New(10, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.SetString("k", "v")
	if _, ok := c.GetString("k"); ok {
		t.Fatal("disabled cache must not serve reads")
	}
}

func TestClearProjectCache_RemovesOnlyThatProjectsKeys(t *testing.T) {
	c := newTestCache(t)
	c.CacheProjectManifest(ProjectManifest{ProjectName: "alpha"})
	c.CacheProjectManifest(ProjectManifest{ProjectName: "beta"})

	cleared := c.ClearProjectCache("alpha")
	if cleared != 1 {
		t.Fatalf("expected 1 key cleared, got %d", cleared)
	}
	if _, ok := c.GetProjectManifest("alpha"); ok {
		t.Fatal("alpha manifest should be gone")
	}
	if _, ok := c.GetProjectManifest("beta"); !ok {
		t.Fatal("beta manifest should survive clearing alpha's cache")
	}
}

func TestCacheFileMetadata_RoundTrips(t *testing.T) {
	c := newTestCache(t)
	files := []FileMetadata{
		{Path: "a.png", FileSize: 10, FileType: "image"},
		{Path: "b.glb", FileSize: 20, FileType: "model"},
	}
	if !c.CacheFileMetadata("proj", files) {
		t.Fatal("CacheFileMetadata failed")
	}
	got := c.GetAllFileMetadata("proj")
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
}

func TestCacheProcessedAsset_MergesRatherThanOverwrites(t *testing.T) {
	c := newTestCache(t)
	c.CacheProcessedAsset("proj", ProcessedAsset{Path: "a.png", ProcessingStatus: "done"})
	c.CacheProcessedAsset("proj", ProcessedAsset{Path: "b.glb", ProcessingStatus: "done"})

	got := c.GetAllProcessedAssets("proj")
	if len(got) != 2 {
		t.Fatalf("got %d assets, want 2 (merge, not overwrite)", len(got))
	}
}

func TestCleanupExpired_RemovesOnlyStaleEntries(t *testing.T) {
	c := newTestCache(t)
	c.store.Add("fresh", newEntry("v", 60))
	c.store.Add("stale", entry{value: "v", createdAt: time.Now().Add(-10 * time.Second), ttlSeconds: 1})

	removed := c.CleanupExpired()
	if removed != 1 {
		t.Fatalf("removed %d entries, want 1", removed)
	}
	if _, ok := c.GetString("fresh"); !ok {
		t.Fatal("fresh entry must survive a sweep")
	}
}

func TestStartSweeper_StopsOnContextCancel(t *testing.T) {
	c := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := c.StartSweeper(ctx, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
