package cover

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSource = "/music/artist/album/cover.jpg"

func TestNewCache_CustomDir(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewCache(dir)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	want := filepath.Join(dir, "coverscroll", "covers")
	info, err := os.Stat(want)
	if err != nil {
		t.Fatalf("cache directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("cache path is not a directory")
	}
	if cache.dir != want {
		t.Errorf("cache.dir = %q, want %q", cache.dir, want)
	}
}

func TestCache_PutAndGet(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Put(testSource, 4, testImage(4)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got := cache.Get(testSource, 4)
	if got == nil {
		t.Fatal("Get() returned nil, expected image")
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 4 {
		t.Errorf("Get() bounds = %v, want 4x4", got.Bounds())
	}
	r, _, _, _ := got.At(1, 1).RGBA()
	if r>>8 != 200 {
		t.Errorf("pixel red = %d, want 200", r>>8)
	}
}

func TestCache_Get_NotFound(t *testing.T) {
	cache := newTestCache(t)

	if got := cache.Get("/nonexistent/cover.jpg", 8); got != nil {
		t.Errorf("Get() for nonexistent entry = %v, want nil", got)
	}
}

func TestCache_Get_DifferentSizes(t *testing.T) {
	cache := newTestCache(t)

	_ = cache.Put(testSource, 8, testImage(8))

	if cache.Get(testSource, 10) != nil {
		t.Error("Get() should return nil for a different size")
	}
	if cache.Get(testSource, 8) == nil {
		t.Error("Get() should return data for the original size")
	}
}

func TestCache_Get_CorruptEntry(t *testing.T) {
	cache := newTestCache(t)

	path := cache.path(testSource, 8)
	if err := os.WriteFile(path, []byte("not a png"), 0o600); err != nil {
		t.Fatal(err)
	}

	if cache.Get(testSource, 8) != nil {
		t.Error("corrupt entry should not decode")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestCache_NilIsNoop(t *testing.T) {
	var cache *Cache

	if err := cache.Put(testSource, 4, testImage(4)); err != nil {
		t.Errorf("nil Put() error: %v", err)
	}
	if cache.Get(testSource, 4) != nil {
		t.Error("nil Get() should return nil")
	}
}

func TestCache_EmptySourceIsNotCached(t *testing.T) {
	cache := newTestCache(t)

	_ = cache.Put("", 4, testImage(4))

	entries, _ := os.ReadDir(cache.dir)
	if len(entries) != 0 {
		t.Errorf("cache has %d entries, want 0", len(entries))
	}
}

func TestCache_Prune_MixedEntries(t *testing.T) {
	cache := newTestCache(t)

	_ = cache.Put("/recent.jpg", 4, testImage(4))
	_ = cache.Put("/old.jpg", 4, testImage(4))
	path := cache.path("/old.jpg", 4)
	oldTime := time.Now().Add(-10 * 24 * time.Hour)
	_ = os.Chtimes(path, oldTime, oldTime)

	if err := cache.Prune(7 * 24 * time.Hour); err != nil {
		t.Fatalf("Prune() error: %v", err)
	}

	if cache.Get("/recent.jpg", 4) == nil {
		t.Error("recent entry should remain")
	}
	if cache.Get("/old.jpg", 4) != nil {
		t.Error("old entry should be pruned")
	}
}

func TestCache_Get_UpdatesMtime(t *testing.T) {
	cache := newTestCache(t)

	_ = cache.Put(testSource, 4, testImage(4))
	path := cache.path(testSource, 4)
	oldTime := time.Now().Add(-5 * 24 * time.Hour)
	_ = os.Chtimes(path, oldTime, oldTime)

	_ = cache.Get(testSource, 4)

	info, _ := os.Stat(path)
	if time.Since(info.ModTime()) > time.Second {
		t.Error("Get() should update mtime to current time")
	}
}

func TestCacheKey(t *testing.T) {
	mod := time.Unix(1700000000, 0)

	if cacheKey(testSource, 8, mod) != cacheKey(testSource, 8, mod) {
		t.Error("cacheKey should be deterministic")
	}
	if cacheKey(testSource, 8, mod) == cacheKey(testSource, 10, mod) {
		t.Error("cacheKey should differ for different sizes")
	}
	if cacheKey(testSource, 8, mod) == cacheKey(testSource, 8, mod.Add(time.Second)) {
		t.Error("cacheKey should change when the source is modified")
	}
	if len(cacheKey(testSource, 8, mod)) != 64 {
		t.Error("cacheKey should be a SHA256 hex digest")
	}
}

func TestCache_PutLeavesNoTempFiles(t *testing.T) {
	cache := newTestCache(t)

	_ = cache.Put(testSource, 4, testImage(4))

	entries, _ := os.ReadDir(cache.dir)
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".png" {
		t.Errorf("cache entries = %v, want one png", entries)
	}
}

func TestCache_PruneDue(t *testing.T) {
	cache := newTestCache(t)
	_ = cache.Put("/old.jpg", 4, testImage(4))
	old := cache.path("/old.jpg", 4)
	oldTime := time.Now().Add(-40 * 24 * time.Hour)
	_ = os.Chtimes(old, oldTime, oldTime)

	if err := cache.PruneDue(DefaultMaxAge); err != nil {
		t.Fatalf("PruneDue() error: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale entry should be pruned")
	}
	if _, err := os.Stat(filepath.Join(cache.dir, stampName)); err != nil {
		t.Fatalf("prune stamp not written: %v", err)
	}

	// A second call within the day leaves stale entries alone.
	_ = cache.Put("/old.jpg", 4, testImage(4))
	_ = os.Chtimes(old, oldTime, oldTime)
	if err := cache.PruneDue(DefaultMaxAge); err != nil {
		t.Fatalf("PruneDue() error: %v", err)
	}
	if _, err := os.Stat(old); err != nil {
		t.Error("prune should not run twice in a day")
	}
}

// Helper functions

func testImage(size int) image.Image {
	return solidImage(size, size, color.RGBA{R: 200, G: 10, B: 10, A: 255})
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	return cache
}
