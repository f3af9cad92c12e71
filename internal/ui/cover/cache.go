package cover

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// DefaultMaxAge is how long an unused entry stays in the cache.
const DefaultMaxAge = 30 * 24 * time.Hour

const (
	pruneEvery = 24 * time.Hour
	// stampName records the last prune in its modification time.
	stampName = ".pruned"
	entryExt  = ".png"
)

// Cache keeps resized covers as PNG files, keyed by the source file, its
// modification time and the target size. Get refreshes an entry's mtime,
// so Prune drops the entries nobody looked at.
type Cache struct {
	dir string
}

// NewCache creates the cache under baseDir, or the XDG cache directory
// when baseDir is empty.
func NewCache(baseDir string) (*Cache, error) {
	if baseDir == "" {
		baseDir = xdg.CacheHome
	}
	dir := filepath.Join(baseDir, "coverscroll", "covers")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func cacheKey(source string, size int, modTime time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%d", source, size, modTime.UnixNano()))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(source string, size int) string {
	var mod time.Time
	if info, err := os.Stat(source); err == nil {
		mod = info.ModTime()
	}
	return filepath.Join(c.dir, cacheKey(source, size, mod)+entryExt)
}

// Get returns the cached cover for source at size pixels square, or nil.
// An entry that does not decode is removed.
func (c *Cache) Get(source string, size int) image.Image {
	if c == nil || source == "" {
		return nil
	}
	path := c.path(source, size)
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		_ = os.Remove(path)
		return nil
	}
	now := time.Now()
	_ = os.Chtimes(path, now, now)
	return img
}

// Put stores a resized cover for source. The entry appears atomically.
func (c *Cache) Put(source string, size int, img image.Image) error {
	if c == nil || source == "" {
		return nil
	}
	tmp, err := os.CreateTemp(c.dir, "put-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cover: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path(source, size))
}

// PruneDue runs Prune unless one already ran in the last day.
func (c *Cache) PruneDue(maxAge time.Duration) error {
	stamp := filepath.Join(c.dir, stampName)
	if info, err := os.Stat(stamp); err == nil && time.Since(info.ModTime()) < pruneEvery {
		return nil
	}
	if err := c.Prune(maxAge); err != nil {
		return err
	}
	return os.WriteFile(stamp, nil, 0o600)
}

// Prune removes entries not read or written within maxAge.
func (c *Cache) Prune(maxAge time.Duration) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-maxAge)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExt) {
			continue
		}
		if info, err := e.Info(); err == nil && info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, e.Name()))
		}
	}
	return nil
}
