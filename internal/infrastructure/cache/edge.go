package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
)

const indexFile = "metadata.json"

// Entry describes one cached object in the on-disk index.
type Entry struct {
	CachedAt    time.Time `json:"cached_at"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Version     string    `json:"version"`
}

type counters struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

type index struct {
	Files map[string]Entry `json:"files"`
	Stats counters         `json:"stats"`
}

// Stats is the externally reported cache snapshot.
type Stats struct {
	TotalFiles     int     `json:"total_files"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	Hits           int64   `json:"hits"`
	Misses         int64   `json:"misses"`
	HitRate        float64 `json:"hit_rate"`
}

// EdgeCache is a TTL file cache in front of the storage backend. The
// index survives restarts through a JSON file in the cache dir; a
// single mutex covers index and counters.
type EdgeCache struct {
	dir    string
	ttl    time.Duration
	logger *zap.Logger

	mu    sync.Mutex
	files map[string]Entry
	stats counters
}

func NewEdgeCache(cfg config.CacheConfig, logger *zap.Logger) (*EdgeCache, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	c := &EdgeCache{
		dir:    cfg.Dir,
		ttl:    cfg.TTL,
		logger: logger,
		files:  make(map[string]Entry),
	}
	c.loadIndex()
	return c, nil
}

// loadIndex restores the persisted index; a missing or unreadable file
// just starts the cache empty.
func (c *EdgeCache) loadIndex() {
	data, err := os.ReadFile(filepath.Join(c.dir, indexFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("reading cache index failed", zap.Error(err))
		}
		return
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		c.logger.Warn("parsing cache index failed", zap.Error(err))
		return
	}
	if idx.Files != nil {
		c.files = idx.Files
	}
	c.stats = idx.Stats
}

func (c *EdgeCache) persistLocked() {
	data, err := json.MarshalIndent(index{Files: c.files, Stats: c.stats}, "", "  ")
	if err != nil {
		c.logger.Warn("encoding cache index failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(filepath.Join(c.dir, indexFile), data, 0o644); err != nil {
		c.logger.Warn("writing cache index failed", zap.Error(err))
	}
}

// Get returns the cached bytes and content type, recording a hit or a
// miss. Expired entries are invalidated on access.
func (c *EdgeCache) Get(p string) ([]byte, string, bool) {
	full, err := c.resolve(p)
	if err != nil {
		return nil, "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.files[p]
	if ok {
		if time.Since(entry.CachedAt) < c.ttl {
			data, err := os.ReadFile(full)
			if err == nil {
				c.stats.Hits++
				c.persistLocked()
				return data, entry.ContentType, true
			}
			c.logger.Warn("reading cached file failed", zap.String("path", p), zap.Error(err))
		}
		c.invalidateLocked(p, full)
	}

	c.stats.Misses++
	c.persistLocked()
	return nil, "", false
}

// Put stores content and indexes it with a version token derived from
// the object's last modification time.
func (c *EdgeCache) Put(p string, content []byte, contentType string, lastModified time.Time) error {
	full, err := c.resolve(p)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating cache dirs: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[p] = Entry{
		CachedAt:    time.Now().UTC(),
		Size:        int64(len(content)),
		ContentType: contentType,
		Version:     VersionToken(p, lastModified),
	}
	c.persistLocked()
	return nil
}

// Version returns the indexed version token for a path.
func (c *EdgeCache) Version(p string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.files[p]
	return entry.Version, ok
}

// Invalidate removes the cached file and its index entry.
func (c *EdgeCache) Invalidate(p string) {
	full, err := c.resolve(p)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked(p, full)
	c.persistLocked()
}

func (c *EdgeCache) invalidateLocked(p, full string) {
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("removing cached file failed", zap.String("path", p), zap.Error(err))
	}
	delete(c.files, p)
}

// SweepExpired eagerly removes entries past their TTL and returns how
// many were dropped.
func (c *EdgeCache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int
	for p, entry := range c.files {
		if time.Since(entry.CachedAt) < c.ttl {
			continue
		}
		full, err := c.resolve(p)
		if err != nil {
			delete(c.files, p)
			removed++
			continue
		}
		c.invalidateLocked(p, full)
		removed++
	}
	if removed > 0 {
		c.persistLocked()
	}
	return removed
}

func (c *EdgeCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var totalSize int64
	for _, entry := range c.files {
		totalSize += entry.Size
	}

	total := c.stats.Hits + c.stats.Misses
	if total < 1 {
		total = 1
	}

	return Stats{
		TotalFiles:     len(c.files),
		TotalSizeBytes: totalSize,
		TotalSizeMB:    round2(float64(totalSize) / (1024 * 1024)),
		Hits:           c.stats.Hits,
		Misses:         c.stats.Misses,
		HitRate:        round2(float64(c.stats.Hits) / float64(total) * 100),
	}
}

// Clear wipes the cache dir and resets counters.
func (c *EdgeCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("clearing cache dir: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("recreating cache dir: %w", err)
	}

	c.files = make(map[string]Entry)
	c.stats = counters{}
	c.persistLocked()
	return nil
}

// VersionToken derives the cache-busting token for a path from its
// last modification time; unknown mod time yields the zero token.
func VersionToken(p string, lastModified time.Time) string {
	if lastModified.IsZero() {
		return "00000000"
	}
	sum := md5.Sum(fmt.Appendf(nil, "%s_%d", p, lastModified.Unix()))
	return hex.EncodeToString(sum[:])[:8]
}

func (c *EdgeCache) resolve(p string) (string, error) {
	clean := path.Clean(p)
	if clean == "." || clean == ".." || path.IsAbs(clean) || strings.HasPrefix(clean, "../") || clean == indexFile {
		return "", fmt.Errorf("%s: %w", p, domain.ErrInvalidPath)
	}
	return filepath.Join(c.dir, filepath.FromSlash(clean)), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
