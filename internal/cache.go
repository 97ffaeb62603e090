package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fmtlint/fmtlint/internal/config"
	tt "github.com/fmtlint/fmtlint/internal/types"
)

const cacheFileName = "check_cache.gob"

// CacheEntry holds the issues last computed for one file. Hash covers both
// the file content and the effective configuration, so a config change
// invalidates the entry as surely as an edit does.
type CacheEntry struct {
	Hash      string
	Issues    []tt.Issue
	CreatedAt time.Time
}

// Cache persists per-file check results between runs so unchanged files skip
// the external formatter. Safe for concurrent use.
type Cache struct {
	dir     string
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewCache opens (or creates) a cache rooted at dir.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:     dir,
		entries: make(map[string]CacheEntry),
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

func (c *Cache) load() error {
	f, err := os.Open(filepath.Join(c.dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // no cache file yet, nothing to load
	}
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewDecoder(f).Decode(&c.entries)
}

// Save writes the cache back to disk.
func (c *Cache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Create(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewEncoder(f).Encode(c.entries)
}

// Get returns the cached issues for filename if the content and configuration
// are unchanged since they were stored.
func (c *Cache) Get(filename string, content []byte, cfg *config.Config) ([]tt.Issue, bool) {
	hash := fingerprint(content, cfg)

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[filename]
	if !ok || entry.Hash != hash {
		return nil, false
	}
	return entry.Issues, true
}

// Set stores the issues computed for filename.
func (c *Cache) Set(filename string, content []byte, cfg *config.Config, issues []tt.Issue) {
	hash := fingerprint(content, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[filename] = CacheEntry{
		Hash:      hash,
		Issues:    issues,
		CreatedAt: time.Now(),
	}
}

func fingerprint(content []byte, cfg *config.Config) string {
	h := md5.New()
	h.Write(content)
	if data, err := yaml.Marshal(cfg); err == nil {
		h.Write(data)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
