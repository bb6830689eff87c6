package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/finlens/extrato-parser/internal/models"
)

// DefaultTTL is how long a cached extraction stays valid.
const DefaultTTL = 24 * time.Hour

// Entry is the on-disk format of one cached extraction, stored as
// <content-hash>.json inside the cache directory.
type Entry struct {
	ContentHash  string               `json:"content_hash"`
	Transactions []models.Transaction `json:"transactions"`
	Report       models.Report        `json:"report"`
	CreatedAt    time.Time            `json:"created_at"`
}

// Cache stores extraction results keyed by document content hash. A fresh
// entry lets repeat conversions of the same file skip the pipeline entirely.
type Cache struct {
	dir string
	ttl time.Duration
}

// New opens (creating if needed) a cache rooted at dir. ttl <= 0 selects
// DefaultTTL.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Hash returns the hex content hash used as a cache key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load returns the cached entry for hash, or ok=false on a miss. Corrupt
// and expired entries are misses and are removed so they are not re-read.
func (c *Cache) Load(hash string) (*Entry, bool) {
	path := c.entryPath(hash)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		os.Remove(path)
		return nil, false
	}
	if entry.ContentHash != hash {
		os.Remove(path)
		return nil, false
	}
	if time.Since(entry.CreatedAt) > c.ttl {
		os.Remove(path)
		return nil, false
	}
	return &entry, true
}

// Save writes the entry for hash, overwriting a previous one.
func (c *Cache) Save(hash string, transactions []models.Transaction, report models.Report) error {
	entry := Entry{
		ContentHash:  hash,
		Transactions: transactions,
		Report:       report,
		CreatedAt:    time.Now(),
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	// Write-then-rename so a concurrent Load never sees a partial entry.
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create cache temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.entryPath(hash)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Sweep removes expired and corrupt entries, returning how many were
// deleted.
func (c *Cache) Sweep() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(c.dir, e.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil || time.Since(entry.CreatedAt) > c.ttl {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (c *Cache) entryPath(hash string) string {
	return filepath.Join(c.dir, hash+".json")
}
