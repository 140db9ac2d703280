// Package seen tracks which jobs and messages have already been surfaced to
// the user, so repeated watch cycles do not re-notify. Backed by a JSON file
// with a TTL applied at load time.
package seen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

const retention = 30 * 24 * time.Hour

type entry struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

type Cache struct {
	mu       sync.Mutex
	filePath string
	keys     mapset.Set[string]
	stamps   map[string]int64
	log      *zap.Logger
}

// NewCache creates or loads the cache under dir. Load errors are logged and
// the cache starts empty; notifying twice beats crashing the watch loop.
func NewCache(dir string, log *zap.Logger) *Cache {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("failed to create cache directory", zap.Error(err))
	}
	c := &Cache{
		filePath: filepath.Join(dir, "seen.json"),
		keys:     mapset.NewThreadUnsafeSet[string](),
		stamps:   make(map[string]int64),
		log:      log,
	}
	c.load()
	return c
}

func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys.Contains(key)
}

// Add marks keys as seen and persists when anything changed.
func (c *Cache) Add(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, key := range keys {
		if c.keys.Add(key) {
			c.stamps[key] = now
			changed = true
		}
	}
	if changed {
		c.save()
	}
}

// Unseen filters keys down to those not yet recorded, preserving order.
func (c *Cache) Unseen(keys []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []string
	for _, key := range keys {
		if !c.keys.Contains(key) {
			out = append(out, key)
		}
	}
	return out
}

func (c *Cache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn("failed to read seen cache", zap.Error(err))
		}
		return
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.log.Warn("failed to parse seen cache", zap.Error(err))
		return
	}

	cutoff := time.Now().Add(-retention).UnixMilli()
	kept := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.keys.Add(e.Key)
			c.stamps[e.Key] = e.Timestamp
			kept++
		}
	}
	c.log.Debug("seen cache loaded",
		zap.Int("kept", kept),
		zap.Int("expired", len(entries)-kept))
}

// save writes the cache to disk. Caller holds mu.
func (c *Cache) save() {
	entries := make([]entry, 0, len(c.stamps))
	for key, ts := range c.stamps {
		entries = append(entries, entry{Key: key, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		c.log.Warn("failed to marshal seen cache", zap.Error(err))
		return
	}
	if err := os.WriteFile(c.filePath, data, 0o644); err != nil {
		c.log.Warn("failed to write seen cache", zap.Error(err))
	}
}
