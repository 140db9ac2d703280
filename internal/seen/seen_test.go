package seen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	c := NewCache(dir, zap.NewNop())
	assert.False(t, c.Contains("job:j1"))

	c.Add("job:j1", "msg:m1")
	assert.True(t, c.Contains("job:j1"))

	// A fresh cache instance reads the same file.
	c2 := NewCache(dir, zap.NewNop())
	assert.True(t, c2.Contains("job:j1"))
	assert.True(t, c2.Contains("msg:m1"))
}

func TestUnseenPreservesOrder(t *testing.T) {
	c := NewCache(t.TempDir(), zap.NewNop())
	c.Add("b")

	got := c.Unseen([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestExpiredEntriesDroppedOnLoad(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-40 * 24 * time.Hour).UnixMilli()
	fresh := time.Now().UnixMilli()
	data, err := json.Marshal([]entry{
		{Key: "stale", Timestamp: old},
		{Key: "recent", Timestamp: fresh},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen.json"), data, 0o644))

	c := NewCache(dir, zap.NewNop())
	assert.False(t, c.Contains("stale"))
	assert.True(t, c.Contains("recent"))
}
