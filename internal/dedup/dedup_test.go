package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenCache_AddAndReload(t *testing.T) {
	dir := t.TempDir()

	cache := NewSeenCache(dir)
	assert.False(t, cache.IsSeen("123"))

	cache.Add([]string{"123", "456"})
	assert.True(t, cache.IsSeen("123"))
	assert.True(t, cache.IsSeen("456"))

	// A fresh cache instance reads the persisted state.
	reloaded := NewSeenCache(dir)
	assert.True(t, reloaded.IsSeen("123"))
	assert.False(t, reloaded.IsSeen("789"))
}

func TestSeenCache_ExpiredEntriesDroppedOnLoad(t *testing.T) {
	dir := t.TempDir()

	old := time.Now().Add(-31 * 24 * time.Hour).UnixMilli()
	entries := []seenEntry{
		{JobID: "stale", Timestamp: old},
		{JobID: "fresh", Timestamp: time.Now().UnixMilli()},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFilename), data, 0o644))

	cache := NewSeenCache(dir)
	assert.False(t, cache.IsSeen("stale"))
	assert.True(t, cache.IsSeen("fresh"))
}

func TestSeenCache_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFilename), []byte("not json"), 0o644))

	cache := NewSeenCache(dir)
	assert.False(t, cache.IsSeen("anything"))
}
