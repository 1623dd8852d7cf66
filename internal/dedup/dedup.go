// Seen-job cache: remembers which job ids have already been sent out, so a
// re-run of the scraper does not notify about the same postings again. This
// only guards the notification path; the scraped collection itself is never
// deduplicated.

package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"go-jobradar-automation/internal/logging"
)

const (
	cacheFilename = "seen_jobs.json"
	retention     = 30 * 24 * time.Hour
)

type seenEntry struct {
	JobID     string `json:"job_id"`
	Timestamp int64  `json:"timestamp"`
}

type SeenCache struct {
	mu     sync.Mutex
	path   string
	seen   map[string]int64
	logger *log.Entry
}

// NewSeenCache creates or loads the cache under cacheDir. Entries older
// than the retention window are dropped on load.
func NewSeenCache(cacheDir string) *SeenCache {
	logger := logging.Component("dedup")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		logger.Warnf("Failed to create cache directory: %v", err)
	}
	c := &SeenCache{
		path:   filepath.Join(cacheDir, cacheFilename),
		seen:   make(map[string]int64),
		logger: logger,
	}
	c.load()
	return c
}

// IsSeen reports whether the job id was already notified.
func (c *SeenCache) IsSeen(jobID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[jobID]
	return ok
}

// Add records the job ids as seen and persists the cache when anything
// changed.
func (c *SeenCache) Add(jobIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, id := range jobIDs {
		if _, ok := c.seen[id]; !ok {
			c.seen[id] = now
			changed = true
		}
	}
	if changed {
		c.save()
	}
}

func (c *SeenCache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warnf("Failed to read %s: %v", cacheFilename, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warnf("Failed to parse %s: %v", cacheFilename, err)
		return
	}

	cutoff := time.Now().Add(-retention).UnixMilli()
	kept := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen[e.JobID] = e.Timestamp
			kept++
		}
	}
	c.logger.Infof("Loaded %d previously seen jobs (%d expired and removed)", kept, len(entries)-kept)
}

func (c *SeenCache) save() {
	entries := make([]seenEntry, 0, len(c.seen))
	for id, ts := range c.seen {
		entries = append(entries, seenEntry{JobID: id, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		c.logger.Warnf("Failed to marshal seen jobs: %v", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		c.logger.Warnf("Failed to write %s: %v", cacheFilename, err)
	}
}
