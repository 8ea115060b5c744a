// Package cache keeps decoded champion stats snapshots in memory.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/champ-predictor/internal/metrics"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/stats"
)

// Entry is a snapshot together with its decoded statistics table
type Entry struct {
	Snapshot *models.ChampionStatsSnapshot
	Table    *stats.Table
}

// SnapshotCache is a TTL cache of decoded snapshots keyed by snapshot ID.
// Decoding a snapshot is the expensive part of an evaluation run, and
// snapshots never change once written.
type SnapshotCache struct {
	cache     *gocache.Cache
	ttl       time.Duration
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		cache: gocache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached snapshot
func (sc *SnapshotCache) Get(id uuid.UUID) (*Entry, bool) {
	if v, found := sc.cache.Get(id.String()); found {
		if entry, ok := v.(*Entry); ok {
			sc.hitCount.Add(1)
			metrics.RecordCacheLookup(true)
			return entry, true
		}
	}

	sc.missCount.Add(1)
	metrics.RecordCacheLookup(false)
	return nil, false
}

// Set stores a decoded snapshot
func (sc *SnapshotCache) Set(entry *Entry) {
	sc.cache.Set(entry.Snapshot.ID.String(), entry, sc.ttl)
}

// Decode returns the cached table for the snapshot, decoding and caching it on a miss
func (sc *SnapshotCache) Decode(snapshot *models.ChampionStatsSnapshot) (*stats.Table, error) {
	if entry, ok := sc.Get(snapshot.ID); ok {
		return entry.Table, nil
	}

	table, err := stats.Decode(snapshot.Data)
	if err != nil {
		return nil, err
	}

	sc.Set(&Entry{Snapshot: snapshot, Table: table})
	return table, nil
}

// Invalidate removes a snapshot from the cache
func (sc *SnapshotCache) Invalidate(id uuid.UUID) {
	sc.cache.Delete(id.String())
}

// Clear removes every cached snapshot
func (sc *SnapshotCache) Clear() {
	sc.cache.Flush()
}

// Stats returns cache statistics
func (sc *SnapshotCache) Stats() map[string]interface{} {
	hits := sc.hitCount.Load()
	misses := sc.missCount.Load()

	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return map[string]interface{}{
		"hits":     hits,
		"misses":   misses,
		"hit_rate": hitRate,
		"items":    sc.cache.ItemCount(),
	}
}
