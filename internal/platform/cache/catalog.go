package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"cp_assistant/internal/domain/model"
)

// FetchFunc loads the canonical problem catalog from upstream.
type FetchFunc func(ctx context.Context) ([]model.Problem, error)

// Snapshot is one complete, immutable view of the problem catalog.
// Readers always get a whole snapshot; it is never mutated in place.
type Snapshot struct {
	Problems  []model.Problem
	FetchedAt time.Time

	byKey map[string]model.Problem
}

// Lookup resolves a problem key against the snapshot.
func (s *Snapshot) Lookup(key string) (model.Problem, bool) {
	p, ok := s.byKey[key]
	return p, ok
}

// ByKey returns the snapshot's read-only key index.
func (s *Snapshot) ByKey() map[string]model.Problem {
	return s.byKey
}

// CatalogCache is the process-wide problem catalog with a TTL lifecycle:
// populated lazily on first use, refreshed on expiry via copy-and-swap.
// A refresh in progress never blocks readers; they keep using the
// stale-but-valid snapshot until the new one is swapped in whole. When a
// Redis client is present it doubles as a shared read-through store so
// restarts and sibling processes skip the upstream fetch.
type CatalogCache struct {
	fetch FetchFunc
	ttl   time.Duration
	rdb   *redis.Client
	key   string

	snap atomic.Pointer[Snapshot]
	// mu serializes writers; readers never take it.
	mu         sync.Mutex
	refreshing atomic.Bool
}

func NewCatalogCache(fetch FetchFunc, ttl time.Duration, rdb *redis.Client, key string) *CatalogCache {
	return &CatalogCache{fetch: fetch, ttl: ttl, rdb: rdb, key: key}
}

// Get returns a complete catalog snapshot. The first caller populates
// the cache synchronously; afterwards an expired snapshot is served
// stale while a single background refresh replaces it.
func (c *CatalogCache) Get(ctx context.Context) (*Snapshot, error) {
	if snap := c.snap.Load(); snap != nil {
		if time.Since(snap.FetchedAt) > c.ttl {
			c.refreshAsync()
		}
		return snap, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if snap := c.snap.Load(); snap != nil {
		return snap, nil
	}
	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.snap.Store(snap)
	return snap, nil
}

// refreshAsync starts at most one background refresh. Failures keep the
// stale snapshot in place; the next expired read tries again.
func (c *CatalogCache) refreshAsync() {
	if !c.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.refreshing.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		c.mu.Lock()
		defer c.mu.Unlock()
		snap, err := c.load(ctx)
		if err != nil {
			log.Printf("WARN: catalog refresh failed, serving stale snapshot: %v", err)
			return
		}
		c.snap.Store(snap)
	}()
}

type storedCatalog struct {
	Problems  []model.Problem `json:"problems"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// load builds a fresh snapshot: Redis first (read-through), upstream
// fetch on miss, and a write-back with the TTL so siblings share it.
func (c *CatalogCache) load(ctx context.Context) (*Snapshot, error) {
	if c.rdb != nil {
		if data, err := c.rdb.Get(ctx, c.key).Bytes(); err == nil {
			var stored storedCatalog
			if err := json.Unmarshal(data, &stored); err == nil && len(stored.Problems) > 0 {
				// Only adopt the shared entry if it is newer than what
				// we already serve; otherwise go upstream.
				if cur := c.snap.Load(); cur == nil || stored.FetchedAt.After(cur.FetchedAt) {
					return newSnapshot(stored.Problems, stored.FetchedAt), nil
				}
			} else {
				log.Printf("WARN: discarding malformed catalog entry under %q", c.key)
			}
		}
	}

	problems, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	fetchedAt := time.Now().UTC()

	if c.rdb != nil {
		data, err := json.Marshal(storedCatalog{Problems: problems, FetchedAt: fetchedAt})
		if err == nil {
			if err := c.rdb.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
				log.Printf("WARN: failed to store catalog in Redis: %v", err)
			}
		}
	}
	return newSnapshot(problems, fetchedAt), nil
}

func newSnapshot(problems []model.Problem, fetchedAt time.Time) *Snapshot {
	byKey := make(map[string]model.Problem, len(problems))
	for _, p := range problems {
		byKey[p.ID.Key()] = p
	}
	return &Snapshot{Problems: problems, FetchedAt: fetchedAt, byKey: byKey}
}
