// Package cache keeps recently used short code owners in memory.
// A short code never changes owner, so a cached entry is valid until it expires.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/vadimbarashkov/shortlink/internal/config"
)

type OwnerCache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

func NewOwnerCache(cfg config.Cache) (*OwnerCache, error) {
	const op = "adapter.cache.NewOwnerCache"

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create cache: %w", op, err)
	}

	return &OwnerCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

// Owner returns the cached owner of shortCode.
func (c *OwnerCache) Owner(shortCode string) (string, bool) {
	v, ok := c.client.Get(shortCode)
	if !ok {
		return "", false
	}

	ownerID, ok := v.(string)
	return ownerID, ok
}

// SetOwner caches the owner of shortCode. The write is applied asynchronously
// and may be dropped under contention.
func (c *OwnerCache) SetOwner(shortCode, ownerID string) {
	c.client.SetWithTTL(shortCode, ownerID, 1, c.ttl)
}

// Wait blocks until pending writes are applied.
func (c *OwnerCache) Wait() {
	c.client.Wait()
}

func (c *OwnerCache) Close() {
	c.client.Close()
}
