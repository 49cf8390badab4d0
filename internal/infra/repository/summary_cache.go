package repository

import (
	"context"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/zeebo/xxh3"
)

const summaryTTL = 600 // seconds

// SummaryCache keeps rendered summaries in memcached. Entries are TTL
// bound, so a stale summary after a target edit heals on its own.
type SummaryCache struct {
	mc *memcache.Client
}

func NewSummaryCache(mc *memcache.Client) *SummaryCache {
	return &SummaryCache{mc: mc}
}

func summaryKey(itemID int64) string {
	hash := xxh3.HashString(fmt.Sprintf("journal/summary/%d", itemID))
	return fmt.Sprintf("js_%016x", hash)
}

func (c *SummaryCache) Get(ctx context.Context, itemID int64) (string, bool) {
	item, err := c.mc.Get(summaryKey(itemID))
	if err != nil {
		return "", false
	}
	return string(item.Value), true
}

func (c *SummaryCache) Set(ctx context.Context, itemID int64, summary string) {
	// Cache failures are invisible to callers.
	_ = c.mc.Set(&memcache.Item{
		Key:        summaryKey(itemID),
		Value:      []byte(summary),
		Expiration: summaryTTL,
	})
}

func (c *SummaryCache) Invalidate(ctx context.Context, itemID int64) {
	_ = c.mc.Delete(summaryKey(itemID))
}
