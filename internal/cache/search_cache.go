package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"execfreq/internal/model"

	"github.com/redis/go-redis/v9"
)

// SearchCache keeps raw search results in Redis between runs so repeated
// searches stay within platform rate limits. Entries expire after TTL.
type SearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSearchCache(rdb *redis.Client, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SearchCache{rdb: rdb, ttl: ttl}
}

func searchKey(source, query string) string {
	return fmt.Sprintf("execfreq:search:%s:%s", source, query)
}

// Get returns the cached posts for a source+query, with ok=false on a miss.
func (c *SearchCache) Get(ctx context.Context, source, query string) ([]model.NormalizedPost, bool, error) {
	b, err := c.rdb.Get(ctx, searchKey(source, query)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var posts []model.NormalizedPost
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, false, err
	}
	return posts, true, nil
}

// Put stores the posts for a source+query with the cache TTL.
func (c *SearchCache) Put(ctx context.Context, source, query string, posts []model.NormalizedPost) error {
	b, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, searchKey(source, query), b, c.ttl).Err()
}
