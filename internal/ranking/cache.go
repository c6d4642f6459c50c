// internal/ranking/cache.go
package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"alignment-engine/internal/common/logger"
	"alignment-engine/internal/persona"
)

var (
	ErrCacheRead  = errors.New("CACHE_READ_FAILED")
	ErrCacheWrite = errors.New("CACHE_WRITE_FAILED")
)

// Cache stores ranking payloads in Redis. The live key per persona carries
// the TTL; every write also appends a history snapshot keyed by generation
// timestamp that the scoring path never reads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "ranking-cache"}),
	}
}

func rankingKey(a persona.Archetype) string {
	return "rankings:" + a.String()
}

func historyKey(a persona.Archetype, generatedAt time.Time) string {
	return fmt.Sprintf("rankings:%s:history:%d", a, generatedAt.Unix())
}

// Get returns the live ranking for a persona, or (nil, nil) on a miss.
// Expiry is Redis TTL driven, an expired key reads as missing.
func (c *Cache) Get(ctx context.Context, a persona.Archetype) (*CachedRanking, error) {
	val, err := c.client.Get(ctx, rankingKey(a)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var ranking CachedRanking
	if err := json.Unmarshal([]byte(val), &ranking); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}
	return &ranking, nil
}

// Put replaces the live ranking whole-value and appends the history
// snapshot. Concurrent writers race benignly, last writer wins.
func (c *Cache) Put(ctx context.Context, a persona.Archetype, ranking *CachedRanking) error {
	data, err := json.Marshal(ranking)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, rankingKey(a), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, historyKey(a, ranking.GeneratedAt), data, 0).Err(); err != nil {
		// history is best effort, the live ranking already landed
		c.logger.Warn("failed to write ranking history snapshot", map[string]interface{}{
			"persona": a.String(),
			"error":   err.Error(),
		})
	}
	return nil
}
