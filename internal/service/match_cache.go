package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"estate-match/internal/domain"
)

// MatchCache cachea resultados ya calculados del lado del llamador.
// El motor en si nunca persiste nada.
type MatchCache interface {
	Get(ctx context.Context, key string) ([]domain.MatchResult, bool)
	Set(ctx context.Context, key string, results []domain.MatchResult, ttl time.Duration)
}

// matchCacheKey resume ancla, direccion y opciones en una clave estable.
func matchCacheKey(direction, anchorID, profileName string, opts MatchOptions) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%v|%d|%t",
		direction, anchorID, profileName, opts.MinScore, opts.Limit, opts.IncludeBreakdown)))
	return "matching:results:" + hex.EncodeToString(sum[:16])
}

type memoryMatchCache struct {
	mu    sync.Mutex
	items map[string]memoryMatchCacheEntry
}

type memoryMatchCacheEntry struct {
	results   []domain.MatchResult
	expiresAt time.Time
}

func NewMemoryMatchCache() MatchCache {
	return &memoryMatchCache{
		items: make(map[string]memoryMatchCacheEntry),
	}
}

func (c *memoryMatchCache) Get(_ context.Context, key string) ([]domain.MatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return entry.results, true
}

func (c *memoryMatchCache) Set(_ context.Context, key string, results []domain.MatchResult, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryMatchCacheEntry{
		results:   results,
		expiresAt: time.Now().UTC().Add(ttl),
	}
}

type redisMatchCache struct {
	client redisKVClient
}

func NewRedisMatchCache(client *redis.Client) MatchCache {
	if client == nil {
		return nil
	}
	return &redisMatchCache{client: client}
}

func (c *redisMatchCache) Get(ctx context.Context, key string) ([]domain.MatchResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) || err != nil {
		return nil, false
	}
	var results []domain.MatchResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *redisMatchCache) Set(ctx context.Context, key string, results []domain.MatchResult, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	c.client.Set(ctx, key, raw, ttl)
}
