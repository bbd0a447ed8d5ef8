package service

import (
	"context"
	"testing"
	"time"

	"estate-match/internal/domain"
)

func cachedResults() []domain.MatchResult {
	return []domain.MatchResult{
		{AnchorID: "client-1", CandidateID: "prop-1", OverallScore: 87.5},
		{AnchorID: "client-1", CandidateID: "prop-2", OverallScore: 61.2},
	}
}

func TestMatchCacheKey_StableAndSensitiveToOptions(t *testing.T) {
	opts := DefaultMatchOptions()

	a := matchCacheKey("client->properties", "client-1", "default", opts)
	b := matchCacheKey("client->properties", "client-1", "default", opts)
	if a != b {
		t.Fatalf("same inputs must produce the same key: %q vs %q", a, b)
	}

	if matchCacheKey("property->clients", "client-1", "default", opts) == a {
		t.Fatalf("direction must change the key")
	}

	opts.MinScore = 50
	if matchCacheKey("client->properties", "client-1", "default", opts) == a {
		t.Fatalf("options must change the key")
	}
}

func TestMemoryMatchCache_SetGetAndExpiry(t *testing.T) {
	cache := NewMemoryMatchCache()
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	cache.Set(ctx, "k1", cachedResults(), 50*time.Millisecond)
	got, ok := cache.Get(ctx, "k1")
	if !ok || len(got) != 2 || got[0].CandidateID != "prop-1" {
		t.Fatalf("expected cached results, got %v (hit=%v)", got, ok)
	}

	time.Sleep(70 * time.Millisecond)
	if _, ok := cache.Get(ctx, "k1"); ok {
		t.Fatalf("expected entry expired")
	}
}

func TestMemoryMatchCache_IgnoresNonPositiveTTL(t *testing.T) {
	cache := NewMemoryMatchCache()
	ctx := context.Background()

	cache.Set(ctx, "k1", cachedResults(), 0)
	if _, ok := cache.Get(ctx, "k1"); ok {
		t.Fatalf("zero TTL must not cache")
	}
}

func TestRedisMatchCache_RoundTrip(t *testing.T) {
	mock := &mockRedisKVClient{}
	cache := &redisMatchCache{client: mock}
	ctx := context.Background()

	cache.Set(ctx, "k1", cachedResults(), time.Minute)
	if mock.lastSetKey != "k1" || mock.lastSetTTL != time.Minute {
		t.Fatalf("unexpected set call: key=%q ttl=%v", mock.lastSetKey, mock.lastSetTTL)
	}

	got, ok := cache.Get(ctx, "k1")
	if !ok || len(got) != 2 {
		t.Fatalf("expected cached results back, got %v (hit=%v)", got, ok)
	}
	if got[1].OverallScore != 61.2 {
		t.Fatalf("scores must survive the round trip, got %v", got[1].OverallScore)
	}

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestRedisMatchCache_CorruptPayloadIsAMiss(t *testing.T) {
	mock := &mockRedisKVClient{values: map[string]string{"k1": "not-json"}}
	cache := &redisMatchCache{client: mock}

	if _, ok := cache.Get(context.Background(), "k1"); ok {
		t.Fatalf("corrupt payload must read as a miss")
	}
}
