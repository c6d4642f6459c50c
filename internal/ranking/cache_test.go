// internal/ranking/cache_test.go
package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alignment-engine/internal/common/logger"
	"alignment-engine/internal/persona"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, ttl, logger.NewTestLogger(t)), mr
}

func testRanking(generationID string) *CachedRanking {
	now := time.Now().UTC().Truncate(time.Second)
	return &CachedRanking{
		Persona: persona.ProgressiveGlobalist.String(),
		Support: []Entry{
			{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Score: 87, Reasoning: "aligned"},
		},
		Oppose: []Entry{
			{Symbol: "XOM", Name: "Exxon Mobil", Sector: "Energy", Score: 22, Reasoning: "opposed"},
		},
		GenerationID: generationID,
		GeneratedAt:  now,
		ExpiresAt:    now.Add(12 * time.Hour),
		Version:      Version,
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, 12*time.Hour)
	ctx := context.Background()

	stored := testRanking("gen-1")
	require.NoError(t, cache.Put(ctx, persona.ProgressiveGlobalist, stored))

	got, err := cache.Get(ctx, persona.ProgressiveGlobalist)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "gen-1", got.GenerationID)
	assert.Equal(t, stored.Support, got.Support)
	assert.Equal(t, stored.Oppose, got.Oppose)
	assert.Equal(t, Version, got.Version)
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, 12*time.Hour)

	got, err := cache.Get(context.Background(), persona.ConservativeNationalist)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, 12*time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, persona.ProgressiveGlobalist, testRanking("gen-1")))

	mr.FastForward(12*time.Hour + time.Minute)

	got, err := cache.Get(ctx, persona.ProgressiveGlobalist)
	assert.NoError(t, err)
	assert.Nil(t, got, "expired ranking must read as a miss")
}

func TestCachePersonaIsolation(t *testing.T) {
	cache, _ := newTestCache(t, 12*time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, persona.ProgressiveGlobalist, testRanking("gen-pg")))

	got, err := cache.Get(ctx, persona.CapitalistGlobalist)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheHistorySnapshot(t *testing.T) {
	cache, mr := newTestCache(t, 12*time.Hour)
	ctx := context.Background()

	ranking := testRanking("gen-1")
	require.NoError(t, cache.Put(ctx, persona.ProgressiveGlobalist, ranking))

	key := historyKey(persona.ProgressiveGlobalist, ranking.GeneratedAt)
	assert.True(t, mr.Exists(key), "history snapshot must be written")

	// live key expires, history stays
	mr.FastForward(13 * time.Hour)
	assert.True(t, mr.Exists(key))
}

func TestCacheLastWriterWins(t *testing.T) {
	cache, _ := newTestCache(t, 12*time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, persona.ProgressiveGlobalist, testRanking("gen-1")))
	require.NoError(t, cache.Put(ctx, persona.ProgressiveGlobalist, testRanking("gen-2")))

	got, err := cache.Get(ctx, persona.ProgressiveGlobalist)
	require.NoError(t, err)
	assert.Equal(t, "gen-2", got.GenerationID)
}

func TestCacheGetReadError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, 12*time.Hour, logger.NewTestLogger(t))

	mock.ExpectGet(rankingKey(persona.ProgressiveGlobalist)).SetErr(errors.New("connection reset"))

	got, err := cache.Get(context.Background(), persona.ProgressiveGlobalist)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrCacheRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGetCorruptPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, 12*time.Hour, logger.NewTestLogger(t))

	mock.ExpectGet(rankingKey(persona.ProgressiveGlobalist)).SetVal("{not json")

	got, err := cache.Get(context.Background(), persona.ProgressiveGlobalist)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrCacheRead)
}

func TestCachePutWriteError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, 12*time.Hour, logger.NewTestLogger(t))

	ranking := testRanking("gen-err")
	data, err := json.Marshal(ranking)
	require.NoError(t, err)

	mock.ExpectSet(rankingKey(persona.ProgressiveGlobalist), data, 12*time.Hour).SetErr(errors.New("READONLY"))

	err = cache.Put(context.Background(), persona.ProgressiveGlobalist, ranking)
	assert.ErrorIs(t, err, ErrCacheWrite)
}

func TestCachePutHistoryFailureIsBestEffort(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, 12*time.Hour, logger.NewTestLogger(t))

	ranking := testRanking("gen-hist")
	data, err := json.Marshal(ranking)
	require.NoError(t, err)

	mock.ExpectSet(rankingKey(persona.ProgressiveGlobalist), data, 12*time.Hour).SetVal("OK")
	mock.ExpectSet(historyKey(persona.ProgressiveGlobalist, ranking.GeneratedAt), data, 0).SetErr(errors.New("OOM"))

	assert.NoError(t, cache.Put(context.Background(), persona.ProgressiveGlobalist, ranking))
}
