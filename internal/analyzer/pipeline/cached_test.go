package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryScoreCache struct {
	items  map[string]entity.SentimentContentScored
	getErr error
	setErr error
	ttl    time.Duration
}

func newMemoryScoreCache() *memoryScoreCache {
	return &memoryScoreCache{items: map[string]entity.SentimentContentScored{}}
}

func (m *memoryScoreCache) GetMany(ctx context.Context, model string, ids []string) (map[string]entity.SentimentContentScored, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := map[string]entity.SentimentContentScored{}
	for _, id := range ids {
		if item, ok := m.items[model+"/"+id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (m *memoryScoreCache) SetMany(ctx context.Context, model string, items []entity.SentimentContentScored, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.ttl = ttl
	for _, item := range items {
		m.items[model+"/"+item.Content.ContentID] = item
	}
	return nil
}

func TestCachedScorerScoresOnlyMisses(t *testing.T) {
	stub := &stubStrategy{}
	p := newTestPipeline(t, DefaultScoringConfig(), stub)
	cache := newMemoryScoreCache()
	scorer := NewCachedScorer(p, cache, time.Hour, logger.NewNop())

	first, err := scorer.ScoreBatch(context.Background(), []entity.SentimentContent{content("a"), content("b")})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, stub.calls)
	assert.Len(t, cache.items, 2)
	assert.Equal(t, time.Hour, cache.ttl)

	updated := content("b")
	updated.Metadata = map[string]string{"category": "earnings"}
	second, err := scorer.ScoreBatch(context.Background(), []entity.SentimentContent{content("c"), updated, content("a")})
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, []int{2, 1}, stub.sizes)

	assert.Equal(t, "c", second[0].Content.ContentID)
	assert.Equal(t, "b", second[1].Content.ContentID)
	assert.Equal(t, "earnings", second[1].Content.Metadata["category"])
	assert.Equal(t, "a", second[2].Content.ContentID)
	assert.Equal(t, first[0].Reasoning, second[2].Reasoning)
}

func TestCachedScorerDegradesOnCacheErrors(t *testing.T) {
	stub := &stubStrategy{}
	p := newTestPipeline(t, DefaultScoringConfig(), stub)
	cache := newMemoryScoreCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	scorer := NewCachedScorer(p, cache, time.Hour, logger.NewNop())

	out, err := scorer.ScoreBatch(context.Background(), []entity.SentimentContent{content("a")})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 1, stub.calls)
}

func TestCachedScorerPropagatesScoringErrors(t *testing.T) {
	stub := &stubStrategy{err: errors.New("backend down")}
	p := newTestPipeline(t, DefaultScoringConfig(), stub)
	scorer := NewCachedScorer(p, newMemoryScoreCache(), time.Hour, logger.NewNop())

	_, err := scorer.ScoreBatch(context.Background(), []entity.SentimentContent{content("a")})
	assert.ErrorContains(t, err, "backend down")
	assert.Equal(t, string(stubModel), scorer.ModelName())
}
