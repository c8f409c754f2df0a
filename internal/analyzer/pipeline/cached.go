package pipeline

import (
	"context"
	"time"

	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/metrics"
)

// CachedScorer serves previously scored content ids from a cache and scores only misses.
// Cache failures degrade to a full scoring pass.
type CachedScorer struct {
	next   Scorer
	cache  repository.ScoreCacheRepository
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedScorer wraps next with cache.
func NewCachedScorer(next Scorer, cache repository.ScoreCacheRepository, ttl time.Duration, log *logger.Logger) *CachedScorer {
	return &CachedScorer{next: next, cache: cache, ttl: ttl, logger: log}
}

func (s *CachedScorer) ModelName() string {
	return s.next.ModelName()
}

// ScoreBatch returns scores in input order, mixing cached and freshly scored items.
func (s *CachedScorer) ScoreBatch(ctx context.Context, contents []entity.SentimentContent) ([]entity.SentimentContentScored, error) {
	if len(contents) == 0 {
		return []entity.SentimentContentScored{}, nil
	}
	model := s.next.ModelName()

	ids := make([]string, len(contents))
	for i, c := range contents {
		ids[i] = c.ContentID
	}
	cached, err := s.cache.GetMany(ctx, model, ids)
	if err != nil {
		s.logger.Warn("Score cache unavailable, scoring every item", logger.ErrorField(err))
		cached = nil
	}

	out := make([]entity.SentimentContentScored, len(contents))
	var missIdx []int
	var misses []entity.SentimentContent
	for i, c := range contents {
		if hit, ok := cached[c.ContentID]; ok && c.ContentID != "" {
			// The cached copy may predate metadata updates from the source.
			hit.Content = c
			out[i] = hit
			continue
		}
		missIdx = append(missIdx, i)
		misses = append(misses, c)
	}
	metrics.RecordScoreCache(len(contents)-len(misses), len(misses))

	if len(misses) == 0 {
		return out, nil
	}

	scored, err := s.next.ScoreBatch(ctx, misses)
	if err != nil {
		return nil, err
	}
	for j, idx := range missIdx {
		out[idx] = scored[j]
	}

	if err := s.cache.SetMany(ctx, model, scored, s.ttl); err != nil {
		s.logger.Warn("Failed to write score cache", logger.ErrorField(err))
	}
	return out, nil
}
