package source

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// CachedSource memoizes fetch results in memory for a short TTL. Range bounds are
// truncated to the minute in the key so repeated "latest" requests share entries.
type CachedSource struct {
	next   ContentSource
	cache  *cache.Cache
	logger *logger.Logger
}

// NewCachedSource wraps next with an in-memory cache.
func NewCachedSource(next ContentSource, ttl time.Duration, log *logger.Logger) *CachedSource {
	return &CachedSource{
		next:   next,
		cache:  cache.New(ttl, 2*ttl),
		logger: log,
	}
}

func (s *CachedSource) SourceName() string  { return s.next.SourceName() }
func (s *CachedSource) ReturnsScored() bool { return s.next.ReturnsScored() }

func (s *CachedSource) Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (FetchResult, error) {
	key := fmt.Sprintf("%s:%s:%d:%d:%d", s.next.SourceName(), normalizeTicker(ticker),
		start.Truncate(time.Minute).Unix(), end.Truncate(time.Minute).Unix(), limit)

	if cached, found := s.cache.Get(key); found {
		s.logger.Debug("Source cache hit", logger.StringField("key", key))
		return cached.(FetchResult), nil
	}

	result, err := s.next.Fetch(ctx, ticker, start, end, limit)
	if err != nil {
		return FetchResult{}, err
	}
	s.cache.SetDefault(key, result)
	return result, nil
}
