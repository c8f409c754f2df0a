package service

import (
	"context"
	"sync"
	"time"

	"golang-stock-sentiment/internal/analyzer/source"
	"golang-stock-sentiment/internal/entity"
)

var (
	testNow   = time.Date(2025, 12, 19, 12, 0, 0, 0, time.UTC)
	testClock = func() time.Time { return testNow }
)

type fakeSource struct {
	name   string
	scored bool
	result source.FetchResult
	err    error
	panics bool

	mu       sync.Mutex
	calls    int
	gotStart time.Time
	gotEnd   time.Time
	gotLimit int
}

func (f *fakeSource) SourceName() string  { return f.name }
func (f *fakeSource) ReturnsScored() bool { return f.scored }

func (f *fakeSource) Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (source.FetchResult, error) {
	f.mu.Lock()
	f.calls++
	f.gotStart, f.gotEnd, f.gotLimit = start, end, limit
	f.mu.Unlock()

	if f.panics {
		panic("source exploded")
	}
	return f.result, f.err
}

// stubScorer scores every raw item with fixed values.
type stubScorer struct {
	sentiment, relevance, impact float64
	err                          error

	calls int
	got   []entity.SentimentContent
}

func (s *stubScorer) ModelName() string { return "test/stub" }

func (s *stubScorer) ScoreBatch(ctx context.Context, items []entity.SentimentContent) ([]entity.SentimentContentScored, error) {
	s.calls++
	s.got = append(s.got, items...)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entity.SentimentContentScored, len(items))
	for i, item := range items {
		out[i] = entity.SentimentContentScored{
			Content:        item,
			SentimentScore: s.sentiment,
			RelevanceScore: s.relevance,
			ImpactScore:    s.impact,
			ModelName:      s.ModelName(),
			ScoredAt:       testNow,
		}
	}
	return out, nil
}

func rawContent(id, ticker, title string, published time.Time) entity.SentimentContent {
	return entity.SentimentContent{
		ContentID:   id,
		Ticker:      ticker,
		Source:      "rss",
		Title:       title,
		URL:         "https://example.com/" + id,
		PublishedAt: &published,
		SourceType:  entity.SourceTypeNews,
	}
}

func scoredContent(id, ticker string, sentiment, relevance, impact float64) entity.SentimentContentScored {
	published := testNow.Add(-2 * time.Hour)
	return entity.SentimentContentScored{
		Content: entity.SentimentContent{
			ContentID:   id,
			Ticker:      ticker,
			Source:      "alpha_vantage",
			Title:       "Headline " + id,
			PublishedAt: &published,
			SourceType:  entity.SourceTypeNews,
		},
		SentimentScore: sentiment,
		RelevanceScore: relevance,
		ImpactScore:    impact,
		ModelName:      "alpha_vantage_news_sentiment",
		ScoredAt:       testNow,
	}
}
