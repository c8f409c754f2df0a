package source

import (
	"context"
	"time"

	"golang-stock-sentiment/internal/entity"
)

// StaticSource serves a fixed set of raw items, e.g. loaded from a file. Items are
// filtered by ticker and publish range on every fetch.
type StaticSource struct {
	name  string
	items []entity.SentimentContent
}

// NewStaticSource creates a StaticSource named name.
func NewStaticSource(name string, items []entity.SentimentContent) *StaticSource {
	return &StaticSource{name: name, items: items}
}

func (s *StaticSource) SourceName() string  { return s.name }
func (s *StaticSource) ReturnsScored() bool { return false }

func (s *StaticSource) Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (FetchResult, error) {
	ticker = normalizeTicker(ticker)
	raw := make([]entity.SentimentContent, 0, len(s.items))
	for _, item := range s.items {
		if normalizeTicker(item.Ticker) != ticker || !withinRange(item.PublishedAt, start, end) {
			continue
		}
		raw = append(raw, item)
		if limit > 0 && len(raw) == limit {
			break
		}
	}
	return FetchResult{Raw: raw}, nil
}
