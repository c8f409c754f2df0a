// Package source provides the content sources consumed by the sentiment analysis tool.
// A source returns either raw items that still need scoring or items it already scored.
package source

import (
	"context"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
)

// FetchResult holds the items returned by one fetch. Only one of Raw or Scored is set,
// depending on ContentSource.ReturnsScored.
type FetchResult struct {
	Raw    []entity.SentimentContent
	Scored []entity.SentimentContentScored
}

// Len returns the number of items in the result.
func (r FetchResult) Len() int {
	return len(r.Raw) + len(r.Scored)
}

// ContentSource fetches content about a ticker published within [start, end].
// A limit of zero or less means the source default.
type ContentSource interface {
	SourceName() string
	ReturnsScored() bool
	Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (FetchResult, error)
}

// FetchLatest resolves horizon ("short", "medium", "long" and their aliases) to a range
// ending now and fetches it. An empty horizon means short.
func FetchLatest(ctx context.Context, src ContentSource, ticker, horizon string, limit int) (FetchResult, error) {
	window := entity.TimeWindowShort
	if strings.TrimSpace(horizon) != "" {
		w, err := entity.ParseTimeWindow(horizon)
		if err != nil {
			return FetchResult{}, err
		}
		window = w
	}
	start, end := window.TimeRange(time.Now())
	return src.Fetch(ctx, ticker, start, end, limit)
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func withinRange(t *time.Time, start, end time.Time) bool {
	if t == nil {
		return true
	}
	return !t.Before(start) && !t.After(end)
}
