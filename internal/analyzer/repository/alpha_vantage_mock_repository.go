package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/analyzer/dto"
)

//go:embed fixtures/alpha_vantage_news_sentiment.json
var alphaVantageFixture []byte

type alphaVantageMockRepository struct{}

// NewAlphaVantageMockRepository serves a bundled NEWS_SENTIMENT response for offline runs.
// Publish times are shifted so the newest article lands one hour before the requested end,
// keeping the gaps between articles.
func NewAlphaVantageMockRepository() AlphaVantageRepository {
	return alphaVantageMockRepository{}
}

func (alphaVantageMockRepository) FetchNewsSentiment(ctx context.Context, ticker string, start, end time.Time) (*dto.AlphaVantageNewsResponse, error) {
	var resp dto.AlphaVantageNewsResponse
	if err := json.Unmarshal(alphaVantageFixture, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode alpha vantage fixture: %w", err)
	}

	var newest time.Time
	for _, a := range resp.Feed {
		if t, ok := ParseAlphaVantageTime(a.TimePublished); ok && t.After(newest) {
			newest = t
		}
	}
	if newest.IsZero() {
		return &resp, nil
	}

	shift := end.UTC().Add(-time.Hour).Sub(newest)
	for i, a := range resp.Feed {
		if t, ok := ParseAlphaVantageTime(a.TimePublished); ok {
			resp.Feed[i].TimePublished = t.Add(shift).Format(alphaVantagePublishedLayout)
		}
	}
	return &resp, nil
}
