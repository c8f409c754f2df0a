package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchNewsSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "NEWS_SENTIMENT", q.Get("function"))
		assert.Equal(t, "AAPL", q.Get("tickers"))
		assert.Equal(t, "20251212T0900", q.Get("time_from"))
		assert.Equal(t, "20251219T0900", q.Get("time_to"))
		assert.Equal(t, "RELEVANCE", q.Get("sort"))
		assert.Equal(t, "1000", q.Get("limit"))
		assert.Equal(t, "key", q.Get("apikey"))

		_, _ = w.Write([]byte(`{"items":"1","feed":[{"title":"Apple up","url":"https://x/a","time_published":"20251219T093546",
			"ticker_sentiment":[{"ticker":"AAPL","relevance_score":"0.9","ticker_sentiment_score":"0.4","ticker_sentiment_label":"Bullish"}]}]}`))
	}))
	defer srv.Close()

	repo := NewAlphaVantageRepository(config.AlphaVantage{BaseURL: srv.URL, APIKey: "key"}, time.Second, logger.NewNop())
	end := time.Date(2025, 12, 19, 9, 0, 0, 0, time.UTC)

	resp, err := repo.FetchNewsSentiment(context.Background(), "AAPL", end.AddDate(0, 0, -7), end)
	require.NoError(t, err)
	require.Len(t, resp.Feed, 1)
	assert.Equal(t, "0.9", resp.Feed[0].TickerSentiment[0].RelevanceScore)
}

func TestFetchNewsSentimentThrottled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Information":"rate limit reached"}`))
	}))
	defer srv.Close()

	repo := NewAlphaVantageRepository(config.AlphaVantage{BaseURL: srv.URL, APIKey: "key"}, time.Second, logger.NewNop())
	_, err := repo.FetchNewsSentiment(context.Background(), "AAPL", time.Now().Add(-time.Hour), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit reached")
}

func TestFetchNewsSentimentRequiresKey(t *testing.T) {
	repo := NewAlphaVantageRepository(config.AlphaVantage{BaseURL: "http://127.0.0.1:0"}, 0, logger.NewNop())
	_, err := repo.FetchNewsSentiment(context.Background(), "AAPL", time.Now(), time.Now())
	assert.Error(t, err)
}

func TestParseAlphaVantageTime(t *testing.T) {
	got, ok := ParseAlphaVantageTime("20251219T093546")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 19, 9, 35, 46, 0, time.UTC), got)

	got, ok = ParseAlphaVantageTime("20251219T0935")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 19, 9, 35, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "NULL", "2025-12-19"} {
		_, ok := ParseAlphaVantageTime(bad)
		assert.False(t, ok, bad)
	}
}

func TestAlphaVantageMockRepositoryShiftsIntoWindow(t *testing.T) {
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -7)

	resp, err := NewAlphaVantageMockRepository().FetchNewsSentiment(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Feed)

	newest, ok := ParseAlphaVantageTime(resp.Feed[0].TimePublished)
	require.True(t, ok)
	assert.Equal(t, end.Add(-time.Hour), newest)

	for _, a := range resp.Feed {
		published, ok := ParseAlphaVantageTime(a.TimePublished)
		require.True(t, ok)
		assert.True(t, published.After(start), a.Title)
		assert.False(t, published.After(end), a.Title)
	}
}
