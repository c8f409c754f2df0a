package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-sentiment/internal/analyzer/source"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTool(scorer *stubScorer, sources ...source.ContentSource) *AnalyzeSentimentTool {
	return NewAnalyzeSentimentTool(sources, scorer, logger.NewNop(), WithToolClock(testClock))
}

func TestAnalyzeMergesScoredAndRawSources(t *testing.T) {
	av := &fakeSource{name: "alpha_vantage", scored: true, result: source.FetchResult{
		Scored: []entity.SentimentContentScored{scoredContent("av-1", "AAPL", 0.9, 0.9, 0.9)},
	}}
	rss := &fakeSource{name: "google_news", result: source.FetchResult{
		Raw: []entity.SentimentContent{rawContent("rss-1", "AAPL", "Apple slips", testNow.Add(-time.Hour))},
	}}
	scorer := &stubScorer{sentiment: -0.5, relevance: 0.5, impact: 0.5}

	out, err := newTestTool(scorer, av, rss).Run(context.Background(), "aapl", "short", 10)
	require.NoError(t, err)

	require.True(t, out.HasAggregates())
	assert.Equal(t, "AAPL", out.Ticker)
	assert.InDelta(t, 0.57, *out.OverallSentimentScore, 1e-9)
	assert.InDelta(t, 0.7, *out.OverallRelevanceScore, 1e-9)
	assert.InDelta(t, 0.7, *out.OverallImpactScore, 1e-9)
	assert.Equal(t, 1, out.Breakdown.PositiveCount)
	assert.Equal(t, 1, out.Breakdown.NegativeCount)
	assert.Equal(t, 0, out.Breakdown.NeutralCount)

	require.Len(t, out.Contents, 2)
	assert.Equal(t, "av-1", out.Contents[0].Content.ContentID)
	assert.Equal(t, "rss-1", out.Contents[1].Content.ContentID)
	assert.Equal(t, 1, scorer.calls)
	require.Len(t, scorer.got, 1)
	assert.Equal(t, "rss-1", scorer.got[0].ContentID)

	assert.Equal(t, testNow, av.gotEnd)
	assert.Equal(t, testNow.AddDate(0, 0, -7), av.gotStart)
	assert.Equal(t, 10, av.gotLimit)
}

func TestAnalyzeSkipsFailingSources(t *testing.T) {
	failing := &fakeSource{name: "broken", err: errors.New("upstream 503")}
	panicking := &fakeSource{name: "panicky", panics: true}
	ok := &fakeSource{name: "alpha_vantage", scored: true, result: source.FetchResult{
		Scored: []entity.SentimentContentScored{scoredContent("av-1", "AAPL", 0.4, 0.5, 0.5)},
	}}
	scorer := &stubScorer{}

	out, err := newTestTool(scorer, failing, panicking, ok).Run(context.Background(), "AAPL", "short", 0)
	require.NoError(t, err)

	require.Len(t, out.Contents, 1)
	assert.Equal(t, entity.DefaultAnalysisLimit, out.Limit)
	assert.Equal(t, 0, scorer.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, panicking.calls)
}

func TestAnalyzeWithNoContent(t *testing.T) {
	out, err := newTestTool(&stubScorer{}, &fakeSource{name: "empty"}).Run(context.Background(), "AAPL", "medium", 5)
	require.NoError(t, err)

	assert.Empty(t, out.Contents)
	assert.Equal(t, 0.0, *out.OverallSentimentScore)
	assert.Equal(t, 0, out.Breakdown.Total())
	assert.NotNil(t, out.TopDrivers)
}

func TestAnalyzePropagatesScorerError(t *testing.T) {
	rss := &fakeSource{name: "google_news", result: source.FetchResult{
		Raw: []entity.SentimentContent{rawContent("rss-1", "AAPL", "Apple", testNow)},
	}}
	scorer := &stubScorer{err: errors.New("model offline")}

	_, err := newTestTool(scorer, rss).Run(context.Background(), "AAPL", "short", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model offline")
}

func TestAnalyzeDeduplicatesByContentID(t *testing.T) {
	first := &fakeSource{name: "alpha_vantage", scored: true, result: source.FetchResult{
		Scored: []entity.SentimentContentScored{
			scoredContent("dup", "AAPL", 0.2, 0.5, 0.5),
			scoredContent("solo", "AAPL", 0.1, 0.1, 0.1),
		},
	}}
	second := &fakeSource{name: "news_archive", scored: true, result: source.FetchResult{
		Scored: []entity.SentimentContentScored{scoredContent("dup", "AAPL", -0.8, 0.5, 0.5)},
	}}

	out, err := newTestTool(&stubScorer{}, first, second).Run(context.Background(), "AAPL", "short", 10)
	require.NoError(t, err)

	require.Len(t, out.Contents, 2)
	assert.Equal(t, "dup", out.Contents[0].Content.ContentID)
	assert.Equal(t, -0.8, out.Contents[0].SentimentScore)
}

func TestAnalyzeLimitAggregatesVisibleItemsOnly(t *testing.T) {
	src := &fakeSource{name: "alpha_vantage", scored: true, result: source.FetchResult{
		Scored: []entity.SentimentContentScored{
			scoredContent("weak", "AAPL", -1, 0.1, 0.1),
			scoredContent("strong", "AAPL", 0.6, 1, 1),
			scoredContent("mid", "AAPL", 0.2, 0.5, 0.5),
		},
	}}

	out, err := newTestTool(&stubScorer{}, src).Run(context.Background(), "AAPL", "short", 2)
	require.NoError(t, err)

	require.Len(t, out.Contents, 2)
	assert.Equal(t, "strong", out.Contents[0].Content.ContentID)
	assert.Equal(t, "mid", out.Contents[1].Content.ContentID)
	assert.Equal(t, 0, out.Breakdown.NegativeCount)
	// (0.6*1 + 0.2*0.25) / 1.25
	assert.InDelta(t, 0.52, *out.OverallSentimentScore, 1e-9)
	assert.Len(t, out.TopDrivers, 2)
}

func TestAnalyzeHonorsSourceAllowlist(t *testing.T) {
	allowed := &fakeSource{name: "alpha_vantage", scored: true}
	blocked := &fakeSource{name: "google_news"}
	w := entity.TimeWindowShort

	_, err := newTestTool(&stubScorer{}, allowed, blocked).Analyze(context.Background(), entity.SentimentAnalysisInput{
		Ticker:     "AAPL",
		TimeWindow: &w,
		Sources:    []string{"Alpha_Vantage"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, allowed.calls)
	assert.Equal(t, 0, blocked.calls)
}

func TestAnalyzeFiltersByMinRelevance(t *testing.T) {
	src := &fakeSource{name: "alpha_vantage", scored: true, result: source.FetchResult{
		Scored: []entity.SentimentContentScored{
			scoredContent("keep", "AAPL", 0.5, 0.6, 0.5),
			scoredContent("drop", "AAPL", -0.5, 0.2, 0.5),
		},
	}}
	min := 0.5

	out, err := newTestTool(&stubScorer{}, src).Analyze(context.Background(), entity.SentimentAnalysisInput{
		Ticker:            "AAPL",
		MinRelevanceScore: &min,
	})
	require.NoError(t, err)

	require.Len(t, out.Contents, 1)
	assert.Equal(t, "keep", out.Contents[0].Content.ContentID)
}

func TestAnalyzeRejectsInvalidRequest(t *testing.T) {
	_, err := newTestTool(&stubScorer{}).Analyze(context.Background(), entity.SentimentAnalysisInput{Ticker: "  "})
	assert.ErrorIs(t, err, entity.ErrInvalidTicker)
}

func TestRunFallsBackToShortWindow(t *testing.T) {
	src := &fakeSource{name: "alpha_vantage", scored: true}

	out, err := newTestTool(&stubScorer{}, src).Run(context.Background(), "AAPL", "fortnight", 5)
	require.NoError(t, err)

	require.NotNil(t, out.TimeWindow)
	assert.Equal(t, entity.TimeWindowShort, *out.TimeWindow)
	assert.Equal(t, testNow.AddDate(0, 0, -7), src.gotStart)
}

func TestParseWindowOrDefault(t *testing.T) {
	assert.Equal(t, entity.TimeWindowLong, ParseWindowOrDefault("long-term"))
	assert.Equal(t, entity.TimeWindowShort, ParseWindowOrDefault(""))
	assert.Equal(t, entity.TimeWindowShort, ParseWindowOrDefault("weekly"))
}

func TestSourceNames(t *testing.T) {
	tool := newTestTool(&stubScorer{}, &fakeSource{name: "a"}, &fakeSource{name: "b"})
	assert.Equal(t, []string{"a", "b"}, tool.SourceNames())
}
