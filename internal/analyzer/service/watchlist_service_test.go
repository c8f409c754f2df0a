package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/analyzer/source"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickerSource returns one raw item for the configured ticker and nothing otherwise.
type tickerSource struct {
	ticker string
}

func (s tickerSource) SourceName() string  { return "raw" }
func (s tickerSource) ReturnsScored() bool { return false }

func (s tickerSource) Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (source.FetchResult, error) {
	if ticker != s.ticker {
		return source.FetchResult{}, nil
	}
	return source.FetchResult{Raw: []entity.SentimentContent{rawContent("raw-1", ticker, "Headline", testNow)}}, nil
}

type fakeRunRepository struct {
	runs []*entity.WatchlistRun
}

func (f *fakeRunRepository) Create(ctx context.Context, run *entity.WatchlistRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepository) FindByID(ctx context.Context, id uint) (*entity.WatchlistRun, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRunRepository) FindRecent(ctx context.Context, ticker string, limit int) ([]entity.WatchlistRun, error) {
	return nil, nil
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) SendMessage(text string) error {
	n.messages = append(n.messages, text)
	return nil
}

func newTestWatchlist(t *testing.T, cfg config.Watchlist, archive *ArchiveService, notifier telegram.Notifier, history repository.WatchlistRunRepository) *WatchlistService {
	t.Helper()
	av := &fakeSource{name: "alpha_vantage", scored: true, result: source.FetchResult{
		Scored: []entity.SentimentContentScored{scoredContent("av-1", "AAPL", 0.5, 0.5, 0.5)},
	}}
	tool := NewAnalyzeSentimentTool(
		[]source.ContentSource{av, tickerSource{ticker: "BAD"}},
		&stubScorer{err: errors.New("model offline")},
		logger.NewNop(),
		WithToolClock(testClock),
	)
	agent := NewSentimentAnalysisAgent(tool, nil, logger.NewNop())
	agent.now = testClock

	s, err := NewWatchlistService(cfg, agent, archive, notifier, history, logger.NewNop())
	require.NoError(t, err)
	return s
}

func TestNewWatchlistServiceValidates(t *testing.T) {
	_, err := NewWatchlistService(config.Watchlist{Cron: "@hourly", Tickers: []string{" ", ""}}, nil, nil, nil, nil, logger.NewNop())
	assert.Error(t, err)

	_, err = NewWatchlistService(config.Watchlist{Cron: "every tuesday", Tickers: []string{"AAPL"}}, nil, nil, nil, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestWatchlistRunOnce(t *testing.T) {
	repo := &fakeStockNewsRepository{}
	notifier := &recordingNotifier{}
	history := &fakeRunRepository{}
	s := newTestWatchlist(t, config.Watchlist{
		Cron:       "0 9 * * 1-5",
		Tickers:    []string{"aapl", " bad "},
		TimeWindow: "short",
		Limit:      10,
		Archive:    true,
	}, NewArchiveService(repo, logger.NewNop()), notifier, history)

	reports, err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD")

	require.Len(t, reports, 1)
	assert.Equal(t, "AAPL", reports[0].Ticker)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "av-1", repo.created[0].HashIdentifier)

	require.Len(t, notifier.messages, 2)
	assert.Contains(t, notifier.messages[0], "ERROR ALERT")
	assert.Contains(t, notifier.messages[1], "Watchlist Sentiment Digest")
	assert.True(t, strings.Contains(notifier.messages[1], "AAPL"))

	require.Len(t, history.runs, 2)
	assert.Equal(t, "AAPL", history.runs[0].Ticker)
	assert.Equal(t, entity.WatchlistRunSuccess, history.runs[0].Status)
	assert.Equal(t, "buy", history.runs[0].Signal)
	assert.Equal(t, 1, history.runs[0].ItemCount)
	require.NotNil(t, history.runs[0].SentimentScore)
	assert.InDelta(t, 0.5, *history.runs[0].SentimentScore, 1e-9)
	assert.Equal(t, "BAD", history.runs[1].Ticker)
	assert.Equal(t, entity.WatchlistRunFailed, history.runs[1].Status)
	assert.Contains(t, history.runs[1].Output, "model offline")
}

func TestWatchlistRunOnceWithoutArchiveOrNotifier(t *testing.T) {
	s := newTestWatchlist(t, config.Watchlist{Cron: "@daily", Tickers: []string{"AAPL"}}, nil, nil, nil)

	reports, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
}

func TestWatchlistRunOnceStopsWhenCancelled(t *testing.T) {
	s := newTestWatchlist(t, config.Watchlist{Cron: "@daily", Tickers: []string{"AAPL", "MSFT"}}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := s.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reports)
}
