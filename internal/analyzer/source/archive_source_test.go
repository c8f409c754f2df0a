package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeStockNewsRepository struct {
	rows      []entity.ArchivedMention
	err       error
	gotTicker string
	gotLimit  int
	created   []*entity.StockNews
}

func (f *fakeStockNewsRepository) FindMentions(ctx context.Context, ticker string, start, end time.Time, limit int) ([]entity.ArchivedMention, error) {
	f.gotTicker, f.gotLimit = ticker, limit
	return f.rows, f.err
}

func (f *fakeStockNewsRepository) CreateIgnoreConflict(ctx context.Context, stockNews *entity.StockNews) error {
	f.created = append(f.created, stockNews)
	return f.err
}

func TestArchiveSourceRebuildsScoredItems(t *testing.T) {
	published := time.Date(2025, 12, 18, 9, 0, 0, 0, time.UTC)
	confidence := 0.8
	repo := &fakeStockNewsRepository{rows: []entity.ArchivedMention{
		{
			StockMention: entity.StockMention{
				StockNewsID:    7,
				StockCode:      "AAPL",
				SentimentScore: 0.4,
				RelevanceScore: 0.6,
				ImpactScore:    0.5,
				Confidence:     &confidence,
				Reasoning:      "stored",
				ModelName:      "ProsusAI/finbert",
				ScoredAt:       published.Add(time.Hour),
			},
			HashIdentifier: "google_news_abc",
			Title:          "Archived story",
			Link:           "https://example.com/archived",
			PublishedAt:    &published,
			Source:         "google_news",
			SourceType:     "news",
			Metadata:       datatypes.JSON(`{"rss_source":"Reuters"}`),
		},
		{
			StockMention:   entity.StockMention{StockNewsID: 8, StockCode: "AAPL", SentimentScore: 3},
			HashIdentifier: "broken",
			Title:          "Out of range score",
		},
	}}
	src := NewArchiveSource(repo, logger.NewNop())

	res, err := src.Fetch(context.Background(), "aapl", windowStart, windowEnd, 0)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", repo.gotTicker)
	assert.Equal(t, entity.DefaultAnalysisLimit, repo.gotLimit)
	require.Len(t, res.Scored, 1)

	item := res.Scored[0]
	assert.Equal(t, "google_news_abc", item.Content.ContentID)
	assert.Equal(t, "google_news", item.Content.Source)
	assert.Equal(t, "Reuters", item.Content.Metadata["rss_source"])
	assert.Equal(t, 0.4, item.SentimentScore)
	assert.Equal(t, "ProsusAI/finbert", item.ModelName)
	require.NotNil(t, item.Confidence)
	assert.Equal(t, 0.8, *item.Confidence)
}

func TestArchiveSourcePropagatesErrors(t *testing.T) {
	src := NewArchiveSource(&fakeStockNewsRepository{err: errors.New("connection reset")}, logger.NewNop())
	_, err := src.Fetch(context.Background(), "AAPL", windowStart, windowEnd, 5)
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, ArchiveSourceName, src.SourceName())
}

func TestArchivedMentionToScoredDefaults(t *testing.T) {
	item, err := ArchivedMentionToScored(entity.ArchivedMention{
		StockMention: entity.StockMention{StockCode: "msft", RelevanceScore: 0.5, ImpactScore: 0.5},
		Title:        "No source recorded",
		SourceType:   "podcast",
	})
	require.NoError(t, err)
	assert.Equal(t, ArchiveSourceName, item.Content.Source)
	assert.Equal(t, entity.SourceTypeOther, item.Content.SourceType)
	assert.Equal(t, "MSFT", item.Content.Ticker)
	assert.NotEmpty(t, item.Content.ContentID)
}
