package repository

import (
	"context"
	"time"

	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/internal/entity"
)

// AIRepository defines the LLM-backed operations.
type AIRepository interface {
	ModelName() string
	ClassifySentiment(ctx context.Context, texts []string) ([]dto.SentimentClassification, error)
	GenerateReportNarrative(ctx context.Context, in *entity.SentimentAnalysisInput, trend entity.MarketTrend, signal entity.Signal) (*dto.ReportNarrativeResult, error)
}

// HuggingFaceRepository classifies texts through a hosted text-classification model.
// The result holds one label distribution per input text, in input order.
type HuggingFaceRepository interface {
	Classify(ctx context.Context, model string, texts []string, device string) ([][]dto.HFLabelScore, error)
}

// AlphaVantageRepository fetches the NEWS_SENTIMENT feed.
type AlphaVantageRepository interface {
	FetchNewsSentiment(ctx context.Context, ticker string, start, end time.Time) (*dto.AlphaVantageNewsResponse, error)
}

// ScoreCacheRepository stores scored items keyed by model and content id.
type ScoreCacheRepository interface {
	GetMany(ctx context.Context, model string, contentIDs []string) (map[string]entity.SentimentContentScored, error)
	SetMany(ctx context.Context, model string, items []entity.SentimentContentScored, ttl time.Duration) error
}

// StockNewsRepository reads and writes the news archive.
type StockNewsRepository interface {
	FindMentions(ctx context.Context, ticker string, start, end time.Time, limit int) ([]entity.ArchivedMention, error)
	CreateIgnoreConflict(ctx context.Context, stockNews *entity.StockNews) error
}

// WatchlistRunRepository defines the interface for watchlist run history.
type WatchlistRunRepository interface {
	Create(ctx context.Context, run *entity.WatchlistRun) error
	FindByID(ctx context.Context, id uint) (*entity.WatchlistRun, error)
	FindRecent(ctx context.Context, ticker string, limit int) ([]entity.WatchlistRun, error)
}
