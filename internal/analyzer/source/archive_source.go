package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

// ArchiveSourceName identifies the postgres news archive source.
const ArchiveSourceName = "news_archive"

// ArchiveSource replays scores stored by earlier runs. Items keep the content id and source
// they were archived with, so they collapse with fresh copies of the same article.
type ArchiveSource struct {
	repo   repository.StockNewsRepository
	logger *logger.Logger
}

// NewArchiveSource creates an ArchiveSource.
func NewArchiveSource(repo repository.StockNewsRepository, log *logger.Logger) *ArchiveSource {
	return &ArchiveSource{repo: repo, logger: log}
}

func (s *ArchiveSource) SourceName() string  { return ArchiveSourceName }
func (s *ArchiveSource) ReturnsScored() bool { return true }

func (s *ArchiveSource) Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (FetchResult, error) {
	ticker = normalizeTicker(ticker)
	if limit <= 0 {
		limit = entity.DefaultAnalysisLimit
	}

	rows, err := s.repo.FindMentions(ctx, ticker, start.UTC(), end.UTC(), limit)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to read news archive: %w", err)
	}

	scored := make([]entity.SentimentContentScored, 0, len(rows))
	for _, row := range rows {
		item, err := ArchivedMentionToScored(row)
		if err != nil {
			s.logger.Warn("Skipping archived mention", logger.IntField("stock_news_id", int(row.StockNewsID)), logger.ErrorField(err))
			continue
		}
		scored = append(scored, item)
	}
	return FetchResult{Scored: scored}, nil
}

// ArchivedMentionToScored rebuilds a scored item from an archive row.
func ArchivedMentionToScored(row entity.ArchivedMention) (entity.SentimentContentScored, error) {
	var metadata map[string]string
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return entity.SentimentContentScored{}, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	source := row.Source
	if source == "" {
		source = ArchiveSourceName
	}
	sourceType, err := entity.ParseSourceType(row.SourceType)
	if err != nil {
		sourceType = entity.SourceTypeOther
	}

	content, err := entity.NewSentimentContent(entity.SentimentContent{
		ContentID:   row.HashIdentifier,
		Ticker:      row.StockCode,
		Source:      source,
		Title:       row.Title,
		Summary:     row.Summary,
		Body:        row.RawContent,
		URL:         row.Link,
		PublishedAt: utils.UTCPtr(row.PublishedAt),
		SourceURL:   row.SourceURL,
		SourceType:  sourceType,
		Metadata:    metadata,
	})
	if err != nil {
		return entity.SentimentContentScored{}, err
	}

	return entity.NewSentimentContentScored(entity.SentimentContentScored{
		Content:        content,
		SentimentScore: row.SentimentScore,
		RelevanceScore: row.RelevanceScore,
		ImpactScore:    row.ImpactScore,
		Confidence:     row.Confidence,
		Reasoning:      row.Reasoning,
		ModelName:      row.ModelName,
		ScoredAt:       row.ScoredAt,
	})
}
