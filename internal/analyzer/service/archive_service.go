package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"gorm.io/datatypes"
)

// ArchiveService stores scored report contents in the news archive.
type ArchiveService struct {
	repo   repository.StockNewsRepository
	logger *logger.Logger
}

// NewArchiveService creates an ArchiveService.
func NewArchiveService(repo repository.StockNewsRepository, log *logger.Logger) *ArchiveService {
	return &ArchiveService{repo: repo, logger: log}
}

// ArchiveReport stores every content item of report with its mention scores and returns
// how many were stored. Failed items do not stop the rest; their errors are joined.
func (s *ArchiveService) ArchiveReport(ctx context.Context, report *entity.SentimentReport) (int, error) {
	var errs []error
	stored := 0
	for _, item := range report.Contents {
		news, err := stockNewsFromScored(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.repo.CreateIgnoreConflict(ctx, news); err != nil {
			s.logger.Error("Failed to archive stock news",
				logger.StringField("content_id", item.Content.ContentID),
				logger.ErrorField(err),
			)
			errs = append(errs, fmt.Errorf("failed to archive %s: %w", item.Content.ContentID, err))
			continue
		}
		stored++
	}

	s.logger.Info("Archived report contents",
		logger.StringField("ticker", report.Ticker),
		logger.IntField("stored", stored),
		logger.IntField("failed", len(errs)),
	)
	return stored, errors.Join(errs...)
}

func stockNewsFromScored(item entity.SentimentContentScored) (*entity.StockNews, error) {
	c := item.Content
	var metadata datatypes.JSON
	if len(c.Metadata) > 0 {
		raw, err := json.Marshal(c.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata of %s: %w", c.ContentID, err)
		}
		metadata = raw
	}

	var authors []string
	if a := strings.TrimSpace(c.Metadata["authors"]); a != "" {
		authors = strings.Split(a, ",")
	}

	return &entity.StockNews{
		Title:          c.Title,
		Link:           c.URL,
		PublishedAt:    c.PublishedAt,
		Summary:        c.Summary,
		RawContent:     c.Body,
		HashIdentifier: c.ContentID,
		Source:         c.Source,
		SourceType:     string(c.SourceType),
		SourceURL:      c.SourceURL,
		Authors:        authors,
		Metadata:       metadata,
		StockMentions: []entity.StockMention{{
			StockCode:      c.Ticker,
			SentimentScore: item.SentimentScore,
			RelevanceScore: item.RelevanceScore,
			ImpactScore:    item.ImpactScore,
			Confidence:     item.Confidence,
			Reasoning:      item.Reasoning,
			ModelName:      item.ModelName,
			ScoredAt:       item.ScoredAt,
		}},
	}, nil
}
