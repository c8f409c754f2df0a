package repository

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewStockNewsRepository creates a new instance of StockNewsRepository.
func NewStockNewsRepository(db *gorm.DB) StockNewsRepository {
	return &stockNewsRepository{
		db: db,
	}
}

type stockNewsRepository struct {
	db *gorm.DB
}

// FindMentions returns archived mentions of ticker published within [start, end],
// heaviest (relevance × impact) first.
func (r *stockNewsRepository) FindMentions(ctx context.Context, ticker string, start, end time.Time, limit int) ([]entity.ArchivedMention, error) {
	var rows []entity.ArchivedMention

	err := r.db.WithContext(ctx).Raw(`
	SELECT
		sm.*,
		sn.hash_identifier,
		sn.title,
		sn.link,
		sn.published_at,
		sn.summary,
		sn.raw_content,
		sn.source,
		sn.source_type,
		sn.source_url,
		sn.authors,
		sn.metadata
	FROM stock_mentions AS sm
	JOIN stock_news AS sn ON sn.id = sm.stock_news_id
	WHERE sm.stock_code = ?
	AND sn.published_at BETWEEN ? AND ?
	ORDER BY sm.relevance_score * sm.impact_score DESC, sm.scored_at DESC
	LIMIT ?`, ticker, start, end, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query archived mentions: %w", err)
	}

	return rows, nil
}

// CreateIgnoreConflict stores an article and its mentions. An article that already
// exists (same hash_identifier) keeps its row and gets its mentions upserted.
func (r *stockNewsRepository) CreateIgnoreConflict(ctx context.Context, stockNews *entity.StockNews) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stockMentions := stockNews.StockMentions
		stockNews.StockMentions = nil

		txInner := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash_identifier"}},
			DoNothing: true,
		}).Create(stockNews)
		if txInner.Error != nil {
			return fmt.Errorf("insert stock_news error: %w", txInner.Error)
		}

		if txInner.RowsAffected == 0 {
			var existing entity.StockNews
			if err := tx.Select("id").Where("hash_identifier = ?", stockNews.HashIdentifier).First(&existing).Error; err != nil {
				return fmt.Errorf("lookup existing stock_news error: %w", err)
			}
			stockNews.ID = existing.ID
		}

		if len(stockMentions) == 0 {
			return nil
		}
		for i := range stockMentions {
			stockMentions[i].StockNewsID = stockNews.ID
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stock_news_id"}, {Name: "stock_code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sentiment_score", "relevance_score", "impact_score", "confidence", "reasoning", "model_name", "scored_at",
			}),
		}).Create(&stockMentions).Error; err != nil {
			return fmt.Errorf("insert stock_mentions error: %w", err)
		}
		stockNews.StockMentions = stockMentions
		return nil
	})
}
