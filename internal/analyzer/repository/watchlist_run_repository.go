package repository

import (
	"context"

	"golang-stock-sentiment/internal/entity"

	"gorm.io/gorm"
)

// NewWatchlistRunRepository creates a new GORM-based watchlist run repository.
func NewWatchlistRunRepository(db *gorm.DB) WatchlistRunRepository {
	return &watchlistRunRepository{db: db}
}

type watchlistRunRepository struct {
	db *gorm.DB
}

// Create creates a new watchlist run record.
func (r *watchlistRunRepository) Create(ctx context.Context, run *entity.WatchlistRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// FindByID retrieves a watchlist run record by its ID.
func (r *watchlistRunRepository) FindByID(ctx context.Context, id uint) (*entity.WatchlistRun, error) {
	var run entity.WatchlistRun
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// FindRecent retrieves the latest runs, newest first. An empty ticker matches all.
func (r *watchlistRunRepository) FindRecent(ctx context.Context, ticker string, limit int) ([]entity.WatchlistRun, error) {
	var runs []entity.WatchlistRun
	q := r.db.WithContext(ctx).Order("executed_at desc").Limit(limit)
	if ticker != "" {
		q = q.Where("ticker = ?", ticker)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
