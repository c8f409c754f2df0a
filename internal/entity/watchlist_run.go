package entity

import "time"

// Watchlist run statuses.
const (
	WatchlistRunSuccess = "success"
	WatchlistRunFailed  = "failed"
)

// WatchlistRun records one scheduled analysis of one ticker.
type WatchlistRun struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Ticker         string    `gorm:"not null" json:"ticker"`
	Status         string    `gorm:"not null" json:"status"`
	ExecutedAt     time.Time `gorm:"not null" json:"executed_at"`
	Duration       int64     `json:"duration_ms"`
	MarketTrend    string    `json:"market_trend,omitempty"`
	Signal         string    `json:"signal,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	ItemCount      int       `json:"item_count"`
	Output         string    `json:"output,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the WatchlistRun model.
func (WatchlistRun) TableName() string {
	return "watchlist_runs"
}
