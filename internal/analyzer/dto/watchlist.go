package dto

import (
	"time"
)

// WatchlistRunResponse is the DTO for API responses containing watchlist run details.
type WatchlistRunResponse struct {
	ID             uint      `json:"id"`
	Ticker         string    `json:"ticker"`
	Status         string    `json:"status"`
	ExecutedAt     time.Time `json:"executed_at"`
	Duration       int64     `json:"duration_ms"`
	MarketTrend    string    `json:"market_trend,omitempty"`
	Signal         string    `json:"signal,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	ItemCount      int       `json:"item_count"`
	Output         string    `json:"output,omitempty"`
}
