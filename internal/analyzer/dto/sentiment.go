package dto

import (
	"time"

	"golang-stock-sentiment/internal/entity"
)

// ScoreRequest is the body of POST /sentiment/score.
type ScoreRequest struct {
	Ticker string      `json:"ticker"`
	Items  []ScoreItem `json:"items"`
}

// ScoreItem is one raw item to score.
type ScoreItem struct {
	Title       string            `json:"title"`
	Summary     string            `json:"summary"`
	Body        string            `json:"body"`
	URL         string            `json:"url"`
	Source      string            `json:"source"`
	SourceType  string            `json:"source_type"`
	PublishedAt *time.Time        `json:"published_at"`
	Metadata    map[string]string `json:"metadata"`
}

// ScoreResponse returns scored items in request order.
type ScoreResponse struct {
	Ticker string                          `json:"ticker"`
	Items  []entity.SentimentContentScored `json:"items"`
}

// AggregateRequest is the body of POST /sentiment/aggregate.
type AggregateRequest struct {
	Items []entity.SentimentContentScored `json:"items"`
}

// AggregateResponse mirrors the aggregator output.
type AggregateResponse struct {
	SentimentScore float64                         `json:"sentiment_score"`
	RelevanceScore float64                         `json:"relevance_score"`
	ImpactScore    float64                         `json:"impact_score"`
	Breakdown      entity.SentimentBreakdown       `json:"breakdown"`
	TopDrivers     []entity.SentimentContentScored `json:"top_drivers"`
}

// AnalyzeRequest is the body of POST /sentiment/analyze. Either TimeWindow or both
// StartTime and EndTime must be set; with neither the short window is used. Contents,
// when given, are analyzed instead of fetching from the sources.
type AnalyzeRequest struct {
	Ticker            string                          `json:"ticker"`
	TimeWindow        string                          `json:"time_window"`
	StartTime         *time.Time                      `json:"start_time"`
	EndTime           *time.Time                      `json:"end_time"`
	Limit             int                             `json:"limit"`
	MinRelevanceScore *float64                        `json:"min_relevance_score"`
	Sources           []string                        `json:"sources"`
	Contents          []entity.SentimentContentScored `json:"contents"`
}
