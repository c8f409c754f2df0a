package entity

import (
	"fmt"
	"strings"
	"time"
)

// SentimentReportNarrative is the human-readable part of a report.
type SentimentReportNarrative struct {
	Summary         string   `json:"summary"`
	Reasoning       string   `json:"reasoning"`
	Highlights      []string `json:"highlights"`
	Recommendations []string `json:"recommendations"`
}

// SentimentReport is the final output of an analysis. It is built once by
// NewSentimentReport and not modified afterwards.
type SentimentReport struct {
	Ticker          string                   `json:"ticker"`
	TimeWindow      TimeWindow               `json:"time_window,omitempty"`
	TimePeriod      [2]time.Time             `json:"time_period"`
	GeneratedAt     time.Time                `json:"generated_at"`
	MarketTrend     MarketTrend              `json:"market_trend"`
	Signal          Signal                   `json:"signal"`
	Summary         string                   `json:"summary"`
	Reasoning       string                   `json:"reasoning"`
	Highlights      []string                 `json:"highlights"`
	Recommendations []string                 `json:"recommendations"`
	SentimentScore  float64                  `json:"sentiment_score"`
	RelevanceScore  float64                  `json:"relevance_score"`
	ImpactScore     float64                  `json:"impact_score"`
	Breakdown       SentimentBreakdown       `json:"breakdown"`
	Contents        []SentimentContentScored `json:"contents"`
	TopDrivers      []SentimentContentScored `json:"top_drivers"`
}

// NewSentimentReport validates score bounds and period ordering.
func NewSentimentReport(r SentimentReport) (*SentimentReport, error) {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	if r.Ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidTicker)
	}
	if err := checkRange("sentiment_score", r.SentimentScore, -1, 1); err != nil {
		return nil, err
	}
	if err := checkRange("relevance_score", r.RelevanceScore, 0, 1); err != nil {
		return nil, err
	}
	if err := checkRange("impact_score", r.ImpactScore, 0, 1); err != nil {
		return nil, err
	}
	r.TimePeriod = [2]time.Time{r.TimePeriod[0].UTC(), r.TimePeriod[1].UTC()}
	if r.TimePeriod[0].After(r.TimePeriod[1]) {
		return nil, fmt.Errorf("%w: report period start is after end", ErrInvalidTimeRange)
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}
	r.GeneratedAt = r.GeneratedAt.UTC()
	if r.Highlights == nil {
		r.Highlights = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	if r.Contents == nil {
		r.Contents = []SentimentContentScored{}
	}
	if r.TopDrivers == nil {
		r.TopDrivers = []SentimentContentScored{}
	}
	return &r, nil
}
