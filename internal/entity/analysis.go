package entity

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-sentiment/pkg/utils"
)

// DefaultAnalysisLimit is the item cap used when a request leaves Limit unset.
const DefaultAnalysisLimit = 50

// SentimentAnalysisInput is both the analysis request and the analysis context
// handed to report assembly once aggregates are filled in.
type SentimentAnalysisInput struct {
	Ticker            string      `json:"ticker"`
	TimeWindow        *TimeWindow `json:"time_window,omitempty"`
	StartTime         *time.Time  `json:"start_time,omitempty"`
	EndTime           *time.Time  `json:"end_time,omitempty"`
	Limit             int         `json:"limit"`
	MinRelevanceScore *float64    `json:"min_relevance_score,omitempty"`
	Sources           []string    `json:"sources,omitempty"`

	Contents              []SentimentContentScored `json:"contents,omitempty"`
	Breakdown             *SentimentBreakdown      `json:"breakdown,omitempty"`
	OverallSentimentScore *float64                 `json:"overall_sentiment_score,omitempty"`
	OverallRelevanceScore *float64                 `json:"overall_relevance_score,omitempty"`
	OverallImpactScore    *float64                 `json:"overall_impact_score,omitempty"`
	TopDrivers            []SentimentContentScored `json:"top_drivers,omitempty"`
}

// Validate normalizes the request in place. Missing bounds are filled from the
// time window, with now as the default end. It fails when the bounds cannot be
// resolved or start is after end.
func (in *SentimentAnalysisInput) Validate(now time.Time) error {
	in.Ticker = strings.ToUpper(strings.TrimSpace(in.Ticker))
	if in.Ticker == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidTicker)
	}

	if in.Limit == 0 {
		in.Limit = DefaultAnalysisLimit
	}
	if in.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", in.Limit)
	}

	if in.MinRelevanceScore != nil {
		if err := checkRange("min_relevance_score", *in.MinRelevanceScore, 0, 1); err != nil {
			return err
		}
	}

	if in.Sources != nil {
		sources := make([]string, len(in.Sources))
		for i, s := range in.Sources {
			sources[i] = strings.ToLower(strings.TrimSpace(s))
		}
		in.Sources = sources
	}

	in.StartTime = utils.UTCPtr(in.StartTime)
	in.EndTime = utils.UTCPtr(in.EndTime)

	if in.TimeWindow != nil {
		if in.EndTime == nil {
			end := now.UTC()
			in.EndTime = &end
		}
		if in.StartTime == nil {
			start, _ := in.TimeWindow.TimeRange(*in.EndTime)
			in.StartTime = &start
		}
	}

	if in.StartTime == nil || in.EndTime == nil {
		return fmt.Errorf("%w: time_window or both start_time and end_time are required", ErrInvalidTimeRange)
	}
	if in.StartTime.After(*in.EndTime) {
		return fmt.Errorf("%w: start_time %s is after end_time %s", ErrInvalidTimeRange,
			in.StartTime.Format(time.RFC3339), in.EndTime.Format(time.RFC3339))
	}
	return nil
}

// HasAggregates reports whether every aggregate field is populated.
func (in *SentimentAnalysisInput) HasAggregates() bool {
	return in.Breakdown != nil &&
		in.OverallSentimentScore != nil &&
		in.OverallRelevanceScore != nil &&
		in.OverallImpactScore != nil &&
		in.TopDrivers != nil
}

// AllowsSource reports whether name passes the Sources allowlist. An empty list allows all.
func (in *SentimentAnalysisInput) AllowsSource(name string) bool {
	if len(in.Sources) == 0 {
		return true
	}
	name = strings.ToLower(name)
	for _, s := range in.Sources {
		if s == name {
			return true
		}
	}
	return false
}
