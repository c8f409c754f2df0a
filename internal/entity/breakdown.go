package entity

import (
	"fmt"
	"math"
)

const ratioTolerance = 1e-6

// SentimentBreakdown counts items by sentiment sign.
type SentimentBreakdown struct {
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
	NeutralCount  int     `json:"neutral_count"`
	PositiveRatio float64 `json:"positive_ratio"`
	NegativeRatio float64 `json:"negative_ratio"`
	NeutralRatio  float64 `json:"neutral_ratio"`
}

// BreakdownRatios are caller-supplied ratios for NewSentimentBreakdown.
type BreakdownRatios struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// NewSentimentBreakdown builds a breakdown from counts. When ratios is nil they
// are derived from the counts; otherwise they must sum to 1 (or 0 when there are no items).
func NewSentimentBreakdown(positive, negative, neutral int, ratios *BreakdownRatios) (SentimentBreakdown, error) {
	if positive < 0 || negative < 0 || neutral < 0 {
		return SentimentBreakdown{}, fmt.Errorf("breakdown counts must be non-negative")
	}
	b := SentimentBreakdown{
		PositiveCount: positive,
		NegativeCount: negative,
		NeutralCount:  neutral,
	}
	total := b.Total()

	if ratios == nil {
		if total > 0 {
			b.PositiveRatio = float64(positive) / float64(total)
			b.NegativeRatio = float64(negative) / float64(total)
			b.NeutralRatio = float64(neutral) / float64(total)
		}
		return b, nil
	}

	for _, r := range []float64{ratios.Positive, ratios.Negative, ratios.Neutral} {
		if math.IsNaN(r) || r < 0 || r > 1 {
			return SentimentBreakdown{}, fmt.Errorf("breakdown ratio %v outside [0, 1]", r)
		}
	}
	sum := ratios.Positive + ratios.Negative + ratios.Neutral
	want := 1.0
	if total == 0 {
		want = 0
	}
	if math.Abs(sum-want) > ratioTolerance {
		return SentimentBreakdown{}, fmt.Errorf("breakdown ratios sum to %v, expected %v", sum, want)
	}
	b.PositiveRatio = ratios.Positive
	b.NegativeRatio = ratios.Negative
	b.NeutralRatio = ratios.Neutral
	return b, nil
}

// Total returns the number of counted items.
func (b SentimentBreakdown) Total() int {
	return b.PositiveCount + b.NegativeCount + b.NeutralCount
}
