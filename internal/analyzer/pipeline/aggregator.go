package pipeline

import (
	"sort"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/utils"
)

// TopDriverCount is the number of top drivers kept by Aggregate.
const TopDriverCount = 5

// AggregateResult summarizes a set of scored items.
type AggregateResult struct {
	SentimentScore float64
	RelevanceScore float64
	ImpactScore    float64
	Breakdown      entity.SentimentBreakdown
	TopDrivers     []entity.SentimentContentScored
}

// Aggregate combines scored items. Overall sentiment is the weight-weighted mean
// (weight = relevance × impact), falling back to the plain mean when every weight
// is zero. Relevance and impact are plain means. The input slice is not modified.
func Aggregate(items []entity.SentimentContentScored) AggregateResult {
	if len(items) == 0 {
		breakdown, _ := entity.NewSentimentBreakdown(0, 0, 0, nil)
		return AggregateResult{Breakdown: breakdown, TopDrivers: []entity.SentimentContentScored{}}
	}

	var positive, negative, neutral int
	var weighted, totalWeight, sentimentSum, relevanceSum, impactSum float64
	for _, item := range items {
		switch {
		case item.SentimentScore > 0:
			positive++
		case item.SentimentScore < 0:
			negative++
		default:
			neutral++
		}
		w := item.Weight()
		weighted += item.SentimentScore * w
		totalWeight += w
		sentimentSum += item.SentimentScore
		relevanceSum += item.RelevanceScore
		impactSum += item.ImpactScore
	}

	n := float64(len(items))
	sentiment := sentimentSum / n
	if totalWeight > 0 {
		sentiment = weighted / totalWeight
	}

	breakdown, _ := entity.NewSentimentBreakdown(positive, negative, neutral, nil)

	drivers := RankByWeight(items)
	if len(drivers) > TopDriverCount {
		drivers = drivers[:TopDriverCount]
	}

	return AggregateResult{
		SentimentScore: utils.Round2(utils.Clamp(sentiment, -1, 1)),
		RelevanceScore: utils.Round2(relevanceSum / n),
		ImpactScore:    utils.Round2(impactSum / n),
		Breakdown:      breakdown,
		TopDrivers:     drivers,
	}
}

// RankByWeight returns a deep copy of items sorted by weight, then scored_at, both descending.
func RankByWeight(items []entity.SentimentContentScored) []entity.SentimentContentScored {
	ranked := make([]entity.SentimentContentScored, len(items))
	for i, item := range items {
		ranked[i] = item.Clone()
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		wi, wj := ranked[i].Weight(), ranked[j].Weight()
		if wi != wj {
			return wi > wj
		}
		return ranked[i].ScoredAt.After(ranked[j].ScoredAt)
	})
	return ranked
}
