package pipeline

import (
	"testing"
	"time"

	"golang-stock-sentiment/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredItem(id string, sentiment, relevance, impact float64, scoredAt time.Time) entity.SentimentContentScored {
	return entity.SentimentContentScored{
		Content:        entity.SentimentContent{ContentID: id, Ticker: "AAPL", Title: id},
		SentimentScore: sentiment,
		RelevanceScore: relevance,
		ImpactScore:    impact,
		ScoredAt:       scoredAt,
	}
}

func TestAggregateEmpty(t *testing.T) {
	res := Aggregate(nil)
	assert.Equal(t, 0.0, res.SentimentScore)
	assert.Equal(t, 0, res.Breakdown.Total())
	assert.NotNil(t, res.TopDrivers)
	assert.Empty(t, res.TopDrivers)
}

func TestAggregateWeightedMean(t *testing.T) {
	items := []entity.SentimentContentScored{
		scoredItem("a", 1.0, 1.0, 1.0, fixedNow),
		scoredItem("b", -0.5, 0.5, 0.2, fixedNow),
	}
	res := Aggregate(items)
	assert.Equal(t, 0.86, res.SentimentScore)
	assert.Equal(t, 0.75, res.RelevanceScore)
	assert.Equal(t, 0.6, res.ImpactScore)
	assert.Equal(t, 1, res.Breakdown.PositiveCount)
	assert.Equal(t, 1, res.Breakdown.NegativeCount)
	assert.Equal(t, 0, res.Breakdown.NeutralCount)
	assert.InDelta(t, 0.5, res.Breakdown.PositiveRatio, 1e-9)
}

func TestAggregateZeroWeightFallsBackToPlainMean(t *testing.T) {
	items := []entity.SentimentContentScored{
		scoredItem("a", 1.0, 0, 0.4, fixedNow),
		scoredItem("b", -0.5, 0.7, 0, fixedNow),
	}
	res := Aggregate(items)
	assert.Equal(t, 0.25, res.SentimentScore)

	items = []entity.SentimentContentScored{
		scoredItem("a", 1.0, 0, 0, fixedNow),
		scoredItem("b", 0, 0, 0, fixedNow),
	}
	res = Aggregate(items)
	assert.Equal(t, 0.5, res.SentimentScore)
	assert.Equal(t, 1, res.Breakdown.NeutralCount)
}

func TestAggregateTopDriverOrdering(t *testing.T) {
	items := []entity.SentimentContentScored{
		scoredItem("low", 0.1, 0.1, 0.1, fixedNow),
		scoredItem("high", 0.9, 0.9, 0.9, fixedNow),
		scoredItem("mid", -0.3, 0.5, 0.5, fixedNow),
	}
	res := Aggregate(items)
	require.Len(t, res.TopDrivers, 3)
	assert.Equal(t, "high", res.TopDrivers[0].Content.ContentID)
	assert.Equal(t, "mid", res.TopDrivers[1].Content.ContentID)
	assert.Equal(t, "low", res.TopDrivers[2].Content.ContentID)

	// input order untouched
	assert.Equal(t, "low", items[0].Content.ContentID)
	assert.Equal(t, "high", items[1].Content.ContentID)
}

func TestAggregateTopDriversCappedAndTieBrokenByRecency(t *testing.T) {
	var items []entity.SentimentContentScored
	for i := 0; i < 7; i++ {
		id := string(rune('a' + i))
		items = append(items, scoredItem(id, 0.2, 0.5, 0.5, fixedNow.Add(time.Duration(i)*time.Minute)))
	}
	res := Aggregate(items)
	require.Len(t, res.TopDrivers, TopDriverCount)
	assert.Equal(t, "g", res.TopDrivers[0].Content.ContentID)
	assert.Equal(t, "c", res.TopDrivers[4].Content.ContentID)
}

func TestAggregateRoundsToTwoDecimals(t *testing.T) {
	items := []entity.SentimentContentScored{
		scoredItem("a", 0.333, 0.333, 0.777, fixedNow),
	}
	res := Aggregate(items)
	assert.Equal(t, 0.33, res.SentimentScore)
	assert.Equal(t, 0.33, res.RelevanceScore)
	assert.Equal(t, 0.78, res.ImpactScore)
}

func TestAggregateDriversDoNotShareInput(t *testing.T) {
	item := scoredItem("a", 0.5, 0.8, 0.8, fixedNow)
	item.Content.Metadata = map[string]string{"author": "jane"}
	items := []entity.SentimentContentScored{item}

	res := Aggregate(items)
	require.Len(t, res.TopDrivers, 1)
	res.TopDrivers[0].Content.Metadata["author"] = "edited"

	assert.Equal(t, "jane", items[0].Content.Metadata["author"])
}
