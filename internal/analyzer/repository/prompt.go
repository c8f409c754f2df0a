package repository

import (
	"fmt"
	"strings"

	"golang-stock-sentiment/internal/entity"
)

// BuildClassifySentimentPrompt asks for one financial sentiment label per text.
func BuildClassifySentimentPrompt(texts []string) string {
	var itemsBuilder strings.Builder
	for i, text := range texts {
		itemsBuilder.WriteString(fmt.Sprintf("[%d] %s\n\n", i, strings.ReplaceAll(text, "\n", " ")))
	}

	return fmt.Sprintf(`You are a financial news sentiment classifier. Classify the market sentiment of every text below from an investor's point of view.

Rules:
- label must be exactly one of "positive", "neutral" or "negative"
- confidence is a number between 0.0 and 1.0
- return one result per text, using the index shown in brackets
- respond with JSON only

Texts:
%s
Respond with this JSON structure:
{
  "results": [
    {"index": 0, "label": "positive | neutral | negative", "confidence": <float 0.0-1.0>}
  ]
}`, itemsBuilder.String())
}

// BuildReportNarrativePrompt asks for a narrative consistent with the already computed trend and signal.
func BuildReportNarrativePrompt(in *entity.SentimentAnalysisInput, trend entity.MarketTrend, signal entity.Signal) string {
	var driversBuilder strings.Builder
	for i, d := range in.TopDrivers {
		published := "N/A"
		if d.Content.PublishedAt != nil {
			published = d.Content.PublishedAt.Format("2006-01-02 15:04")
		}
		driversBuilder.WriteString(fmt.Sprintf(
			"%d. Title: %q\n   Source: %s\n   Published At: %s\n   Sentiment: %.2f\n   Relevance: %.2f\n   Impact: %.2f\n",
			i+1, d.Content.Title, d.Content.Source, published, d.SentimentScore, d.RelevanceScore, d.ImpactScore,
		))
	}

	var sentiment, relevance, impact float64
	if in.OverallSentimentScore != nil {
		sentiment = *in.OverallSentimentScore
	}
	if in.OverallRelevanceScore != nil {
		relevance = *in.OverallRelevanceScore
	}
	if in.OverallImpactScore != nil {
		impact = *in.OverallImpactScore
	}
	var positive, negative, neutral int
	if in.Breakdown != nil {
		positive, negative, neutral = in.Breakdown.PositiveCount, in.Breakdown.NegativeCount, in.Breakdown.NeutralCount
	}

	return fmt.Sprintf(`You are an equity research assistant. Write a short sentiment report for %s.

Computed metrics (do not change them):
- Items analysed: %d
- Weighted sentiment: %.2f (scale -1 to 1)
- Average relevance: %.2f
- Average impact: %.2f
- Breakdown: %d positive, %d negative, %d neutral
- Market trend: %s
- Signal: %s

Top drivers:
%s
Respond with JSON only, using this structure:
{
  "summary": "<one paragraph>",
  "reasoning": "<why the metrics lead to the trend and signal>",
  "highlights": ["<short bullet>", "..."],
  "recommendations": ["<short actionable bullet>", "..."]
}`, in.Ticker, len(in.Contents), sentiment, relevance, impact, positive, negative, neutral, trend, signal, driversBuilder.String())
}

// cleanJSONResponse strips a markdown code fence around a JSON payload.
func cleanJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
