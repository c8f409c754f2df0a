package repository

import (
	"strings"
	"testing"
	"time"

	"golang-stock-sentiment/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseClassificationResponseOrdersByIndex(t *testing.T) {
	raw := "```json\n{\"results\":[{\"index\":1,\"label\":\"negative\",\"confidence\":0.7},{\"index\":0,\"label\":\"positive\",\"confidence\":0.9}]}\n```"

	got, err := parseClassificationResponse(raw, 2)
	require.NoError(t, err)
	assert.Equal(t, "positive", got[0].Label)
	assert.Equal(t, "negative", got[1].Label)
}

func TestParseClassificationResponseErrors(t *testing.T) {
	_, err := parseClassificationResponse(`{"results":[{"index":0,"label":"positive","confidence":0.9}]}`, 2)
	assert.Error(t, err)

	_, err = parseClassificationResponse(`{"results":[{"index":5,"label":"positive","confidence":0.9}]}`, 1)
	assert.Error(t, err)

	_, err = parseClassificationResponse(`not json`, 1)
	assert.Error(t, err)
}

func TestParseNarrativeResponse(t *testing.T) {
	got, err := parseNarrativeResponse(`{"summary":"AAPL looks firm","reasoning":"r","highlights":["h"],"recommendations":["x"]}`)
	require.NoError(t, err)
	assert.Equal(t, "AAPL looks firm", got.Summary)

	_, err = parseNarrativeResponse(`{"summary":" "}`)
	assert.Error(t, err)
}

func TestExtractTextFromResponse(t *testing.T) {
	assert.Equal(t, "", extractTextFromResponse(nil))

	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: `{"a":`}, {Text: `1}`}}},
	}}}
	assert.Equal(t, `{"a":1}`, extractTextFromResponse(resp))
}

func TestBuildPrompts(t *testing.T) {
	prompt := BuildClassifySentimentPrompt([]string{"Apple beats\nestimates", "Recall announced"})
	assert.Contains(t, prompt, "[0] Apple beats estimates")
	assert.Contains(t, prompt, "[1] Recall announced")

	published := time.Date(2025, 12, 19, 9, 0, 0, 0, time.UTC)
	s, r, i := 0.57, 0.7, 0.7
	in := &entity.SentimentAnalysisInput{
		Ticker:                "AAPL",
		OverallSentimentScore: &s,
		OverallRelevanceScore: &r,
		OverallImpactScore:    &i,
		TopDrivers: []entity.SentimentContentScored{{
			Content:        entity.SentimentContent{Title: "Apple beats", Source: "rss", PublishedAt: &published},
			SentimentScore: 0.9,
		}},
	}
	narrative := BuildReportNarrativePrompt(in, entity.MarketTrendBullish, entity.SignalBuy)
	assert.True(t, strings.Contains(narrative, "Weighted sentiment: 0.57"))
	assert.Contains(t, narrative, "Market trend: bullish")
	assert.Contains(t, narrative, "Signal: buy")
	assert.Contains(t, narrative, `Title: "Apple beats"`)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONResponse(` {"a":1} `))
}
