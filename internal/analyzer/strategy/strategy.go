package strategy

import (
	"context"
	"strings"

	"golang-stock-sentiment/pkg/utils"
)

// ModelType identifies a classification backend.
type ModelType string

const (
	// ModelDistilRobertaFinancial is the default financial sentiment model.
	ModelDistilRobertaFinancial ModelType = "msr2903/mrm8488-distilroberta-fine-tuned-financial-sentiment"
	// ModelDistilRobertaNews is the financial news variant of the same architecture.
	ModelDistilRobertaNews ModelType = "mrm8488/distilroberta-finetuned-financial-news-sentiment-analysis"
	// ModelFinBERT is ProsusAI FinBERT.
	ModelFinBERT ModelType = "ProsusAI/finbert"
	// ModelLexicon is the offline keyword classifier.
	ModelLexicon ModelType = "lexicon/financial-keywords"

	DefaultModelType = ModelDistilRobertaFinancial

	// GeminiModelPrefix prefixes Gemini-backed model types, e.g. "gemini/gemini-2.0-flash".
	GeminiModelPrefix = "gemini/"
)

// SentimentResult is one classifier prediction.
type SentimentResult struct {
	Label          string  `json:"label"`
	Score          float64 `json:"score"`
	SentimentScore float64 `json:"sentiment_score"`
}

// SentimentModelStrategy is a classification backend.
type SentimentModelStrategy interface {
	ModelName() string
	LabelMapping() map[string]float64
	Device() Device
	// Predict returns one result per text in input order.
	Predict(ctx context.Context, texts []string) ([]SentimentResult, error)
}

var financialLabelMapping = map[string]float64{
	"negative": -1.0,
	"neutral":  0.0,
	"positive": 1.0,
}

// FinancialLabelMapping returns a copy of the negative/neutral/positive mapping.
func FinancialLabelMapping() map[string]float64 {
	m := make(map[string]float64, len(financialLabelMapping))
	for k, v := range financialLabelMapping {
		m[k] = v
	}
	return m
}

// newSentimentResult lowercases the label, rounds the confidence to 2 decimals and
// maps unknown labels to 0.
func newSentimentResult(label string, confidence float64, mapping map[string]float64) SentimentResult {
	l := strings.ToLower(strings.TrimSpace(label))
	return SentimentResult{
		Label:          l,
		Score:          utils.Round2(utils.Clamp(confidence, 0, 1)),
		SentimentScore: mapping[l],
	}
}
