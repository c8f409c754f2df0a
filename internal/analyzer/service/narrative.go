package service

import (
	"context"
	"fmt"
	"strconv"

	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
)

// NarrativeGenerator writes the human-readable part of a report from its deterministic metrics.
type NarrativeGenerator interface {
	Generate(ctx context.Context, in *entity.SentimentAnalysisInput, trend entity.MarketTrend, signal entity.Signal) (entity.SentimentReportNarrative, error)
}

// DeterministicNarrativeGenerator builds narratives from fixed templates. It never fails.
type DeterministicNarrativeGenerator struct{}

// NewDeterministicNarrativeGenerator creates a DeterministicNarrativeGenerator.
func NewDeterministicNarrativeGenerator() DeterministicNarrativeGenerator {
	return DeterministicNarrativeGenerator{}
}

func (DeterministicNarrativeGenerator) Generate(ctx context.Context, in *entity.SentimentAnalysisInput, trend entity.MarketTrend, signal entity.Signal) (entity.SentimentReportNarrative, error) {
	if len(in.Contents) == 0 {
		return entity.SentimentReportNarrative{
			Summary:    fmt.Sprintf("No recent data available for %s.", in.Ticker),
			Reasoning:  "Sources returned no sentiment-bearing content in the requested window.",
			Highlights: []string{},
			Recommendations: []string{
				fmt.Sprintf("Collect additional news for %s and retry analysis.", in.Ticker),
				"Monitor major wires for fresh headlines in the next interval.",
			},
		}, nil
	}

	highlights := make([]string, 0, len(in.TopDrivers))
	for _, d := range in.TopDrivers {
		if d.Content.Title != "" {
			highlights = append(highlights, d.Content.Title)
		}
	}

	var overall float64
	if in.OverallSentimentScore != nil {
		overall = *in.OverallSentimentScore
	}

	return entity.SentimentReportNarrative{
		Summary: fmt.Sprintf("%s sentiment is %s with signal %s.", in.Ticker, trend, signal),
		Reasoning: fmt.Sprintf("Derived from %d scored items with weighted sentiment %s.",
			len(in.Contents), strconv.FormatFloat(overall, 'f', -1, 64)),
		Highlights: highlights,
		Recommendations: []string{
			fmt.Sprintf("Track how new %s headlines affect the current %s tone.", in.Ticker, trend),
			"Flag large swings in impact or relevance before acting on this signal.",
		},
	}, nil
}

// AINarrativeGenerator asks an LLM for the narrative and falls back to the deterministic
// templates on any failure or incomplete answer, so it never returns an error.
type AINarrativeGenerator struct {
	repo     repository.AIRepository
	fallback NarrativeGenerator
	logger   *logger.Logger
}

// NewAINarrativeGenerator creates an AINarrativeGenerator.
func NewAINarrativeGenerator(repo repository.AIRepository, log *logger.Logger) *AINarrativeGenerator {
	return &AINarrativeGenerator{
		repo:     repo,
		fallback: NewDeterministicNarrativeGenerator(),
		logger:   log,
	}
}

func (g *AINarrativeGenerator) Generate(ctx context.Context, in *entity.SentimentAnalysisInput, trend entity.MarketTrend, signal entity.Signal) (entity.SentimentReportNarrative, error) {
	// Nothing to narrate; the template already says so.
	if len(in.Contents) == 0 {
		return g.fallback.Generate(ctx, in, trend, signal)
	}

	result, err := g.repo.GenerateReportNarrative(ctx, in, trend, signal)
	if err != nil {
		g.logger.Warn("Narrative generation failed, using template",
			logger.StringField("ticker", in.Ticker),
			logger.StringField("model", g.repo.ModelName()),
			logger.ErrorField(err),
		)
		return g.fallback.Generate(ctx, in, trend, signal)
	}
	if result == nil || result.Summary == "" || result.Reasoning == "" {
		g.logger.Warn("Narrative response incomplete, using template", logger.StringField("ticker", in.Ticker))
		return g.fallback.Generate(ctx, in, trend, signal)
	}

	narrative := entity.SentimentReportNarrative{
		Summary:         result.Summary,
		Reasoning:       result.Reasoning,
		Highlights:      result.Highlights,
		Recommendations: result.Recommendations,
	}
	if narrative.Highlights == nil {
		narrative.Highlights = []string{}
	}
	if narrative.Recommendations == nil {
		narrative.Recommendations = []string{}
	}
	return narrative, nil
}
