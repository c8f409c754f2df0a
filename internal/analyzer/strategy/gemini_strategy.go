package strategy

import (
	"context"
	"fmt"

	"golang-stock-sentiment/internal/analyzer/repository"
)

// GeminiModelStrategy classifies with an LLM prompt.
type GeminiModelStrategy struct {
	repo   repository.AIRepository
	device Device
	labels map[string]float64
}

// NewGeminiModelStrategy creates a strategy on top of repo.
func NewGeminiModelStrategy(repo repository.AIRepository, device Device) *GeminiModelStrategy {
	return &GeminiModelStrategy{repo: repo, device: device, labels: FinancialLabelMapping()}
}

// RegisterGeminiModel registers "gemini/<model>" on f and returns the model type.
func RegisterGeminiModel(f *ModelFactory, repo repository.AIRepository) ModelType {
	modelType := ModelType(GeminiModelPrefix + repo.ModelName())
	f.Register(modelType, func(device Device) (SentimentModelStrategy, error) {
		return NewGeminiModelStrategy(repo, device), nil
	})
	return modelType
}

func (s *GeminiModelStrategy) ModelName() string { return GeminiModelPrefix + s.repo.ModelName() }

func (s *GeminiModelStrategy) LabelMapping() map[string]float64 { return s.labels }

// Device is informational only; inference runs remotely.
func (s *GeminiModelStrategy) Device() Device { return s.device }

func (s *GeminiModelStrategy) Predict(ctx context.Context, texts []string) ([]SentimentResult, error) {
	if len(texts) == 0 {
		return []SentimentResult{}, nil
	}

	classifications, err := s.repo.ClassifySentiment(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to classify with %s: %w", s.ModelName(), err)
	}
	if len(classifications) != len(texts) {
		return nil, fmt.Errorf("%s returned %d classifications for %d texts", s.ModelName(), len(classifications), len(texts))
	}

	results := make([]SentimentResult, len(texts))
	for i, c := range classifications {
		results[i] = newSentimentResult(c.Label, c.Confidence, s.labels)
	}
	return results, nil
}
