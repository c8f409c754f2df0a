package strategy

import (
	"context"
	"fmt"

	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/pkg/logger"
)

// InferenceModelStrategy classifies through a hosted text-classification model.
type InferenceModelStrategy struct {
	model  ModelType
	device Device
	repo   repository.HuggingFaceRepository
	logger *logger.Logger
	labels map[string]float64
}

// NewInferenceModelStrategy creates a strategy for a hosted negative/neutral/positive classifier.
func NewInferenceModelStrategy(model ModelType, device Device, repo repository.HuggingFaceRepository, log *logger.Logger) *InferenceModelStrategy {
	return &InferenceModelStrategy{
		model:  model,
		device: device,
		repo:   repo,
		logger: log,
		labels: FinancialLabelMapping(),
	}
}

// RegisterInferenceModels registers every hosted model type on f.
func RegisterInferenceModels(f *ModelFactory, repo repository.HuggingFaceRepository, log *logger.Logger) {
	for _, m := range []ModelType{ModelDistilRobertaFinancial, ModelDistilRobertaNews, ModelFinBERT} {
		model := m
		f.Register(model, func(device Device) (SentimentModelStrategy, error) {
			if repo == nil {
				return nil, fmt.Errorf("inference repository is not configured")
			}
			log.Info("Loaded inference model", logger.StringField("model", string(model)), logger.StringField("device", string(device)))
			return NewInferenceModelStrategy(model, device, repo, log), nil
		})
	}
}

func (s *InferenceModelStrategy) ModelName() string { return string(s.model) }

func (s *InferenceModelStrategy) LabelMapping() map[string]float64 { return s.labels }

func (s *InferenceModelStrategy) Device() Device { return s.device }

// Predict keeps the highest scoring label of each prediction.
func (s *InferenceModelStrategy) Predict(ctx context.Context, texts []string) ([]SentimentResult, error) {
	if len(texts) == 0 {
		return []SentimentResult{}, nil
	}

	predictions, err := s.repo.Classify(ctx, string(s.model), texts, string(s.device))
	if err != nil {
		return nil, fmt.Errorf("failed to classify with %s: %w", s.model, err)
	}
	if len(predictions) != len(texts) {
		return nil, fmt.Errorf("model %s returned %d predictions for %d texts", s.model, len(predictions), len(texts))
	}

	results := make([]SentimentResult, len(texts))
	for i, labels := range predictions {
		if len(labels) == 0 {
			return nil, fmt.Errorf("model %s returned no label for text %d", s.model, i)
		}
		best := labels[0]
		for _, l := range labels[1:] {
			if l.Score > best.Score {
				best = l
			}
		}
		results[i] = newSentimentResult(best.Label, best.Score, s.labels)
	}
	return results, nil
}
