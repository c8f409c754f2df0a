package pipeline

import (
	"fmt"
	"math"
	"strings"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/analyzer/strategy"
)

// Truncation selects how long content is cut down before classification.
type Truncation string

const (
	// TruncationSmart keeps title and summary and fills the rest with body text.
	TruncationSmart Truncation = "smart"
	// TruncationHead keeps the first characters of the combined text.
	TruncationHead Truncation = "head"
)

// charsPerToken approximates English text.
const charsPerToken = 4

const weightSumTolerance = 0.01

// ScoringConfig configures SentimentScoringPipeline.
type ScoringConfig struct {
	ModelType             strategy.ModelType
	Device                strategy.Device
	MaxLength             int
	BatchSize             int
	Concurrency           int
	Truncation            Truncation
	RelevanceTickerWeight float64
	RelevanceLengthWeight float64
	ImpactFreshnessWeight float64
	ImpactLengthWeight    float64
	MinRelevanceScore     float64
	MinImpactScore        float64
}

// DefaultScoringConfig returns the stock tuning.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ModelType:             strategy.DefaultModelType,
		MaxLength:             512,
		BatchSize:             8,
		Concurrency:           2,
		Truncation:            TruncationSmart,
		RelevanceTickerWeight: 0.7,
		RelevanceLengthWeight: 0.3,
		ImpactFreshnessWeight: 0.6,
		ImpactLengthWeight:    0.4,
		MinRelevanceScore:     0.1,
		MinImpactScore:        0.1,
	}
}

// NewScoringConfig maps service configuration onto a validated ScoringConfig.
func NewScoringConfig(cfg config.Scoring) (ScoringConfig, error) {
	device, _, err := strategy.ParseDevice(cfg.Device)
	if err != nil {
		return ScoringConfig{}, err
	}
	sc := ScoringConfig{
		ModelType:             strategy.ModelType(strings.TrimSpace(cfg.ModelType)),
		Device:                device,
		MaxLength:             cfg.MaxLength,
		BatchSize:             cfg.BatchSize,
		Concurrency:           cfg.Concurrency,
		Truncation:            Truncation(strings.ToLower(strings.TrimSpace(cfg.Truncation))),
		RelevanceTickerWeight: cfg.RelevanceTickerWeight,
		RelevanceLengthWeight: cfg.RelevanceLengthWeight,
		ImpactFreshnessWeight: cfg.ImpactFreshnessWeight,
		ImpactLengthWeight:    cfg.ImpactLengthWeight,
		MinRelevanceScore:     cfg.MinRelevanceScore,
		MinImpactScore:        cfg.MinImpactScore,
	}
	if sc.ModelType == "" {
		sc.ModelType = strategy.DefaultModelType
	}
	if sc.Concurrency == 0 {
		sc.Concurrency = 1
	}
	if err := sc.Validate(); err != nil {
		return ScoringConfig{}, err
	}
	return sc, nil
}

// Validate checks ranges and weight sums.
func (c ScoringConfig) Validate() error {
	if c.MaxLength <= 0 {
		return fmt.Errorf("max_length must be positive, got %d", c.MaxLength)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Truncation != TruncationSmart && c.Truncation != TruncationHead {
		return fmt.Errorf("truncation must be %q or %q, got %q", TruncationSmart, TruncationHead, c.Truncation)
	}
	if err := checkWeightPair("relevance", c.RelevanceTickerWeight, c.RelevanceLengthWeight); err != nil {
		return err
	}
	if err := checkWeightPair("impact", c.ImpactFreshnessWeight, c.ImpactLengthWeight); err != nil {
		return err
	}
	if c.MinRelevanceScore < 0 || c.MinRelevanceScore > 1 {
		return fmt.Errorf("min_relevance_score must be within [0, 1], got %v", c.MinRelevanceScore)
	}
	if c.MinImpactScore < 0 || c.MinImpactScore > 1 {
		return fmt.Errorf("min_impact_score must be within [0, 1], got %v", c.MinImpactScore)
	}
	return nil
}

func checkWeightPair(name string, a, b float64) error {
	if a < 0 || b < 0 {
		return fmt.Errorf("%s weights must be non-negative, got %v and %v", name, a, b)
	}
	if sum := a + b; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%s weights must sum to 1.0, got %.4f", name, sum)
	}
	return nil
}

// MaxChars is the character budget derived from MaxLength.
func (c ScoringConfig) MaxChars() int {
	return c.MaxLength * charsPerToken
}
