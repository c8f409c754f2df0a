package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang-stock-sentiment/internal/analyzer/strategy"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/metrics"
	"golang-stock-sentiment/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// Scorer turns raw content into scored content, preserving input order.
type Scorer interface {
	ScoreBatch(ctx context.Context, contents []entity.SentimentContent) ([]entity.SentimentContentScored, error)
	ModelName() string
}

// Option customizes a SentimentScoringPipeline.
type Option func(*SentimentScoringPipeline)

// WithClock overrides the time source used for freshness and scored_at.
func WithClock(now func() time.Time) Option {
	return func(p *SentimentScoringPipeline) {
		p.now = now
	}
}

// SentimentScoringPipeline classifies content and attaches relevance and impact heuristics.
type SentimentScoringPipeline struct {
	cfg      ScoringConfig
	strategy strategy.SentimentModelStrategy
	logger   *logger.Logger
	now      func() time.Time
}

// NewSentimentScoringPipeline validates cfg and resolves the strategy through factory.
func NewSentimentScoringPipeline(cfg ScoringConfig, factory *strategy.ModelFactory, log *logger.Logger, opts ...Option) (*SentimentScoringPipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	s, err := factory.GetStrategy(cfg.ModelType, cfg.Device)
	if err != nil {
		return nil, err
	}

	p := &SentimentScoringPipeline{
		cfg:      cfg,
		strategy: s,
		logger:   log,
		now:      utils.TimeNowUTC,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ModelName returns the name of the classification strategy.
func (p *SentimentScoringPipeline) ModelName() string {
	return p.strategy.ModelName()
}

// Config returns the pipeline configuration.
func (p *SentimentScoringPipeline) Config() ScoringConfig {
	return p.cfg
}

// Score scores a single item.
func (p *SentimentScoringPipeline) Score(ctx context.Context, content entity.SentimentContent) (entity.SentimentContentScored, error) {
	scored, err := p.ScoreBatch(ctx, []entity.SentimentContent{content})
	if err != nil {
		return entity.SentimentContentScored{}, err
	}
	return scored[0], nil
}

// ScoreBatch scores contents. Chunks of BatchSize are classified concurrently and
// written back by index, so output order matches input order. A classification
// error fails the whole batch.
func (p *SentimentScoringPipeline) ScoreBatch(ctx context.Context, contents []entity.SentimentContent) ([]entity.SentimentContentScored, error) {
	if len(contents) == 0 {
		return []entity.SentimentContentScored{}, nil
	}

	texts := make([]string, len(contents))
	for i, c := range contents {
		texts[i] = prepareText(c, p.cfg.Truncation, p.cfg.MaxChars())
	}

	predictions, err := p.classify(ctx, texts)
	if err != nil {
		return nil, err
	}

	scoredAt := p.now().UTC()
	out := make([]entity.SentimentContentScored, len(contents))
	for i, c := range contents {
		mentions := countTickerMentions(c.Ticker, texts[i])
		relevance := p.relevanceScore(mentions, texts[i])
		impact := p.impactScore(c.PublishedAt, texts[i], scoredAt)
		confidence := predictions[i].Score

		scored, err := entity.NewSentimentContentScored(entity.SentimentContentScored{
			Content:        c,
			SentimentScore: utils.Clamp(predictions[i].SentimentScore, -1, 1),
			RelevanceScore: relevance,
			ImpactScore:    impact,
			Confidence:     &confidence,
			Reasoning:      buildReasoning(c.Ticker, predictions[i], relevance, impact, mentions),
			ModelName:      p.strategy.ModelName(),
			ScoredAt:       scoredAt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build scored content %s: %w", c.ContentID, err)
		}
		out[i] = scored
	}

	p.logger.Debug("Scored content batch",
		logger.IntField("count", len(out)),
		logger.StringField("model", p.strategy.ModelName()),
	)
	return out, nil
}

func (p *SentimentScoringPipeline) classify(ctx context.Context, texts []string) ([]strategy.SentimentResult, error) {
	results := make([]strategy.SentimentResult, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for start := 0; start < len(texts); start += p.cfg.BatchSize {
		start := start
		end := start + p.cfg.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		g.Go(func() error {
			begin := time.Now()
			chunk, err := p.strategy.Predict(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("failed to classify items %d-%d: %w", start, end-1, err)
			}
			if len(chunk) != end-start {
				return fmt.Errorf("strategy %s returned %d results for %d texts", p.strategy.ModelName(), len(chunk), end-start)
			}
			copy(results[start:end], chunk)
			metrics.RecordClassification(p.strategy.ModelName(), len(chunk), time.Since(begin).Seconds())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *SentimentScoringPipeline) relevanceScore(mentions int, text string) float64 {
	tickerScore := math.Min(1, float64(mentions)/5)
	lengthScore := math.Min(1, float64(runeLen(text))/1000)
	relevance := p.cfg.RelevanceTickerWeight*tickerScore + p.cfg.RelevanceLengthWeight*lengthScore
	return utils.Clamp(math.Max(p.cfg.MinRelevanceScore, relevance), 0, 1)
}

func (p *SentimentScoringPipeline) impactScore(publishedAt *time.Time, text string, now time.Time) float64 {
	lengthScore := math.Min(1, float64(runeLen(text))/2000)
	impact := p.cfg.ImpactFreshnessWeight*freshnessScore(publishedAt, now) + p.cfg.ImpactLengthWeight*lengthScore
	return utils.Clamp(math.Max(p.cfg.MinImpactScore, impact), 0, 1)
}

func buildReasoning(ticker string, prediction strategy.SentimentResult, relevance, impact float64, mentions int) string {
	parts := []string{
		fmt.Sprintf("Sentiment: %s (confidence: %.2f)", prediction.Label, prediction.Score),
		fmt.Sprintf("Relevance: %.2f (ticker mentions + content quality)", relevance),
		fmt.Sprintf("Impact: %.2f (freshness + content depth)", impact),
	}
	if mentions > 0 {
		parts = append(parts, fmt.Sprintf("Ticker '%s' mentioned %dx", ticker, mentions))
	}
	return strings.Join(parts, "; ")
}
