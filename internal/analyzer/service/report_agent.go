package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/metrics"
	"golang-stock-sentiment/pkg/utils"
)

// Trend and signal thresholds on the aggregate sentiment and impact scores.
const (
	extremeThreshold = 0.6
	bullishThreshold = 0.2
	strongImpact     = 0.6
)

// SentimentAnalysisAgent turns an analysis context into a SentimentReport.
type SentimentAnalysisAgent struct {
	tool      *AnalyzeSentimentTool
	narrative NarrativeGenerator
	logger    *logger.Logger
	now       func() time.Time
}

// NewSentimentAnalysisAgent creates a SentimentAnalysisAgent. A nil narrative
// generator means the deterministic templates.
func NewSentimentAnalysisAgent(tool *AnalyzeSentimentTool, narrative NarrativeGenerator, log *logger.Logger) *SentimentAnalysisAgent {
	if narrative == nil {
		narrative = NewDeterministicNarrativeGenerator()
	}
	return &SentimentAnalysisAgent{
		tool:      tool,
		narrative: narrative,
		logger:    log,
		now:       utils.TimeNowUTC,
	}
}

// Run builds a report for req. Without contents the tool fetches and scores them.
// Supplied contents are narrowed to the request ticker (all of them when none match),
// truncated to the limit and re-aggregated.
func (a *SentimentAnalysisAgent) Run(ctx context.Context, req *entity.SentimentAnalysisInput) (*entity.SentimentReport, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: analysis request is required", entity.ErrInvalidTicker)
	}
	in := *req

	if len(in.Contents) == 0 {
		analyzed, err := a.tool.Analyze(ctx, in)
		if err != nil {
			return nil, err
		}
		return a.assemble(ctx, analyzed)
	}

	if in.TimeWindow == nil && in.StartTime == nil && in.EndTime == nil {
		w := entity.TimeWindowShort
		in.TimeWindow = &w
	}
	if err := in.Validate(a.now()); err != nil {
		return nil, err
	}

	contents := filterByTicker(in.Contents, in.Ticker)
	if len(contents) > in.Limit {
		contents = contents[:in.Limit]
	}
	applyAggregates(&in, contents)
	return a.assemble(ctx, &in)
}

// RunForTicker analyzes ticker from scratch. Unknown windows fall back to short.
func (a *SentimentAnalysisAgent) RunForTicker(ctx context.Context, ticker, timeWindow string, limit int) (*entity.SentimentReport, error) {
	in, err := a.tool.Run(ctx, ticker, timeWindow, limit)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, in)
}

func (a *SentimentAnalysisAgent) assemble(ctx context.Context, in *entity.SentimentAnalysisInput) (*entity.SentimentReport, error) {
	if !in.HasAggregates() {
		applyAggregates(in, in.Contents)
	}

	sentiment := *in.OverallSentimentScore
	impact := *in.OverallImpactScore
	trend := DeriveMarketTrend(sentiment)
	signal := DeriveSignal(sentiment, impact)

	narrative, err := a.narrative.Generate(ctx, in, trend, signal)
	if err != nil {
		a.logger.Warn("Narrative generator failed, using template",
			logger.StringField("ticker", in.Ticker), logger.ErrorField(err))
		narrative, _ = NewDeterministicNarrativeGenerator().Generate(ctx, in, trend, signal)
	}

	var window entity.TimeWindow
	if in.TimeWindow != nil {
		window = *in.TimeWindow
	}

	report, err := entity.NewSentimentReport(entity.SentimentReport{
		Ticker:          in.Ticker,
		TimeWindow:      window,
		TimePeriod:      [2]time.Time{*in.StartTime, *in.EndTime},
		GeneratedAt:     a.now(),
		MarketTrend:     trend,
		Signal:          signal,
		Summary:         narrative.Summary,
		Reasoning:       narrative.Reasoning,
		Highlights:      narrative.Highlights,
		Recommendations: narrative.Recommendations,
		SentimentScore:  sentiment,
		RelevanceScore:  *in.OverallRelevanceScore,
		ImpactScore:     impact,
		Breakdown:       *in.Breakdown,
		Contents:        in.Contents,
		TopDrivers:      in.TopDrivers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build sentiment report: %w", err)
	}

	metrics.RecordReport(string(signal))
	a.logger.Info("Sentiment report generated",
		logger.StringField("ticker", report.Ticker),
		logger.StringField("trend", string(trend)),
		logger.StringField("signal", string(signal)),
		logger.IntField("items", len(report.Contents)),
	)
	return report, nil
}

func filterByTicker(items []entity.SentimentContentScored, ticker string) []entity.SentimentContentScored {
	matched := make([]entity.SentimentContentScored, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Content.Ticker, ticker) {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		return items
	}
	return matched
}

// DeriveMarketTrend buckets an aggregate sentiment score.
func DeriveMarketTrend(sentiment float64) entity.MarketTrend {
	switch {
	case sentiment >= extremeThreshold:
		return entity.MarketTrendGreedy
	case sentiment >= bullishThreshold:
		return entity.MarketTrendBullish
	case sentiment > -bullishThreshold:
		return entity.MarketTrendNeutral
	case sentiment > -extremeThreshold:
		return entity.MarketTrendBearish
	default:
		return entity.MarketTrendFearful
	}
}

// DeriveSignal emits a strong signal when both |sentiment| and impact reach 0.6,
// otherwise a plain signal from the market trend bucket.
func DeriveSignal(sentiment, impact float64) entity.Signal {
	if math.Abs(sentiment) >= extremeThreshold && impact >= strongImpact {
		switch {
		case sentiment > 0:
			return entity.SignalStrongBuy
		case sentiment < 0:
			return entity.SignalStrongSell
		default:
			return entity.SignalHold
		}
	}

	switch DeriveMarketTrend(sentiment) {
	case entity.MarketTrendGreedy, entity.MarketTrendBullish:
		return entity.SignalBuy
	case entity.MarketTrendBearish, entity.MarketTrendFearful:
		return entity.SignalSell
	default:
		return entity.SignalHold
	}
}
