package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/analyzer/pipeline"
	"golang-stock-sentiment/internal/analyzer/source"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/metrics"
	"golang-stock-sentiment/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// ToolOption customizes an AnalyzeSentimentTool.
type ToolOption func(*AnalyzeSentimentTool)

// WithToolClock overrides the time source used to resolve time windows.
func WithToolClock(now func() time.Time) ToolOption {
	return func(t *AnalyzeSentimentTool) {
		t.now = now
	}
}

// WithSourceTimeout bounds every source fetch. Zero disables the bound.
func WithSourceTimeout(d time.Duration) ToolOption {
	return func(t *AnalyzeSentimentTool) {
		t.sourceTimeout = d
	}
}

// AnalyzeSentimentTool fetches content from every source, scores raw items and
// aggregates the visible result set.
type AnalyzeSentimentTool struct {
	sources       []source.ContentSource
	scorer        pipeline.Scorer
	logger        *logger.Logger
	now           func() time.Time
	sourceTimeout time.Duration
}

// NewAnalyzeSentimentTool creates an AnalyzeSentimentTool. Sources are merged in the given order.
func NewAnalyzeSentimentTool(sources []source.ContentSource, scorer pipeline.Scorer, log *logger.Logger, opts ...ToolOption) *AnalyzeSentimentTool {
	t := &AnalyzeSentimentTool{
		sources: sources,
		scorer:  scorer,
		logger:  log,
		now:     utils.TimeNowUTC,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SourceNames lists the configured sources.
func (t *AnalyzeSentimentTool) SourceNames() []string {
	names := make([]string, len(t.sources))
	for i, s := range t.sources {
		names[i] = s.SourceName()
	}
	return names
}

// Run analyzes ticker over timeWindow. Unknown windows fall back to short and a
// non-positive limit means the default.
func (t *AnalyzeSentimentTool) Run(ctx context.Context, ticker, timeWindow string, limit int) (*entity.SentimentAnalysisInput, error) {
	window := ParseWindowOrDefault(timeWindow)
	if limit <= 0 {
		limit = entity.DefaultAnalysisLimit
	}
	return t.Analyze(ctx, entity.SentimentAnalysisInput{Ticker: ticker, TimeWindow: &window, Limit: limit})
}

// Analyze runs the full fetch, score, dedup, rank and aggregate flow for req. Source
// failures are logged and skipped. Scoring failures are returned.
func (t *AnalyzeSentimentTool) Analyze(ctx context.Context, req entity.SentimentAnalysisInput) (*entity.SentimentAnalysisInput, error) {
	if req.TimeWindow == nil && req.StartTime == nil && req.EndTime == nil {
		w := entity.TimeWindowShort
		req.TimeWindow = &w
	}
	if err := req.Validate(t.now()); err != nil {
		return nil, err
	}

	raw, scored := t.fetchAll(ctx, &req)

	if len(raw) > 0 {
		newlyScored, err := t.scorer.ScoreBatch(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to score content for %s: %w", req.Ticker, err)
		}
		scored = append(scored, newlyScored...)
	}

	unique := dedupByContentID(scored)
	if req.MinRelevanceScore != nil {
		unique = filterByRelevance(unique, *req.MinRelevanceScore)
	}

	ranked := pipeline.RankByWeight(unique)
	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	applyAggregates(&req, ranked)

	t.logger.Info("Sentiment analysis completed",
		logger.StringField("ticker", req.Ticker),
		logger.IntField("raw", len(raw)),
		logger.IntField("unique", len(unique)),
		logger.IntField("visible", len(ranked)),
		logger.Float64Field("sentiment", *req.OverallSentimentScore),
	)
	return &req, nil
}

// fetchAll queries every allowed source concurrently and merges the results in
// source order.
func (t *AnalyzeSentimentTool) fetchAll(ctx context.Context, req *entity.SentimentAnalysisInput) ([]entity.SentimentContent, []entity.SentimentContentScored) {
	results := make([]source.FetchResult, len(t.sources))

	var g errgroup.Group
	for i, src := range t.sources {
		i, src := i, src
		if !req.AllowsSource(src.SourceName()) {
			continue
		}
		g.Go(func() error {
			results[i] = t.fetchOne(ctx, src, req)
			return nil
		})
	}
	_ = g.Wait()

	var raw []entity.SentimentContent
	var scored []entity.SentimentContentScored
	for i, src := range t.sources {
		if src.ReturnsScored() {
			scored = append(scored, results[i].Scored...)
		} else {
			raw = append(raw, results[i].Raw...)
		}
	}
	return raw, scored
}

func (t *AnalyzeSentimentTool) fetchOne(ctx context.Context, src source.ContentSource, req *entity.SentimentAnalysisInput) source.FetchResult {
	name := src.SourceName()
	if t.sourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.sourceTimeout)
		defer cancel()
	}

	begin := time.Now()
	res, err := t.safeFetch(ctx, src, req)
	elapsed := time.Since(begin).Seconds()
	if err != nil {
		metrics.RecordSourceFetch(name, "error", elapsed)
		t.logger.Error("Source fetch failed, skipping",
			logger.StringField("source", name),
			logger.StringField("ticker", req.Ticker),
			logger.ErrorField(err),
		)
		return source.FetchResult{}
	}

	metrics.RecordSourceFetch(name, "success", elapsed)
	t.logger.Debug("Source fetch completed",
		logger.StringField("source", name),
		logger.IntField("count", res.Len()),
	)
	return res
}

// safeFetch turns a panicking source into an error.
func (t *AnalyzeSentimentTool) safeFetch(ctx context.Context, src source.ContentSource, req *entity.SentimentAnalysisInput) (res source.FetchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source %s panicked: %v", src.SourceName(), r)
		}
	}()
	return src.Fetch(ctx, req.Ticker, *req.StartTime, *req.EndTime, req.Limit)
}

// dedupByContentID keeps the position of the first occurrence of each id and the
// value of the last one.
func dedupByContentID(items []entity.SentimentContentScored) []entity.SentimentContentScored {
	index := make(map[string]int, len(items))
	out := make([]entity.SentimentContentScored, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.Content.ContentID]; ok {
			out[i] = item
			continue
		}
		index[item.Content.ContentID] = len(out)
		out = append(out, item)
	}
	return out
}

func filterByRelevance(items []entity.SentimentContentScored, min float64) []entity.SentimentContentScored {
	out := make([]entity.SentimentContentScored, 0, len(items))
	for _, item := range items {
		if item.RelevanceScore >= min {
			out = append(out, item)
		}
	}
	return out
}

// applyAggregates sets contents and every aggregate field of in from items.
func applyAggregates(in *entity.SentimentAnalysisInput, items []entity.SentimentContentScored) {
	agg := pipeline.Aggregate(items)
	breakdown := agg.Breakdown
	sentiment, relevance, impact := agg.SentimentScore, agg.RelevanceScore, agg.ImpactScore

	in.Contents = items
	if in.Contents == nil {
		in.Contents = []entity.SentimentContentScored{}
	}
	in.Breakdown = &breakdown
	in.OverallSentimentScore = &sentiment
	in.OverallRelevanceScore = &relevance
	in.OverallImpactScore = &impact
	in.TopDrivers = agg.TopDrivers
}

// ParseWindowOrDefault parses value leniently and falls back to the short window.
func ParseWindowOrDefault(value string) entity.TimeWindow {
	w, err := entity.ParseTimeWindow(value)
	if err != nil {
		return entity.TimeWindowShort
	}
	return w
}
