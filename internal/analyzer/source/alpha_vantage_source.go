package source

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"
)

const (
	// AlphaVantageSourceName identifies the Alpha Vantage source.
	AlphaVantageSourceName = "alpha_vantage"
	// AlphaVantageModelName is recorded as the model of every Alpha Vantage score.
	AlphaVantageModelName = "alpha_vantage_news_sentiment"

	// alphaVantageImpactFactor derives impact from relevance, which the API does not score.
	alphaVantageImpactFactor = 0.8
)

// AlphaVantageSource returns items already scored by the NEWS_SENTIMENT API.
type AlphaVantageSource struct {
	repo   repository.AlphaVantageRepository
	logger *logger.Logger
	now    func() time.Time
}

// NewAlphaVantageSource creates an AlphaVantageSource.
func NewAlphaVantageSource(repo repository.AlphaVantageRepository, log *logger.Logger) *AlphaVantageSource {
	return &AlphaVantageSource{repo: repo, logger: log, now: utils.TimeNowUTC}
}

func (s *AlphaVantageSource) SourceName() string  { return AlphaVantageSourceName }
func (s *AlphaVantageSource) ReturnsScored() bool { return true }

// Fetch returns the ticker's scored articles within [start, end], most relevant first.
func (s *AlphaVantageSource) Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (FetchResult, error) {
	ticker = normalizeTicker(ticker)
	if limit <= 0 {
		limit = entity.DefaultAnalysisLimit
	}

	resp, err := s.repo.FetchNewsSentiment(ctx, ticker, start, end)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to fetch alpha vantage news: %w", err)
	}

	collectedAt := s.now()
	scored := make([]entity.SentimentContentScored, 0, len(resp.Feed))
	for _, article := range resp.Feed {
		item, ok := s.convert(article, ticker, start.UTC(), end.UTC(), collectedAt)
		if ok {
			scored = append(scored, item)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	s.logger.Debug("Alpha Vantage items converted",
		logger.StringField("ticker", ticker),
		logger.IntField("feed", len(resp.Feed)),
		logger.IntField("kept", len(scored)),
	)
	return FetchResult{Scored: scored}, nil
}

func (s *AlphaVantageSource) convert(article dto.AlphaVantageArticle, ticker string, start, end, collectedAt time.Time) (entity.SentimentContentScored, bool) {
	var publishedAt *time.Time
	if t, ok := repository.ParseAlphaVantageTime(article.TimePublished); ok {
		publishedAt = &t
	}
	if !withinRange(publishedAt, start, end) {
		return entity.SentimentContentScored{}, false
	}

	tickerSentiment, ok := findTickerSentiment(article.TickerSentiment, ticker)
	if !ok {
		return entity.SentimentContentScored{}, false
	}

	content, err := entity.NewSentimentContent(entity.SentimentContent{
		Ticker:      ticker,
		Source:      AlphaVantageSourceName,
		Title:       article.Title,
		Summary:     article.Summary,
		URL:         article.URL,
		PublishedAt: publishedAt,
		CollectedAt: &collectedAt,
		SourceURL:   article.URL,
		SourceType:  entity.SourceTypeNews,
		Metadata: map[string]string{
			"authors":                 strings.Join(article.Authors, ","),
			"source_domain":           article.SourceDomain,
			"category":                article.CategoryWithinSource,
			"overall_sentiment_label": article.OverallSentimentLabel,
		},
	})
	if err != nil {
		s.logger.Debug("Skipping Alpha Vantage article", logger.StringField("url", article.URL), logger.ErrorField(err))
		return entity.SentimentContentScored{}, false
	}

	sentiment := parseScore(tickerSentiment.TickerSentimentScore)
	relevance := parseScore(tickerSentiment.RelevanceScore)
	label := tickerSentiment.TickerSentimentLabel
	if label == "" {
		label = "Unknown"
	}

	scored, err := entity.NewSentimentContentScored(entity.SentimentContentScored{
		Content:        content,
		SentimentScore: utils.Clamp(sentiment, -1, 1),
		RelevanceScore: utils.Clamp(relevance, 0, 1),
		ImpactScore:    utils.Clamp(relevance*alphaVantageImpactFactor, 0, 1),
		Reasoning:      "Alpha Vantage sentiment: " + label,
		ModelName:      AlphaVantageModelName,
		ScoredAt:       collectedAt,
	})
	if err != nil {
		return entity.SentimentContentScored{}, false
	}
	return scored, true
}

func findTickerSentiment(list []dto.AlphaVantageTickerSentiment, ticker string) (dto.AlphaVantageTickerSentiment, bool) {
	for _, ts := range list {
		if strings.EqualFold(strings.TrimSpace(ts.Ticker), ticker) {
			return ts, true
		}
	}
	return dto.AlphaVantageTickerSentiment{}, false
}

func parseScore(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return v
}
