package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"golang.org/x/time/rate"
)

// AlphaVantageTimeLayout is the time_from/time_to query format.
const AlphaVantageTimeLayout = "20060102T1504"

// alphaVantagePublishedLayout is the usual time_published format. Some articles omit seconds.
const alphaVantagePublishedLayout = "20060102T150405"

// alphaVantageFeedLimit is the largest page the API serves.
const alphaVantageFeedLimit = 1000

type alphaVantageRepository struct {
	client         *http.Client
	cfg            config.AlphaVantage
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewAlphaVantageRepository creates an AlphaVantageRepository.
func NewAlphaVantageRepository(cfg config.AlphaVantage, timeout time.Duration, log *logger.Logger) AlphaVantageRepository {
	rpm := cfg.MaxRequestPerMinute
	if rpm <= 0 {
		rpm = 5
	}
	if timeout <= 0 {
		timeout = common.DefaultSourceTimeout
	}
	return &alphaVantageRepository{
		client:         &http.Client{Timeout: timeout},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

// FetchNewsSentiment calls NEWS_SENTIMENT for ticker within [start, end], sorted by relevance.
func (r *alphaVantageRepository) FetchNewsSentiment(ctx context.Context, ticker string, start, end time.Time) (*dto.AlphaVantageNewsResponse, error) {
	if r.cfg.APIKey == "" {
		return nil, fmt.Errorf("alpha vantage api key is not configured")
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", ticker)
	params.Set("time_from", start.UTC().Format(AlphaVantageTimeLayout))
	params.Set("time_to", end.UTC().Format(AlphaVantageTimeLayout))
	params.Set("sort", "RELEVANCE")
	params.Set("limit", fmt.Sprint(alphaVantageFeedLimit))
	params.Set("apikey", r.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("User-Agent", common.HTTPUserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Alpha Vantage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from Alpha Vantage: %d - %s", resp.StatusCode, string(body))
	}

	var result dto.AlphaVantageNewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(result.Feed) == 0 {
		switch {
		case result.ErrorMessage != "":
			return nil, fmt.Errorf("alpha vantage error: %s", result.ErrorMessage)
		case result.Information != "":
			return nil, fmt.Errorf("alpha vantage information: %s", result.Information)
		case result.Note != "":
			return nil, fmt.Errorf("alpha vantage note: %s", result.Note)
		}
	}

	r.logger.Debug("Fetched Alpha Vantage news sentiment",
		logger.StringField("ticker", ticker),
		logger.IntField("count", len(result.Feed)),
	)
	return &result, nil
}

// ParseAlphaVantageTime parses a time_published value as UTC. Empty and "NULL" values report false.
func ParseAlphaVantageTime(value string) (time.Time, bool) {
	if value == "" || value == "NULL" {
		return time.Time{}, false
	}
	for _, layout := range []string{alphaVantagePublishedLayout, AlphaVantageTimeLayout} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
