package config

import (
	"time"

	"golang-stock-sentiment/pkg/config"
)

// Scoring holds the scoring pipeline configuration.
type Scoring struct {
	ModelType             string        `mapstructure:"model_type"`
	Device                string        `mapstructure:"device"`
	MaxLength             int           `mapstructure:"max_length"`
	BatchSize             int           `mapstructure:"batch_size"`
	Concurrency           int           `mapstructure:"concurrency"`
	Truncation            string        `mapstructure:"truncation"`
	RelevanceTickerWeight float64       `mapstructure:"relevance_ticker_weight"`
	RelevanceLengthWeight float64       `mapstructure:"relevance_length_weight"`
	ImpactFreshnessWeight float64       `mapstructure:"impact_freshness_weight"`
	ImpactLengthWeight    float64       `mapstructure:"impact_length_weight"`
	MinRelevanceScore     float64       `mapstructure:"min_relevance_score"`
	MinImpactScore        float64       `mapstructure:"min_impact_score"`
	CacheTTL              time.Duration `mapstructure:"cache_ttl"`
}

// AlphaVantage holds the configuration for the Alpha Vantage news sentiment source.
type AlphaVantage struct {
	Enabled             bool   `mapstructure:"enabled"`
	Mock                bool   `mapstructure:"mock"`
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// RSS holds the configuration for the RSS news source.
type RSS struct {
	Enabled          bool   `mapstructure:"enabled"`
	Provider         string `mapstructure:"provider"`
	BaseURL          string `mapstructure:"base_url"`
	QueryTemplate    string `mapstructure:"query_template"`
	FetchArticleBody bool   `mapstructure:"fetch_article_body"`
	MaxConcurrent    int    `mapstructure:"max_concurrent"`
}

// Archive holds the configuration for the postgres news archive source.
type Archive struct {
	Enabled bool `mapstructure:"enabled"`
}

// Sources holds configuration shared by every content source.
type Sources struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	AlphaVantage AlphaVantage  `mapstructure:"alpha_vantage"`
	RSS          RSS           `mapstructure:"rss"`
	Archive      Archive       `mapstructure:"archive"`
}

// HuggingFace holds the configuration for the text-classification inference endpoint.
type HuggingFace struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIToken            string        `mapstructure:"api_token"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Narrative selects the report narrative generator: "template" or "gemini".
type Narrative struct {
	Provider string `mapstructure:"provider"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Watchlist holds the scheduled analysis configuration.
type Watchlist struct {
	Enabled    bool     `mapstructure:"enabled"`
	Cron       string   `mapstructure:"cron"`
	Tickers    []string `mapstructure:"tickers"`
	TimeWindow string   `mapstructure:"time_window"`
	Limit      int      `mapstructure:"limit"`
	Archive    bool     `mapstructure:"archive"`
}

// Config holds the full configuration for the sentiment service.
type Config struct {
	App         config.App      `mapstructure:"app"`
	Logger      config.Logger   `mapstructure:"logger"`
	Database    config.Database `mapstructure:"database"`
	Redis       config.Redis    `mapstructure:"redis"`
	API         config.API      `mapstructure:"api"`
	Scoring     Scoring         `mapstructure:"scoring"`
	Sources     Sources         `mapstructure:"sources"`
	HuggingFace HuggingFace     `mapstructure:"huggingface"`
	Gemini      Gemini          `mapstructure:"gemini"`
	Narrative   Narrative       `mapstructure:"narrative"`
	Telegram    Telegram        `mapstructure:"telegram"`
	Watchlist   Watchlist       `mapstructure:"watchlist"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":        "sentiment-service",
		"app.env":         "development",
		"logger.level":    "info",
		"logger.encoding": "json",
		"api.port":        8080,

		"database.enabled":  false,
		"database.port":     5432,
		"database.ssl_mode": "disable",
		"redis.enabled":     false,
		"redis.port":        6379,

		"scoring.model_type":              "msr2903/mrm8488-distilroberta-fine-tuned-financial-sentiment",
		"scoring.device":                  "",
		"scoring.max_length":              512,
		"scoring.batch_size":              8,
		"scoring.concurrency":             2,
		"scoring.truncation":              "smart",
		"scoring.relevance_ticker_weight": 0.7,
		"scoring.relevance_length_weight": 0.3,
		"scoring.impact_freshness_weight": 0.6,
		"scoring.impact_length_weight":    0.4,
		"scoring.min_relevance_score":     0.1,
		"scoring.min_impact_score":        0.1,
		"scoring.cache_ttl":               6 * time.Hour,

		"sources.timeout":                              20 * time.Second,
		"sources.cache_ttl":                            5 * time.Minute,
		"sources.alpha_vantage.enabled":                true,
		"sources.alpha_vantage.mock":                   false,
		"sources.alpha_vantage.base_url":               "https://www.alphavantage.co/query",
		"sources.alpha_vantage.api_key":                "",
		"sources.alpha_vantage.max_request_per_minute": 5,
		"sources.rss.enabled":                          true,
		"sources.rss.provider":                         "google",
		"sources.rss.base_url":                         "",
		"sources.rss.query_template":                   "%s stock",
		"sources.rss.fetch_article_body":               false,
		"sources.rss.max_concurrent":                   4,
		"sources.archive.enabled":                      false,

		"huggingface.base_url":               "https://api-inference.huggingface.co",
		"huggingface.api_token":              "",
		"huggingface.max_request_per_minute": 60,
		"huggingface.timeout":                60 * time.Second,

		"gemini.api_key":                "",
		"gemini.model":                  "gemini-2.0-flash",
		"gemini.max_request_per_minute": 15,

		"narrative.provider": "template",

		"telegram.enabled":   false,
		"telegram.bot_token": "",
		"telegram.chat_id":   0,

		"watchlist.enabled":     false,
		"watchlist.cron":        "0 */6 * * *",
		"watchlist.tickers":     []string{},
		"watchlist.time_window": "short",
		"watchlist.limit":       50,
		"watchlist.archive":     false,
	}
}

// Load loads the sentiment service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults()); err != nil {
		return nil, err
	}
	return &cfg, nil
}
