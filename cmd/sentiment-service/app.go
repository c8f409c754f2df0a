package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/analyzer/pipeline"
	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/analyzer/service"
	"golang-stock-sentiment/internal/analyzer/source"
	"golang-stock-sentiment/internal/analyzer/strategy"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/postgres"
	"golang-stock-sentiment/pkg/redis"
	"golang-stock-sentiment/pkg/telegram"

	"google.golang.org/genai"
)

// app holds the wired components shared by the serve and analyze commands.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	scorer   pipeline.Scorer
	tool     *service.AnalyzeSentimentTool
	agent    *service.SentimentAnalysisAgent
	archive  *service.ArchiveService
	runs     repository.WatchlistRunRepository
	notifier telegram.Notifier
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

type appOptions struct {
	// inputPath replaces the live sources with a JSON file of raw content items.
	inputPath string
}

func newApp(ctx context.Context, cfg *config.Config, appLogger *logger.Logger, opts appOptions) (*app, error) {
	a := &app{cfg: cfg, logger: appLogger}

	// Initialize database
	var stockNewsRepo repository.StockNewsRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		})
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		stockNewsRepo = repository.NewStockNewsRepository(db.DB)
		a.archive = service.NewArchiveService(stockNewsRepo, appLogger)
		a.runs = repository.NewWatchlistRunRepository(db.DB)
	}

	// Initialize Redis
	var scoreCache repository.ScoreCacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		scoreCache = repository.NewScoreCacheRepository(redisClient.Client, appLogger)
	}

	// Initialize AI provider
	var aiRepo repository.AIRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg.Gemini, appLogger, genAiClient)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	// Scoring pipeline
	factory := strategy.NewModelFactory(strategy.HostDeviceProbe())
	strategy.RegisterInferenceModels(factory, repository.NewHuggingFaceRepository(cfg.HuggingFace, appLogger), appLogger)
	if aiRepo != nil {
		strategy.RegisterGeminiModel(factory, aiRepo)
	}

	scoringCfg, err := pipeline.NewScoringConfig(cfg.Scoring)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("invalid scoring configuration: %w", err)
	}
	scoringPipeline, err := pipeline.NewSentimentScoringPipeline(scoringCfg, factory, appLogger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.scorer = scoringPipeline
	if scoreCache != nil {
		a.scorer = pipeline.NewCachedScorer(scoringPipeline, scoreCache, cfg.Scoring.CacheTTL, appLogger)
	}

	// Content sources
	sources, err := a.buildSources(stockNewsRepo, opts)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.tool = service.NewAnalyzeSentimentTool(sources, a.scorer, appLogger, service.WithSourceTimeout(cfg.Sources.Timeout))

	var narrative service.NarrativeGenerator
	switch cfg.Narrative.Provider {
	case "", "template":
	case "gemini":
		if aiRepo == nil {
			a.Close()
			return nil, fmt.Errorf("narrative provider gemini requires gemini.api_key")
		}
		narrative = service.NewAINarrativeGenerator(aiRepo, appLogger)
	default:
		a.Close()
		return nil, fmt.Errorf("invalid narrative provider %q", cfg.Narrative.Provider)
	}
	a.agent = service.NewSentimentAnalysisAgent(a.tool, narrative, appLogger)

	if cfg.Telegram.Enabled {
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize Telegram notifier: %w", err)
		}
		a.notifier = notifier
	}

	appLogger.Info("Sentiment components initialized",
		logger.StringField("model", a.scorer.ModelName()),
		logger.Field("sources", a.tool.SourceNames()),
	)
	return a, nil
}

func (a *app) buildSources(stockNewsRepo repository.StockNewsRepository, opts appOptions) ([]source.ContentSource, error) {
	if opts.inputPath != "" {
		items, err := loadInputFile(opts.inputPath)
		if err != nil {
			return nil, err
		}
		return []source.ContentSource{source.NewStaticSource("input_file", items)}, nil
	}

	cfg := a.cfg.Sources
	var sources []source.ContentSource

	if cfg.AlphaVantage.Enabled {
		avRepo := repository.NewAlphaVantageMockRepository()
		if !cfg.AlphaVantage.Mock {
			avRepo = repository.NewAlphaVantageRepository(cfg.AlphaVantage, cfg.Timeout, a.logger)
		}
		sources = append(sources, source.NewAlphaVantageSource(avRepo, a.logger))
	}

	if cfg.RSS.Enabled {
		rss, err := source.NewRSSNewsSource(cfg.RSS, cfg.Timeout, a.logger)
		if err != nil {
			return nil, err
		}
		sources = append(sources, rss)
	}

	if cfg.Archive.Enabled {
		if stockNewsRepo == nil {
			return nil, fmt.Errorf("archive source requires database.enabled")
		}
		sources = append(sources, source.NewArchiveSource(stockNewsRepo, a.logger))
	}

	if cfg.CacheTTL > 0 {
		for i, s := range sources {
			sources[i] = source.NewCachedSource(s, cfg.CacheTTL, a.logger)
		}
	}
	return sources, nil
}

// loadInputFile reads a JSON array of raw content items.
func loadInputFile(path string) ([]entity.SentimentContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	var raw []entity.SentimentContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode input file: %w", err)
	}

	items := make([]entity.SentimentContent, 0, len(raw))
	for i, item := range raw {
		if item.Source == "" {
			item.Source = "input_file"
		}
		content, err := entity.NewSentimentContent(item)
		if err != nil {
			return nil, fmt.Errorf("invalid input item %d: %w", i, err)
		}
		items = append(items, content)
	}
	return items, nil
}
