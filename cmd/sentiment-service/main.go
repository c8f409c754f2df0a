package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	delivery "golang-stock-sentiment/internal/analyzer/delivery/http"
	_ "golang-stock-sentiment/internal/analyzer/docs"
	"golang-stock-sentiment/internal/analyzer/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var (
	configPath string

	analyzeWindow  string
	analyzeLimit   int
	analyzeNotify  bool
	analyzeArchive bool
	analyzeInput   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sentiment HTTP service and the watchlist scheduler",
	Run:   runServe,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Analyzes one ticker and prints the report as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runAnalyze,
}

func setup() (*config.Config, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Sentiment Service", logger.Field("name", cfg.App.Name))

	a, err := newApp(ctx, cfg, appLogger, appOptions{})
	if err != nil {
		appLogger.Fatal("Failed to initialize sentiment service", logger.ErrorField(err))
	}
	defer a.Close()

	// Start watchlist scheduler
	if cfg.Watchlist.Enabled {
		watchlist, err := service.NewWatchlistService(cfg.Watchlist, a.agent, a.archive, a.notifier, a.runs, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize watchlist", logger.ErrorField(err))
		}
		watchlist.Start(ctx)
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	sentimentHandler := delivery.NewSentimentHandler(a.agent, a.scorer, appLogger)
	apiV1 := e.Group("/api/v1")
	sentimentHandler.RegisterRoutes(apiV1.Group("/sentiment"))
	if a.runs != nil {
		delivery.NewWatchlistRunHandler(a.runs, appLogger).RegisterRoutes(apiV1.Group("/watchlist/runs"))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "sources": a.tool.SourceNames(), "model": a.scorer.ModelName()})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := setup()
	defer func() { _ = appLogger.Sync() }()

	a, err := newApp(ctx, cfg, appLogger, appOptions{inputPath: analyzeInput})
	if err != nil {
		appLogger.Fatal("Failed to initialize sentiment service", logger.ErrorField(err))
	}
	defer a.Close()

	report, err := a.agent.RunForTicker(ctx, args[0], analyzeWindow, analyzeLimit)
	if err != nil {
		appLogger.Fatal("Sentiment analysis failed", logger.StringField("ticker", args[0]), logger.ErrorField(err))
	}

	if analyzeArchive {
		if a.archive == nil {
			appLogger.Warn("Archive requested but database is disabled")
		} else if _, err := a.archive.ArchiveReport(ctx, report); err != nil {
			appLogger.Warn("Archive incomplete", logger.ErrorField(err))
		}
	}

	if analyzeNotify {
		if a.notifier == nil {
			appLogger.Warn("Notification requested but telegram is disabled")
		} else if err := telegram.SendMessages(a.notifier, []string{telegram.FormatSentimentReport(report)}); err != nil {
			appLogger.Error("Failed to send telegram message", logger.ErrorField(err))
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to encode report", logger.ErrorField(err))
	}
	fmt.Println(string(out))
}

// @title Stock Sentiment API
// @version 1.0
// @description Scores news content per ticker and assembles sentiment reports.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "sentiment-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-sentiment.yaml", "Path to the configuration file")

	analyzeCmd.Flags().StringVarP(&analyzeWindow, "window", "w", string(entity.TimeWindowShort), "Time window: short, medium or long")
	analyzeCmd.Flags().IntVarP(&analyzeLimit, "limit", "l", entity.DefaultAnalysisLimit, "Maximum number of items")
	analyzeCmd.Flags().BoolVar(&analyzeNotify, "notify", false, "Send the report to Telegram")
	analyzeCmd.Flags().BoolVar(&analyzeArchive, "archive", false, "Store scored items in the news archive")
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Analyze raw items from a JSON file instead of the live sources")

	rootCmd.AddCommand(serveCmd, analyzeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing sentiment-service CLI: %s\n", err)
		os.Exit(1)
	}
}
