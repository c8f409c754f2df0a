package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/telegram"
	"golang-stock-sentiment/pkg/utils"

	"github.com/robfig/cron/v3"
)

// WatchlistService analyzes a fixed list of tickers on a cron schedule, optionally
// archiving the results and posting a Telegram digest.
type WatchlistService struct {
	cfg      config.Watchlist
	agent    *SentimentAnalysisAgent
	archive  *ArchiveService
	notifier telegram.Notifier
	history  repository.WatchlistRunRepository
	cron     *cron.Cron
	logger   *logger.Logger

	mu  sync.Mutex
	ctx context.Context
}

// NewWatchlistService creates a WatchlistService. archive, notifier and history may be nil.
func NewWatchlistService(cfg config.Watchlist, agent *SentimentAnalysisAgent, archive *ArchiveService, notifier telegram.Notifier, history repository.WatchlistRunRepository, log *logger.Logger) (*WatchlistService, error) {
	tickers := make([]string, 0, len(cfg.Tickers))
	for _, t := range cfg.Tickers {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("watchlist requires at least one ticker")
	}
	cfg.Tickers = tickers

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(cfg.Cron); err != nil {
		return nil, fmt.Errorf("invalid watchlist cron %q: %w", cfg.Cron, err)
	}

	s := &WatchlistService{
		cfg:      cfg,
		agent:    agent,
		archive:  archive,
		notifier: notifier,
		history:  history,
		logger:   log,
		ctx:      context.Background(),
	}
	s.cron = cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(cfg.Cron, s.runScheduled); err != nil {
		return nil, fmt.Errorf("failed to schedule watchlist: %w", err)
	}
	return s, nil
}

// Start runs the schedule until ctx is done.
func (s *WatchlistService) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Watchlist scheduler started",
		logger.StringField("cron", s.cfg.Cron),
		logger.StringField("tickers", strings.Join(s.cfg.Tickers, ",")),
	)

	utils.GoSafe(s.logger, func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.logger.Info("Watchlist scheduler stopped")
	})
}

func (s *WatchlistService) runScheduled() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if _, err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Watchlist run finished with errors", logger.ErrorField(err))
	}
}

// RunOnce analyzes every ticker in order. A failing ticker is reported and skipped.
func (s *WatchlistService) RunOnce(ctx context.Context) ([]*entity.SentimentReport, error) {
	var reports []*entity.SentimentReport
	var errs []error

	for _, ticker := range s.cfg.Tickers {
		if !utils.ShouldContinue(ctx, s.logger) {
			errs = append(errs, ctx.Err())
			break
		}

		begin := utils.TimeNowUTC()
		report, err := s.agent.RunForTicker(ctx, ticker, s.cfg.TimeWindow, s.cfg.Limit)
		s.record(ctx, ticker, begin, report, err)
		if err != nil {
			s.logger.Error("Watchlist analysis failed", logger.StringField("ticker", ticker), logger.ErrorField(err))
			errs = append(errs, fmt.Errorf("%s: %w", ticker, err))
			s.notify([]string{telegram.FormatErrorAlertMessage(utils.TimeNowUTC(), "watchlist", err.Error(), ticker)})
			continue
		}

		if s.cfg.Archive && s.archive != nil {
			if _, err := s.archive.ArchiveReport(ctx, report); err != nil {
				s.logger.Warn("Watchlist archive incomplete", logger.StringField("ticker", ticker), logger.ErrorField(err))
			}
		}
		reports = append(reports, report)
	}

	if len(reports) > 0 {
		s.notify(telegram.FormatSentimentDigest(reports))
	}
	return reports, errors.Join(errs...)
}

func (s *WatchlistService) record(ctx context.Context, ticker string, begin time.Time, report *entity.SentimentReport, runErr error) {
	if s.history == nil {
		return
	}

	run := &entity.WatchlistRun{
		Ticker:     ticker,
		Status:     entity.WatchlistRunSuccess,
		ExecutedAt: begin,
		Duration:   time.Since(begin).Milliseconds(),
	}
	if runErr != nil {
		run.Status = entity.WatchlistRunFailed
		run.Output = runErr.Error()
	} else {
		score := report.SentimentScore
		run.MarketTrend = string(report.MarketTrend)
		run.Signal = string(report.Signal)
		run.SentimentScore = &score
		run.ItemCount = len(report.Contents)
	}

	if err := s.history.Create(ctx, run); err != nil {
		s.logger.Error("Failed to record watchlist run", logger.StringField("ticker", ticker), logger.ErrorField(err))
	}
}

func (s *WatchlistService) notify(messages []string) {
	if s.notifier == nil {
		return
	}
	if err := telegram.SendMessages(s.notifier, messages); err != nil {
		s.logger.Error("Failed to send telegram message", logger.ErrorField(err))
	}
}
