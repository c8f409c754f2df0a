package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"
	"golang-stock-sentiment/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

// RSS providers.
const (
	RSSProviderGoogle = "google"
	RSSProviderBing   = "bing"
)

const (
	googleNewsBaseURL = "https://news.google.com/rss/search"
	bingNewsBaseURL   = "https://www.bing.com/news/search"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// RSSNewsSource returns raw headlines from a news search RSS feed.
type RSSNewsSource struct {
	cfg    config.RSS
	client *http.Client
	logger *logger.Logger
	now    func() time.Time
}

// NewRSSNewsSource creates an RSSNewsSource. An empty provider means Google News.
func NewRSSNewsSource(cfg config.RSS, timeout time.Duration, log *logger.Logger) (*RSSNewsSource, error) {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = RSSProviderGoogle
	}
	if cfg.Provider != RSSProviderGoogle && cfg.Provider != RSSProviderBing {
		return nil, fmt.Errorf("invalid rss provider %q, must be one of: %s, %s", cfg.Provider, RSSProviderGoogle, RSSProviderBing)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = googleNewsBaseURL
		if cfg.Provider == RSSProviderBing {
			cfg.BaseURL = bingNewsBaseURL
		}
	}
	if cfg.QueryTemplate == "" || !strings.Contains(cfg.QueryTemplate, "%s") {
		cfg.QueryTemplate = "%s"
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if timeout <= 0 {
		timeout = common.DefaultSourceTimeout
	}
	return &RSSNewsSource{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: log,
		now:    utils.TimeNowUTC,
	}, nil
}

// SourceName returns "<provider>_news", e.g. "google_news".
func (s *RSSNewsSource) SourceName() string  { return s.cfg.Provider + "_news" }
func (s *RSSNewsSource) ReturnsScored() bool { return false }

// Fetch parses the feed, drops items without a title or link and items outside [start, end],
// and returns the newest first.
func (s *RSSNewsSource) Fetch(ctx context.Context, ticker string, start, end time.Time, limit int) (FetchResult, error) {
	ticker = normalizeTicker(ticker)
	if limit <= 0 {
		limit = entity.DefaultAnalysisLimit
	}
	start, end = start.UTC(), end.UTC()

	feedURL := s.feedURL(ticker, start, end)
	s.logger.Info("Processing RSS feed", logger.StringField("url", feedURL))

	fp := gofeed.NewParser()
	fp.Client = s.client
	fp.UserAgent = browserUserAgent
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	collectedAt := s.now()
	items := make([]entity.SentimentContent, 0, len(feed.Items))
	for _, item := range feed.Items {
		content, ok := s.convert(item, ticker, start, end, collectedAt)
		if ok {
			items = append(items, content)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	if s.cfg.FetchArticleBody {
		s.fillBodies(ctx, items)
	}

	s.logger.Info("Filtered news items",
		logger.IntField("original_count", len(feed.Items)),
		logger.IntField("filtered_count", len(items)),
		logger.StringField("ticker", ticker),
	)
	return FetchResult{Raw: items}, nil
}

func (s *RSSNewsSource) feedURL(ticker string, start, end time.Time) string {
	query := fmt.Sprintf(s.cfg.QueryTemplate, ticker)
	days := int(end.Sub(start).Hours() / 24)
	params := url.Values{}

	switch s.cfg.Provider {
	case RSSProviderBing:
		// Bing only offers fixed intervals: 7 = past day, 8 = past week, 9 = past month.
		interval := "9"
		switch {
		case days <= 1:
			interval = "7"
		case days <= 7:
			interval = "8"
		}
		params.Set("q", query)
		params.Set("format", "rss")
		params.Set("qft", fmt.Sprintf(`sortbydate="1"+interval="%s"`, interval))
		params.Set("setmkt", "en-us")
		params.Set("setlang", "en-us")
		params.Set("count", "50")
	default:
		if days < 1 {
			days = 1
		}
		params.Set("q", fmt.Sprintf("%s when:%dd", query, days))
		params.Set("hl", "en-US")
		params.Set("gl", "US")
		params.Set("ceid", "US:en")
	}
	return s.cfg.BaseURL + "?" + params.Encode()
}

func (s *RSSNewsSource) convert(item *gofeed.Item, ticker string, start, end, collectedAt time.Time) (entity.SentimentContent, bool) {
	title := strings.TrimSpace(utils.CleanToValidUTF8(item.Title))
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return entity.SentimentContent{}, false
	}

	publishedAt := utils.UTCPtr(item.PublishedParsed)
	if !withinRange(publishedAt, start, end) {
		return entity.SentimentContent{}, false
	}

	content, err := entity.NewSentimentContent(entity.SentimentContent{
		Ticker:      ticker,
		Source:      s.SourceName(),
		Title:       title,
		Summary:     htmlToText(item.Description),
		URL:         link,
		PublishedAt: publishedAt,
		CollectedAt: &collectedAt,
		SourceURL:   link,
		SourceType:  entity.SourceTypeNews,
		Metadata:    map[string]string{"rss_source": publisherName(item)},
	})
	if err != nil {
		return entity.SentimentContent{}, false
	}
	return content, true
}

// publisherName reads the publisher from the <source> or <News:Source> element, falling back
// to the link host.
func publisherName(item *gofeed.Item) string {
	for _, ns := range item.Extensions {
		for name, exts := range ns {
			if strings.EqualFold(name, "source") && len(exts) > 0 && exts[0].Value != "" {
				return strings.TrimSpace(exts[0].Value)
			}
		}
	}
	if u, err := url.Parse(item.Link); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return "Unknown"
}

func (s *RSSNewsSource) fillBodies(ctx context.Context, items []entity.SentimentContent) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrent)
	for i := range items {
		i := i
		g.Go(func() error {
			if !utils.ShouldContinue(gctx, s.logger) {
				return nil
			}
			body, err := s.articleBody(gctx, items[i].URL)
			if err != nil {
				s.logger.Warn("Failed to fetch article body", logger.StringField("url", items[i].URL), logger.ErrorField(err))
				return nil
			}
			items[i].Body = body
			return nil
		})
	}
	_ = g.Wait()
}

func (s *RSSNewsSource) articleBody(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for news item: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch news content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch news content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse news content: %w", err)
	}
	return htmlToText(doc.Content()), nil
}

// htmlToText strips markup and collapses whitespace.
func htmlToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(fragment)))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(utils.CleanToValidUTF8(doc.Text())), " ")
}
