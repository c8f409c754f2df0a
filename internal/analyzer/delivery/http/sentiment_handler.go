package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/internal/analyzer/pipeline"
	"golang-stock-sentiment/internal/analyzer/service"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SentimentHandler handles HTTP requests for sentiment reports and scoring.
type SentimentHandler struct {
	agent  *service.SentimentAnalysisAgent
	scorer pipeline.Scorer
	logger *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(agent *service.SentimentAnalysisAgent, scorer pipeline.Scorer, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{agent: agent, scorer: scorer, logger: logger}
}

// RegisterRoutes registers the sentiment routes to the Echo group.
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:ticker", h.GetReport)
	g.POST("/analyze", h.Analyze)
	g.POST("/score", h.Score)
	g.POST("/aggregate", h.Aggregate)
}

// GetReport godoc
// @Summary Get a sentiment report
// @Description Fetch, score and aggregate recent content for a ticker. Unknown windows fall back to short.
// @Tags sentiment
// @Produce  json
// @Param   ticker  path   string true  "Ticker symbol"
// @Param   window  query  string false "Time window: short, medium or long"
// @Param   limit   query  int    false "Maximum number of items"
// @Success 200 {object} entity.SentimentReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /sentiment/{ticker} [get]
func (h *SentimentHandler) GetReport(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = n
	}

	report, err := h.agent.RunForTicker(c.Request().Context(), c.Param("ticker"), c.QueryParam("window"), limit)
	if err != nil {
		return h.analysisError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// Analyze godoc
// @Summary Analyze a ticker
// @Description Build a report from an explicit analysis request, optionally with pre-scored contents
// @Tags sentiment
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeRequest  true  "Analysis request"
// @Success 200 {object} entity.SentimentReport
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /sentiment/analyze [post]
func (h *SentimentHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	in := entity.SentimentAnalysisInput{
		Ticker:            req.Ticker,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Limit:             req.Limit,
		MinRelevanceScore: req.MinRelevanceScore,
		Sources:           req.Sources,
		Contents:          req.Contents,
	}
	if strings.TrimSpace(req.TimeWindow) != "" {
		w, err := entity.ParseTimeWindow(req.TimeWindow)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		in.TimeWindow = &w
	}
	contents, err := normalizeScored("contents", req.Contents)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	in.Contents = contents

	report, err := h.agent.Run(c.Request().Context(), &in)
	if err != nil {
		return h.analysisError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// Score godoc
// @Summary Score raw content
// @Description Run the scoring pipeline over raw items for one ticker
// @Tags sentiment
// @Accept  json
// @Produce  json
// @Param   request  body    dto.ScoreRequest  true  "Items to score"
// @Success 200 {object} dto.ScoreResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /sentiment/score [post]
func (h *SentimentHandler) Score(c echo.Context) error {
	var req dto.ScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	contents := make([]entity.SentimentContent, 0, len(req.Items))
	for i, item := range req.Items {
		content, err := toSentimentContent(req.Ticker, item)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items[" + strconv.Itoa(i) + "]: " + err.Error()})
		}
		contents = append(contents, content)
	}

	scored, err := h.scorer.ScoreBatch(c.Request().Context(), contents)
	if err != nil {
		h.logger.Error("Failed to score content", logger.StringField("ticker", req.Ticker), logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	if scored == nil {
		scored = []entity.SentimentContentScored{}
	}

	return c.JSON(http.StatusOK, dto.ScoreResponse{Ticker: strings.ToUpper(strings.TrimSpace(req.Ticker)), Items: scored})
}

// Aggregate godoc
// @Summary Aggregate scored content
// @Description Combine scored items into overall scores, a breakdown and top drivers
// @Tags sentiment
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AggregateRequest  true  "Scored items"
// @Success 200 {object} dto.AggregateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sentiment/aggregate [post]
func (h *SentimentHandler) Aggregate(c echo.Context) error {
	var req dto.AggregateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	items, err := normalizeScored("items", req.Items)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	agg := pipeline.Aggregate(items)
	return c.JSON(http.StatusOK, dto.AggregateResponse{
		SentimentScore: agg.SentimentScore,
		RelevanceScore: agg.RelevanceScore,
		ImpactScore:    agg.ImpactScore,
		Breakdown:      agg.Breakdown,
		TopDrivers:     agg.TopDrivers,
	})
}

func (h *SentimentHandler) analysisError(c echo.Context, err error) error {
	if errors.Is(err, entity.ErrInvalidTicker) || errors.Is(err, entity.ErrInvalidTimeRange) ||
		errors.Is(err, entity.ErrInvalidScore) || errors.Is(err, entity.ErrInvalidEnum) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	h.logger.Error("Sentiment analysis failed", logger.ErrorField(err))
	return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
}

func toSentimentContent(ticker string, item dto.ScoreItem) (entity.SentimentContent, error) {
	sourceType := entity.SourceTypeNews
	if item.SourceType != "" {
		st, err := entity.ParseSourceType(item.SourceType)
		if err != nil {
			return entity.SentimentContent{}, err
		}
		sourceType = st
	}
	src := item.Source
	if src == "" {
		src = "api"
	}
	return entity.NewSentimentContent(entity.SentimentContent{
		Ticker:      ticker,
		Source:      src,
		Title:       item.Title,
		Summary:     item.Summary,
		Body:        item.Body,
		URL:         item.URL,
		PublishedAt: item.PublishedAt,
		SourceType:  sourceType,
		Metadata:    item.Metadata,
	})
}

// normalizeScored canonicalizes supplied scored items the same way the pipeline
// builds them. field names the request field in error messages.
func normalizeScored(field string, items []entity.SentimentContentScored) ([]entity.SentimentContentScored, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]entity.SentimentContentScored, len(items))
	for i, item := range items {
		content, err := entity.NewSentimentContent(item.Content)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		item.Content = content
		scored, err := entity.NewSentimentContentScored(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out[i] = scored
	}
	return out, nil
}
