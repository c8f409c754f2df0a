package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/internal/analyzer/repository"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const defaultRunLimit = 50

// WatchlistRunHandler handles HTTP requests for watchlist run history.
type WatchlistRunHandler struct {
	repo   repository.WatchlistRunRepository
	logger *logger.Logger
}

// NewWatchlistRunHandler creates a new WatchlistRunHandler.
func NewWatchlistRunHandler(repo repository.WatchlistRunRepository, logger *logger.Logger) *WatchlistRunHandler {
	return &WatchlistRunHandler{repo: repo, logger: logger}
}

// RegisterRoutes registers the watchlist run routes to the Echo group.
func (h *WatchlistRunHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetRuns)
	g.GET("/:id", h.GetRunByID)
}

// GetRuns godoc
// @Summary Get watchlist runs
// @Description Get the latest watchlist runs, newest first
// @Tags watchlist
// @Produce  json
// @Param   ticker  query  string false "Filter by ticker"
// @Param   limit   query  int    false "Maximum number of runs"
// @Success 200 {array} dto.WatchlistRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/runs [get]
func (h *WatchlistRunHandler) GetRuns(c echo.Context) error {
	limit := defaultRunLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = n
	}
	ticker := strings.ToUpper(strings.TrimSpace(c.QueryParam("ticker")))

	runs, err := h.repo.FindRecent(c.Request().Context(), ticker, limit)
	if err != nil {
		h.logger.Error("Failed to get watchlist runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get watchlist runs"})
	}

	resp := make([]dto.WatchlistRunResponse, len(runs))
	for i := range runs {
		resp[i] = toRunResponse(&runs[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// GetRunByID godoc
// @Summary Get a watchlist run by ID
// @Description Get a single watchlist run by its ID
// @Tags watchlist
// @Produce  json
// @Param   id  path    int true    "Watchlist run ID"
// @Success 200 {object} dto.WatchlistRunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/runs/{id} [get]
func (h *WatchlistRunHandler) GetRunByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid run ID"})
	}

	run, err := h.repo.FindByID(c.Request().Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Watchlist run not found"})
	}
	if err != nil {
		h.logger.Error("Failed to get watchlist run", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, toRunResponse(run))
}

func toRunResponse(run *entity.WatchlistRun) dto.WatchlistRunResponse {
	return dto.WatchlistRunResponse{
		ID:             run.ID,
		Ticker:         run.Ticker,
		Status:         run.Status,
		ExecutedAt:     run.ExecutedAt,
		Duration:       run.Duration,
		MarketTrend:    run.MarketTrend,
		Signal:         run.Signal,
		SentimentScore: run.SentimentScore,
		ItemCount:      run.ItemCount,
		Output:         run.Output,
	}
}
