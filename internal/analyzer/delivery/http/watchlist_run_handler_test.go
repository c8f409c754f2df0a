package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRunRepository struct {
	runs      []entity.WatchlistRun
	err       error
	gotTicker string
	gotLimit  int
}

func (f *fakeRunRepository) Create(ctx context.Context, run *entity.WatchlistRun) error {
	return nil
}

func (f *fakeRunRepository) FindByID(ctx context.Context, id uint) (*entity.WatchlistRun, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.runs {
		if f.runs[i].ID == id {
			return &f.runs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRunRepository) FindRecent(ctx context.Context, ticker string, limit int) ([]entity.WatchlistRun, error) {
	f.gotTicker, f.gotLimit = ticker, limit
	return f.runs, f.err
}

func newRunServer(repo *fakeRunRepository) *echo.Echo {
	e := echo.New()
	NewWatchlistRunHandler(repo, logger.NewNop()).RegisterRoutes(e.Group("/api/v1/watchlist/runs"))
	return e
}

func TestGetRuns(t *testing.T) {
	score := 0.42
	repo := &fakeRunRepository{runs: []entity.WatchlistRun{
		{ID: 2, Ticker: "AAPL", Status: entity.WatchlistRunSuccess, ExecutedAt: testNow, Signal: "buy", SentimentScore: &score, ItemCount: 3},
		{ID: 1, Ticker: "AAPL", Status: entity.WatchlistRunFailed, ExecutedAt: testNow, Output: "model offline"},
	}}

	rec := do(newRunServer(repo), http.MethodGet, "/api/v1/watchlist/runs?ticker=aapl&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.WatchlistRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "buy", resp[0].Signal)
	assert.Equal(t, 0.42, *resp[0].SentimentScore)
	assert.Equal(t, "model offline", resp[1].Output)
	assert.Equal(t, "AAPL", repo.gotTicker)
	assert.Equal(t, 2, repo.gotLimit)
}

func TestGetRunsDefaultsAndErrors(t *testing.T) {
	repo := &fakeRunRepository{}
	rec := do(newRunServer(repo), http.MethodGet, "/api/v1/watchlist/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.Equal(t, defaultRunLimit, repo.gotLimit)

	rec = do(newRunServer(repo), http.MethodGet, "/api/v1/watchlist/runs?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newRunServer(&fakeRunRepository{err: errors.New("db down")}), http.MethodGet, "/api/v1/watchlist/runs", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetRunByID(t *testing.T) {
	repo := &fakeRunRepository{runs: []entity.WatchlistRun{{ID: 7, Ticker: "MSFT", Status: entity.WatchlistRunSuccess, ExecutedAt: testNow}}}
	e := newRunServer(repo)

	rec := do(e, http.MethodGet, "/api/v1/watchlist/runs/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.WatchlistRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "MSFT", resp.Ticker)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/v1/watchlist/runs/8", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/v1/watchlist/runs/abc", "").Code)
}
