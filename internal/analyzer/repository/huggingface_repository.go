package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"golang.org/x/time/rate"
)

type huggingFaceRepository struct {
	client         *http.Client
	cfg            config.HuggingFace
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewHuggingFaceRepository creates a HuggingFaceRepository backed by the inference API.
func NewHuggingFaceRepository(cfg config.HuggingFace, log *logger.Logger) HuggingFaceRepository {
	rpm := cfg.MaxRequestPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &huggingFaceRepository{
		client:         &http.Client{Timeout: timeout},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

// Classify sends one batched request and returns the label scores per text.
func (r *huggingFaceRepository) Classify(ctx context.Context, model string, texts []string, device string) ([][]dto.HFLabelScore, error) {
	if len(texts) == 0 {
		return [][]dto.HFLabelScore{}, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload, err := json.Marshal(dto.HFClassificationRequest{
		Inputs:     texts,
		Parameters: dto.HFClassificationParameters{TopK: 3, Device: device, Truncate: true},
		Options:    dto.HFOptions{WaitForModel: true, UseCache: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s", strings.TrimRight(r.cfg.BaseURL, "/"), model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", common.HTTPUserAgent)
	if r.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.APIToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to inference API", logger.ErrorField(err), logger.StringField("model", model))
		return nil, fmt.Errorf("failed to send request to inference API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.HFErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("received non-OK response from inference API: %d - %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("received non-OK response from inference API: %d - %s", resp.StatusCode, string(body))
	}

	predictions, err := decodeClassification(body, len(texts))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Inference API classified batch",
		logger.StringField("model", model),
		logger.IntField("count", len(texts)),
	)
	return predictions, nil
}

// decodeClassification accepts the nested per-input form and the flat form
// the API returns for single inputs.
func decodeClassification(body []byte, expected int) ([][]dto.HFLabelScore, error) {
	var nested [][]dto.HFLabelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) != expected {
			return nil, fmt.Errorf("inference API returned %d predictions for %d inputs", len(nested), expected)
		}
		return nested, nil
	}

	var flat []dto.HFLabelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if expected != 1 {
		return nil, fmt.Errorf("inference API returned a flat prediction for %d inputs", expected)
	}
	return [][]dto.HFLabelScore{flat}, nil
}
