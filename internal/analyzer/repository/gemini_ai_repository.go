package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-sentiment/internal/analyzer/config"
	"golang-stock-sentiment/internal/analyzer/dto"
	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is an implementation of AIRepository that uses the Google Gemini API.
type geminiAIRepository struct {
	cfg            config.Gemini
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	if genAiClient == nil {
		return nil, fmt.Errorf("gemini client is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}
	rpm := cfg.MaxRequestPerMinute
	if rpm <= 0 {
		rpm = 15
	}

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) ModelName() string {
	return r.cfg.Model
}

// ClassifySentiment labels every text as positive, neutral or negative.
func (r *geminiAIRepository) ClassifySentiment(ctx context.Context, texts []string) ([]dto.SentimentClassification, error) {
	if len(texts) == 0 {
		return []dto.SentimentClassification{}, nil
	}

	raw, err := r.executeGeminiAIRequest(ctx, BuildClassifySentimentPrompt(texts))
	if err != nil {
		return nil, err
	}
	return parseClassificationResponse(raw, len(texts))
}

// GenerateReportNarrative writes the narrative part of a report.
func (r *geminiAIRepository) GenerateReportNarrative(ctx context.Context, in *entity.SentimentAnalysisInput, trend entity.MarketTrend, signal entity.Signal) (*dto.ReportNarrativeResult, error) {
	raw, err := r.executeGeminiAIRequest(ctx, BuildReportNarrativePrompt(in, trend, signal))
	if err != nil {
		return nil, err
	}
	return parseNarrativeResponse(raw)
}

func (r *geminiAIRepository) executeGeminiAIRequest(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	if tokens, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Model, contents, nil); err == nil {
		r.logger.Debug("Gemini token count", logger.IntField("total_tokens", int(tokens.TotalTokens)))
	} else {
		r.logger.Warn("Failed to count Gemini tokens", logger.ErrorField(err))
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	temperature := float32(0.2)
	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Model, contents, &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to Gemini API: %w", err)
	}

	text := extractTextFromResponse(resp)
	if text == "" {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}
	return text, nil
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func parseClassificationResponse(raw string, expected int) ([]dto.SentimentClassification, error) {
	var result dto.SentimentClassificationResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification from Gemini response: %w", err)
	}

	ordered := make([]dto.SentimentClassification, expected)
	seen := make([]bool, expected)
	for _, c := range result.Results {
		if c.Index < 0 || c.Index >= expected {
			return nil, fmt.Errorf("gemini classification index %d out of range", c.Index)
		}
		ordered[c.Index] = c
		seen[c.Index] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("gemini classification missing result for index %d", i)
		}
	}
	return ordered, nil
}

func parseNarrativeResponse(raw string) (*dto.ReportNarrativeResult, error) {
	var result dto.ReportNarrativeResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal narrative from Gemini response: %w", err)
	}
	if strings.TrimSpace(result.Summary) == "" {
		return nil, fmt.Errorf("gemini narrative has an empty summary")
	}
	return &result, nil
}
