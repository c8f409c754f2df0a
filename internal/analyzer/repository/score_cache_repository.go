package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/common"
	"golang-stock-sentiment/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type scoreCacheRepository struct {
	client *redis.Client
	logger *logger.Logger
}

// NewScoreCacheRepository creates a redis-backed ScoreCacheRepository.
func NewScoreCacheRepository(client *redis.Client, log *logger.Logger) ScoreCacheRepository {
	return &scoreCacheRepository{client: client, logger: log}
}

func scoreKey(model, contentID string) string {
	return fmt.Sprintf("%s:%s:%s", common.RedisKeyScorePrefix, model, contentID)
}

// GetMany returns the cached items found for contentIDs. Missing ids are absent from the map.
func (r *scoreCacheRepository) GetMany(ctx context.Context, model string, contentIDs []string) (map[string]entity.SentimentContentScored, error) {
	found := make(map[string]entity.SentimentContentScored)
	if len(contentIDs) == 0 {
		return found, nil
	}

	keys := make([]string, len(contentIDs))
	for i, id := range contentIDs {
		keys[i] = scoreKey(model, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached scores: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var item entity.SentimentContentScored
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			r.logger.Warn("Dropping undecodable cached score", logger.StringField("key", keys[i]), logger.ErrorField(err))
			continue
		}
		found[contentIDs[i]] = item
	}
	return found, nil
}

// SetMany writes items with the given ttl in one pipeline.
func (r *scoreCacheRepository) SetMany(ctx context.Context, model string, items []entity.SentimentContentScored, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal scored content %s: %w", item.Content.ContentID, err)
		}
		pipe.Set(ctx, scoreKey(model, item.Content.ContentID), payload, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write cached scores: %w", err)
	}
	return nil
}
