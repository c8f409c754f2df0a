package common

import "time"

const (
	// RedisKeyScorePrefix prefixes cached scores: <prefix>:<model>:<content id>.
	RedisKeyScorePrefix = "sentiment:score"

	DefaultSourceTimeout = 20 * time.Second

	HTTPUserAgent = "golang-stock-sentiment/1.0"
)
