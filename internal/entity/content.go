package entity

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	"golang-stock-sentiment/pkg/utils"
)

// SentimentContent is a raw content item about a ticker.
type SentimentContent struct {
	ContentID   string            `json:"content_id"`
	Ticker      string            `json:"ticker"`
	Source      string            `json:"source"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary,omitempty"`
	Body        string            `json:"body,omitempty"`
	URL         string            `json:"url,omitempty"`
	PublishedAt *time.Time        `json:"published_at,omitempty"`
	CollectedAt *time.Time        `json:"collected_at,omitempty"`
	SourceURL   string            `json:"source_url,omitempty"`
	SourceType  SourceType        `json:"source_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewSentimentContent normalizes c and derives its ContentID when missing.
func NewSentimentContent(c SentimentContent) (SentimentContent, error) {
	c.Ticker = strings.ToUpper(strings.TrimSpace(c.Ticker))
	if c.Ticker == "" {
		return SentimentContent{}, fmt.Errorf("%w: ticker is required", ErrInvalidTicker)
	}
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return SentimentContent{}, fmt.Errorf("title is required for %s content", c.Ticker)
	}
	c.Source = strings.TrimSpace(c.Source)
	if c.SourceType == "" {
		c.SourceType = SourceTypeNews
	}
	c = c.Clone()
	if c.ContentID == "" {
		c.ContentID = BuildContentID(c.Ticker, c.Source, c.URL, c.PublishedAt)
	}
	return c, nil
}

// Clone returns a copy that shares no maps or pointers with c. Timestamps
// come back in UTC.
func (c SentimentContent) Clone() SentimentContent {
	c.PublishedAt = utils.UTCPtr(c.PublishedAt)
	c.CollectedAt = utils.UTCPtr(c.CollectedAt)
	c.Metadata = maps.Clone(c.Metadata)
	return c
}

// BuildContentID hashes ticker, source, url and publish time into a stable id
// of the form <source>_<md5 hex>. The same article reported by two sources
// yields two ids because the source is part of the hash input.
func BuildContentID(ticker, source, url string, publishedAt *time.Time) string {
	published := ""
	if publishedAt != nil {
		published = publishedAt.UTC().Format(time.RFC3339)
	}
	sum := md5.Sum([]byte(strings.Join([]string{ticker, source, url, published}, ":")))
	prefix := source
	if prefix == "" {
		prefix = "unknown"
	}
	return prefix + "_" + hex.EncodeToString(sum[:])
}

// SentimentContentScored is a content item with its scores attached.
type SentimentContentScored struct {
	Content        SentimentContent `json:"content"`
	SentimentScore float64          `json:"sentiment_score"`
	RelevanceScore float64          `json:"relevance_score"`
	ImpactScore    float64          `json:"impact_score"`
	Confidence     *float64         `json:"confidence,omitempty"`
	Reasoning      string           `json:"reasoning,omitempty"`
	ModelName      string           `json:"model_name,omitempty"`
	ScoredAt       time.Time        `json:"scored_at"`
}

// NewSentimentContentScored validates score ranges and normalizes ScoredAt to UTC.
// Out-of-range values are rejected; producers clamp before calling. The result
// owns its content: nothing is shared with s.
func NewSentimentContentScored(s SentimentContentScored) (SentimentContentScored, error) {
	if err := checkRange("sentiment_score", s.SentimentScore, -1, 1); err != nil {
		return SentimentContentScored{}, err
	}
	if err := checkRange("relevance_score", s.RelevanceScore, 0, 1); err != nil {
		return SentimentContentScored{}, err
	}
	if err := checkRange("impact_score", s.ImpactScore, 0, 1); err != nil {
		return SentimentContentScored{}, err
	}
	if s.Confidence != nil {
		if err := checkRange("confidence", *s.Confidence, 0, 1); err != nil {
			return SentimentContentScored{}, err
		}
	}
	if s.ScoredAt.IsZero() {
		s.ScoredAt = time.Now()
	}
	s.ScoredAt = s.ScoredAt.UTC()
	return s.Clone(), nil
}

// Clone returns a deep copy of s.
func (s SentimentContentScored) Clone() SentimentContentScored {
	s.Content = s.Content.Clone()
	if s.Confidence != nil {
		c := *s.Confidence
		s.Confidence = &c
	}
	return s
}

// Weight is relevance × impact, the ranking emphasis of an item.
func (s SentimentContentScored) Weight() float64 {
	return s.RelevanceScore * s.ImpactScore
}

func checkRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalidScore, name, v, lo, hi)
	}
	return nil
}
