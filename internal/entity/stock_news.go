package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// StockNews is an archived article. Scores live on its StockMentions, one per ticker.
type StockNews struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Link           string         `json:"link"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	Summary        string         `json:"summary"`
	RawContent     string         `json:"raw_content"`
	HashIdentifier string         `gorm:"unique;not null" json:"hash_identifier"`
	Source         string         `json:"source"`
	SourceType     string         `json:"source_type"`
	SourceURL      string         `json:"source_url"`
	Authors        pq.StringArray `gorm:"type:text[]" json:"authors"`
	Metadata       datatypes.JSON `json:"metadata"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	StockMentions  []StockMention `gorm:"foreignKey:StockNewsID" json:"stock_mentions"`
}

// TableName specifies the table name for the StockNews model.
func (StockNews) TableName() string {
	return "stock_news"
}

// StockMention holds the scores of one article for one ticker.
type StockMention struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StockNewsID    uint      `json:"stock_news_id"`
	StockCode      string    `gorm:"not null" json:"stock_code"`
	SentimentScore float64   `gorm:"not null" json:"sentiment_score"`
	RelevanceScore float64   `gorm:"not null" json:"relevance_score"`
	ImpactScore    float64   `gorm:"not null" json:"impact_score"`
	Confidence     *float64  `json:"confidence,omitempty"`
	Reasoning      string    `json:"reasoning"`
	ModelName      string    `json:"model_name"`
	ScoredAt       time.Time `gorm:"not null" json:"scored_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StockMention) TableName() string {
	return "stock_mentions"
}

// ArchivedMention is one row of the archive lookup: a mention joined with its article.
type ArchivedMention struct {
	StockMention
	HashIdentifier string         `json:"hash_identifier"`
	Title          string         `json:"title"`
	Link           string         `json:"link"`
	PublishedAt    *time.Time     `json:"published_at"`
	Summary        string         `json:"summary"`
	RawContent     string         `json:"raw_content"`
	Source         string         `json:"source"`
	SourceType     string         `json:"source_type"`
	SourceURL      string         `json:"source_url"`
	Authors        pq.StringArray `gorm:"type:text[]" json:"authors"`
	Metadata       datatypes.JSON `json:"metadata"`
}
