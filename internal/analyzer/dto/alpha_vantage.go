package dto

// AlphaVantageNewsResponse is the NEWS_SENTIMENT response body.
type AlphaVantageNewsResponse struct {
	Items                    string                `json:"items"`
	SentimentScoreDefinition string                `json:"sentiment_score_definition"`
	RelevanceScoreDefinition string                `json:"relevance_score_definition"`
	Feed                     []AlphaVantageArticle `json:"feed"`

	// Set instead of Feed when the call is throttled or rejected.
	Information  string `json:"Information,omitempty"`
	Note         string `json:"Note,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
}

// AlphaVantageArticle is one feed entry.
type AlphaVantageArticle struct {
	Title                 string                        `json:"title"`
	URL                   string                        `json:"url"`
	TimePublished         string                        `json:"time_published"`
	Authors               []string                      `json:"authors"`
	Summary               string                        `json:"summary"`
	BannerImage           string                        `json:"banner_image"`
	Source                string                        `json:"source"`
	CategoryWithinSource  string                        `json:"category_within_source"`
	SourceDomain          string                        `json:"source_domain"`
	OverallSentimentScore float64                       `json:"overall_sentiment_score"`
	OverallSentimentLabel string                        `json:"overall_sentiment_label"`
	TickerSentiment       []AlphaVantageTickerSentiment `json:"ticker_sentiment"`
}

// AlphaVantageTickerSentiment carries per-ticker scores. The API encodes the numbers as strings.
type AlphaVantageTickerSentiment struct {
	Ticker               string `json:"ticker"`
	RelevanceScore       string `json:"relevance_score"`
	TickerSentimentScore string `json:"ticker_sentiment_score"`
	TickerSentimentLabel string `json:"ticker_sentiment_label"`
}
