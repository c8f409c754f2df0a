package dto

// SentimentClassification is one item of an LLM classification response.
type SentimentClassification struct {
	Index      int     `json:"index"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// SentimentClassificationResult wraps the classification array.
type SentimentClassificationResult struct {
	Results []SentimentClassification `json:"results"`
}

// ReportNarrativeResult is the narrative returned by the LLM.
type ReportNarrativeResult struct {
	Summary         string   `json:"summary"`
	Reasoning       string   `json:"reasoning"`
	Highlights      []string `json:"highlights"`
	Recommendations []string `json:"recommendations"`
}
