package dto

// HFClassificationRequest is the payload of the text-classification inference endpoint.
type HFClassificationRequest struct {
	Inputs     []string                   `json:"inputs"`
	Parameters HFClassificationParameters `json:"parameters"`
	Options    HFOptions                  `json:"options"`
}

// HFClassificationParameters controls the classifier output.
type HFClassificationParameters struct {
	TopK     int    `json:"top_k"`
	Device   string `json:"device,omitempty"`
	Truncate bool   `json:"truncation"`
}

// HFOptions are inference API options.
type HFOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// HFLabelScore is one label prediction.
type HFLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HFErrorResponse is returned by the inference API on failure.
type HFErrorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}
