package models

// SentimentRow is one sentence with its sentiment.
type SentimentRow struct {
	Sentence  string  `json:"sentence"`
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

// SentimentResult holds the per-sentence rows plus the document-level sentiment.
type SentimentResult struct {
	Rows      []SentimentRow `json:"rows"`
	Score     float64        `json:"score"`
	Magnitude float64        `json:"magnitude"`
}

// EntityRow is one named entity and its salience.
type EntityRow struct {
	Entity   string  `json:"entity"`
	Salience float64 `json:"salience"`
}

// CategoryRow is one content category, reduced to its last path segment.
type CategoryRow struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}
