// Package analysis calls the natural-language service for an article and reshapes the answers
// into the rows the dashboard renders.
package analysis

import "context"

// Client is the remote language service.
type Client interface {
	AnalyzeSentiment(ctx context.Context, text string) (RawSentiment, error)
	AnalyzeEntities(ctx context.Context, text string) ([]RawEntity, error)
	ClassifyText(ctx context.Context, text string) ([]RawCategory, error)
}

type RawSentence struct {
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

// RawSentiment is the per-sentence and document-level sentiment as returned by the service.
type RawSentiment struct {
	Sentences []RawSentence `json:"sentences"`
	Score     float64       `json:"score"`
	Magnitude float64       `json:"magnitude"`
}

type RawEntity struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Salience float64 `json:"salience"`
}

// RawCategory carries the full category path, e.g. "/Science/Computer Science".
type RawCategory struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}
