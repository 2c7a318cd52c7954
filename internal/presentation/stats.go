package presentation

import (
	"fmt"
	"strings"

	"nlp-dashboard/internal/models"
)

// Stats are the three summary cards.
type Stats struct {
	Sentiment string `json:"sentiment"`
	Magnitude string `json:"magnitude"`
	Length    int    `json:"length"`
}

// BuildStats formats the document sentiment as signed two-decimal strings. Length counts
// the pieces of text split on single spaces, so empty text has length 1.
func BuildStats(text string, sentiment models.SentimentResult) Stats {
	return Stats{
		Sentiment: fmt.Sprintf("%+.2f", sentiment.Score),
		Magnitude: fmt.Sprintf("%+.2f", sentiment.Magnitude),
		Length:    len(strings.Split(text, " ")),
	}
}
