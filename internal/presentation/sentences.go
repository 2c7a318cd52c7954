package presentation

import "nlp-dashboard/internal/models"

const (
	// SentimentThreshold separates positive and negative sentences from neutral ones.
	SentimentThreshold = 0.2

	ColorPositive = "rgb(152,223,138,0.4)"
	ColorNegative = "rgb(255,152,150,0.4)"
	ColorNeutral  = "rgb(134,142,150,0.4)"
)

type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// SentenceBlock is one sentence rendered as a colored block.
type SentenceBlock struct {
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
	Tone      Tone    `json:"tone"`
	Color     string  `json:"color"`
}

// BuildSentenceList keeps row order and colors each sentence by its score.
func BuildSentenceList(rows []models.SentimentRow) []SentenceBlock {
	blocks := make([]SentenceBlock, 0, len(rows))
	for _, r := range rows {
		tone := ToneFor(r.Score)
		blocks = append(blocks, SentenceBlock{
			Text:      r.Sentence,
			Score:     r.Score,
			Magnitude: r.Magnitude,
			Tone:      tone,
			Color:     tone.Color(),
		})
	}
	return blocks
}

func ToneFor(score float64) Tone {
	switch {
	case score >= SentimentThreshold:
		return TonePositive
	case score <= -SentimentThreshold:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

func (t Tone) Color() string {
	switch t {
	case TonePositive:
		return ColorPositive
	case ToneNegative:
		return ColorNegative
	default:
		return ColorNeutral
	}
}
