package analysis

import (
	"math"
	"sort"
	"strings"

	"nlp-dashboard/internal/models"
)

const (
	maxSentences  = 10
	maxEntities   = 5
	maxCategories = 5
)

// ShapeSentiment keeps the ten sentences with the largest magnitude, strongest first.
// Row values are rounded to four decimals; the document-level values are left as returned.
func ShapeSentiment(raw RawSentiment) models.SentimentResult {
	rows := make([]models.SentimentRow, 0, len(raw.Sentences))
	for _, s := range raw.Sentences {
		rows = append(rows, models.SentimentRow{
			Sentence:  s.Text,
			Score:     round4(s.Score),
			Magnitude: round4(s.Magnitude),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Magnitude > rows[j].Magnitude
	})
	if len(rows) > maxSentences {
		rows = rows[:maxSentences]
	}

	return models.SentimentResult{
		Rows:      rows,
		Score:     raw.Score,
		Magnitude: raw.Magnitude,
	}
}

// ShapeEntities keeps one row per entity name at its highest salience, then the five most
// salient entities. Equal salience is ordered by name.
func ShapeEntities(raw []RawEntity) []models.EntityRow {
	best := make(map[string]float64, len(raw))
	for _, e := range raw {
		if cur, ok := best[e.Name]; !ok || e.Salience > cur {
			best[e.Name] = e.Salience
		}
	}

	rows := make([]models.EntityRow, 0, len(best))
	for name, salience := range best {
		rows = append(rows, models.EntityRow{Entity: name, Salience: round4(salience)})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Salience != rows[j].Salience {
			return rows[i].Salience > rows[j].Salience
		}
		return rows[i].Entity < rows[j].Entity
	})
	if len(rows) > maxEntities {
		rows = rows[:maxEntities]
	}
	return rows
}

// ShapeCategories reduces each category path to its last segment and keeps the five
// most confident.
func ShapeCategories(raw []RawCategory) []models.CategoryRow {
	rows := make([]models.CategoryRow, 0, len(raw))
	for _, c := range raw {
		rows = append(rows, models.CategoryRow{
			Category:   lastSegment(c.Name),
			Confidence: round4(c.Confidence),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Confidence > rows[j].Confidence
	})
	if len(rows) > maxCategories {
		rows = rows[:maxCategories]
	}
	return rows
}

func lastSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

// round4 rounds half to even at the fourth decimal.
func round4(x float64) float64 {
	return math.RoundToEven(x*1e4) / 1e4
}
