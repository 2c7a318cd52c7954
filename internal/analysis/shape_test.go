package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlp-dashboard/internal/models"
)

func TestShapeSentiment_SortsCapsAndRounds(t *testing.T) {
	raw := RawSentiment{Score: 0.123456, Magnitude: 3.3}
	for i := 0; i < 12; i++ {
		raw.Sentences = append(raw.Sentences, RawSentence{
			Text:      fmt.Sprintf("s%d", i),
			Score:     -0.5,
			Magnitude: float64(i) / 10,
		})
	}
	raw.Sentences[3].Magnitude = 0.123456789

	got := ShapeSentiment(raw)

	require.Len(t, got.Rows, 10)
	assert.Equal(t, "s11", got.Rows[0].Sentence)
	assert.Equal(t, 1.1, got.Rows[0].Magnitude)
	for i := 1; i < len(got.Rows); i++ {
		assert.GreaterOrEqual(t, got.Rows[i-1].Magnitude, got.Rows[i].Magnitude)
	}
	assert.Equal(t, 0.123456, got.Score)
	assert.Equal(t, 3.3, got.Magnitude)
}

func TestShapeSentiment_StableForEqualMagnitude(t *testing.T) {
	got := ShapeSentiment(RawSentiment{Sentences: []RawSentence{
		{Text: "first", Magnitude: 0.5},
		{Text: "second", Magnitude: 0.5},
		{Text: "third", Magnitude: 0.9},
	}})

	var order []string
	for _, r := range got.Rows {
		order = append(order, r.Sentence)
	}
	assert.Equal(t, []string{"third", "first", "second"}, order)
}

func TestShapeSentiment_Empty(t *testing.T) {
	got := ShapeSentiment(RawSentiment{})
	assert.NotNil(t, got.Rows)
	assert.Empty(t, got.Rows)
}

func TestShapeEntities_DeduplicatesByMaxSalience(t *testing.T) {
	got := ShapeEntities([]RawEntity{
		{Name: "Go", Salience: 0.1},
		{Name: "Rob Pike", Salience: 0.3},
		{Name: "Go", Salience: 0.5},
		{Name: "Google", Salience: 0.2},
		{Name: "Go", Salience: 0.05},
	})

	assert.Equal(t, []models.EntityRow{
		{Entity: "Go", Salience: 0.5},
		{Entity: "Rob Pike", Salience: 0.3},
		{Entity: "Google", Salience: 0.2},
	}, got)
}

func TestShapeEntities_TopFiveWithNameTieBreak(t *testing.T) {
	got := ShapeEntities([]RawEntity{
		{Name: "f", Salience: 0.1},
		{Name: "e", Salience: 0.1},
		{Name: "d", Salience: 0.1},
		{Name: "c", Salience: 0.1},
		{Name: "b", Salience: 0.1},
		{Name: "a", Salience: 0.1},
		{Name: "z", Salience: 0.9},
	})

	require.Len(t, got, 5)
	var names []string
	for _, r := range got {
		names = append(names, r.Entity)
	}
	assert.Equal(t, []string{"z", "a", "b", "c", "d"}, names)
}

func TestShapeCategories(t *testing.T) {
	got := ShapeCategories([]RawCategory{
		{Name: "/Science/Computer Science", Confidence: 0.61},
		{Name: "/Internet & Telecom", Confidence: 0.93},
		{Name: "/Science/Mathematics/Statistics", Confidence: 0.123449},
		{Name: "/News", Confidence: 0.2},
		{Name: "/Business & Industrial", Confidence: 0.5},
		{Name: "/Arts & Entertainment", Confidence: 0.1},
	})

	assert.Equal(t, []models.CategoryRow{
		{Category: "Internet & Telecom", Confidence: 0.93},
		{Category: "Computer Science", Confidence: 0.61},
		{Category: "Business & Industrial", Confidence: 0.5},
		{Category: "News", Confidence: 0.2},
		{Category: "Statistics", Confidence: 0.1234},
	}, got)
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "Statistics", lastSegment("/Science/Mathematics/Statistics"))
	assert.Equal(t, "News", lastSegment("News"))
	assert.Equal(t, "", lastSegment("/Science/"))
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.12344, 0.1234},
		{0.12346, 0.1235},
		{0.5, 0.5},
		{-0.76543, -0.7654},
		{1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, round4(tt.in), "round4(%v)", tt.in)
	}
}
