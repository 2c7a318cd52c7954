package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticle_Trimmed(t *testing.T) {
	a := Article{Number: 3, Title: "  Title \n", Text: "\tBody ", URL: " https://example.com/a "}
	got := a.Trimmed()

	assert.Equal(t, Article{Number: 3, Title: "Title", Text: "Body", URL: "https://example.com/a"}, got)
	assert.Equal(t, "  Title \n", a.Title)
}

func TestPlaceholderArticle(t *testing.T) {
	p := PlaceholderArticle(9)
	assert.Equal(t, "Please try again :(", p.Title)
	assert.Empty(t, p.Text)
	assert.Empty(t, p.URL)
	assert.True(t, p.IsPlaceholder())
	assert.False(t, Article{Title: "Real", Text: "x"}.IsPlaceholder())
}
