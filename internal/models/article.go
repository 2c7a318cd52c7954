package models

import "strings"

// PlaceholderTitle is shown when no article could be loaded.
const PlaceholderTitle = "Please try again :("

// Article is one stored document.
type Article struct {
	Number int    `json:"number" db:"number"`
	Title  string `json:"title" db:"title"`
	Text   string `json:"text" db:"text"`
	URL    string `json:"url" db:"url"`
}

// Trimmed returns a copy with surrounding whitespace removed from title, text and url.
func (a Article) Trimmed() Article {
	a.Title = strings.TrimSpace(a.Title)
	a.Text = strings.TrimSpace(a.Text)
	a.URL = strings.TrimSpace(a.URL)
	return a
}

// PlaceholderArticle is substituted for any failed lookup.
func PlaceholderArticle(number int) Article {
	return Article{Number: number, Title: PlaceholderTitle}
}

// IsPlaceholder reports whether a is the lookup-failure substitute.
func (a Article) IsPlaceholder() bool {
	return a.Title == PlaceholderTitle && a.Text == "" && a.URL == ""
}
