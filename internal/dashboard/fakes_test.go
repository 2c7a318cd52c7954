package dashboard

import (
	"context"
	"errors"

	"nlp-dashboard/internal/models"
)

type fakeFetcher struct {
	article models.Article
}

func (f fakeFetcher) FetchRandom(context.Context) models.Article {
	return f.article
}

type fakeAnalyzer struct {
	sentiment  models.SentimentResult
	entities   []models.EntityRow
	categories []models.CategoryRow
	failOn     string
	err        error
	calls      []string
}

func (f *fakeAnalyzer) Sentiment(ctx context.Context, doc models.Article) (models.SentimentResult, error) {
	f.calls = append(f.calls, "sentiment")
	if f.failOn == "sentiment" {
		return models.SentimentResult{}, f.err
	}
	return f.sentiment, nil
}

func (f *fakeAnalyzer) Entities(ctx context.Context, doc models.Article) ([]models.EntityRow, error) {
	f.calls = append(f.calls, "entities")
	if f.failOn == "entities" {
		return nil, f.err
	}
	return f.entities, nil
}

func (f *fakeAnalyzer) Categories(ctx context.Context, doc models.Article) ([]models.CategoryRow, error) {
	f.calls = append(f.calls, "categories")
	if f.failOn == "categories" {
		return nil, f.err
	}
	return f.categories, nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

var errDown = errors.New("connection refused")

func sampleArticle() models.Article {
	return models.Article{Number: 3, Title: "Gophers", Text: "Gophers dig. Gophers rest.", URL: "https://example.com/gophers"}
}

func sampleAnalyzer() *fakeAnalyzer {
	return &fakeAnalyzer{
		sentiment: models.SentimentResult{
			Score:     0.25,
			Magnitude: 1.1,
			Rows: []models.SentimentRow{
				{Sentence: "Gophers dig.", Score: 0.6, Magnitude: 0.6},
				{Sentence: "Gophers rest.", Score: -0.1, Magnitude: 0.1},
			},
		},
		entities:   []models.EntityRow{{Entity: "Gophers", Salience: 1}},
		categories: []models.CategoryRow{{Category: "Animals", Confidence: 0.8}},
	}
}
