// Package dashboard serves the single-page article dashboard and the JSON endpoint behind its button.
package dashboard

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/common/observability"
	"nlp-dashboard/internal/models"
	"nlp-dashboard/internal/presentation"
)

type ArticleFetcher interface {
	FetchRandom(ctx context.Context) models.Article
}

type TextAnalyzer interface {
	Sentiment(ctx context.Context, doc models.Article) (models.SentimentResult, error)
	Entities(ctx context.Context, doc models.Article) ([]models.EntityRow, error)
	Categories(ctx context.Context, doc models.Article) ([]models.CategoryRow, error)
}

// View holds everything one button press puts on the page.
type View struct {
	RequestID     string                       `json:"requestId"`
	Number        int                          `json:"number"`
	EntityChart   presentation.Figure          `json:"entityChart"`
	CategoryChart presentation.Figure          `json:"categoryChart"`
	Sentiment     string                       `json:"sentiment"`
	Magnitude     string                       `json:"magnitude"`
	Length        int                          `json:"length"`
	Sentences     []presentation.SentenceBlock `json:"sentences"`
	FullText      string                       `json:"fullText"`
	Title         string                       `json:"title"`
	URL           string                       `json:"url"`
}

// Service runs fetch, analyze and render for one refresh.
type Service struct {
	fetcher  ArticleFetcher
	analyzer TextAnalyzer
	obs      *observability.Observability
	logger   logger.Logger
}

func NewService(fetcher ArticleFetcher, analyzer TextAnalyzer, obs *observability.Observability, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{fetcher: fetcher, analyzer: analyzer, obs: obs, logger: log}
}

// Next picks a random article and builds its view. The three analyses run one after
// another; the first failure aborts the refresh.
func (s *Service) Next(ctx context.Context) (*View, error) {
	ctx, span := observability.Tracer().Start(ctx, "dashboard.Next")
	defer span.End()

	start := time.Now()
	article := s.fetcher.FetchRandom(ctx)
	s.obs.RecordStage(ctx, "fetch", time.Since(start))
	span.SetAttributes(
		attribute.Int("article.number", article.Number),
		attribute.Bool("article.placeholder", article.IsPlaceholder()),
	)

	start = time.Now()
	sentiment, err := s.analyzer.Sentiment(ctx, article)
	s.obs.RecordStage(ctx, "sentiment", time.Since(start))
	if err != nil {
		s.obs.RecordRefresh(ctx, "error")
		return nil, err
	}

	start = time.Now()
	entities, err := s.analyzer.Entities(ctx, article)
	s.obs.RecordStage(ctx, "entities", time.Since(start))
	if err != nil {
		s.obs.RecordRefresh(ctx, "error")
		return nil, err
	}

	start = time.Now()
	categories, err := s.analyzer.Categories(ctx, article)
	s.obs.RecordStage(ctx, "categories", time.Since(start))
	if err != nil {
		s.obs.RecordRefresh(ctx, "error")
		return nil, err
	}

	start = time.Now()
	stats := presentation.BuildStats(article.Text, sentiment)
	view := &View{
		Number:        article.Number,
		EntityChart:   presentation.BuildEntityChart(entities),
		CategoryChart: presentation.BuildCategoryChart(categories),
		Sentiment:     stats.Sentiment,
		Magnitude:     stats.Magnitude,
		Length:        stats.Length,
		Sentences:     presentation.BuildSentenceList(sentiment.Rows),
		FullText:      article.Text,
		Title:         article.Title,
		URL:           article.URL,
	}
	s.obs.RecordStage(ctx, "render", time.Since(start))

	status := "ok"
	if article.IsPlaceholder() {
		status = "placeholder"
	}
	s.obs.RecordRefresh(ctx, status)

	s.logger.Debug("article view built", map[string]interface{}{
		"number":     article.Number,
		"status":     status,
		"sentences":  len(view.Sentences),
		"entities":   len(entities),
		"categories": len(categories),
	})
	return view, nil
}
