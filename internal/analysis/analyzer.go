package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"nlp-dashboard/internal/common/cache"
	apperrors "nlp-dashboard/internal/common/errors"
	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/common/metrics"
	"nlp-dashboard/internal/common/observability"
	"nlp-dashboard/internal/models"
)

const (
	OpSentiment  = "sentiment"
	OpEntities   = "entities"
	OpCategories = "categories"
)

// Analyzer runs the three analyses for an article. Raw service answers are cached per
// operation, keyed by the article's title, url and text.
type Analyzer struct {
	client Client
	memo   *cache.Memoizer
	logger logger.Logger
}

func NewAnalyzer(client Client, memo *cache.Memoizer, log logger.Logger) *Analyzer {
	if memo == nil {
		memo = cache.NewMemoizer(nil, 0, "", nil)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Analyzer{client: client, memo: memo, logger: log}
}

func (a *Analyzer) Sentiment(ctx context.Context, doc models.Article) (models.SentimentResult, error) {
	raw, err := run(ctx, a, OpSentiment, doc, a.client.AnalyzeSentiment)
	if err != nil {
		return models.SentimentResult{}, err
	}
	return ShapeSentiment(raw), nil
}

func (a *Analyzer) Entities(ctx context.Context, doc models.Article) ([]models.EntityRow, error) {
	raw, err := run(ctx, a, OpEntities, doc, a.client.AnalyzeEntities)
	if err != nil {
		return nil, err
	}
	return ShapeEntities(raw), nil
}

func (a *Analyzer) Categories(ctx context.Context, doc models.Article) ([]models.CategoryRow, error) {
	raw, err := run(ctx, a, OpCategories, doc, a.client.ClassifyText)
	if err != nil {
		return nil, err
	}
	return ShapeCategories(raw), nil
}

// run skips the service for blank text and otherwise reads through the cache.
func run[T any](ctx context.Context, a *Analyzer, op string, doc models.Article, call func(context.Context, string) (T, error)) (T, error) {
	var zero T
	if strings.TrimSpace(doc.Text) == "" {
		return zero, nil
	}

	key := a.memo.Key(op, doc.Title, doc.URL, doc.Text)
	return cache.Memoize(ctx, a.memo, op, key, func(ctx context.Context) (T, error) {
		ctx, span := observability.Tracer().Start(ctx, "analysis."+op)
		defer span.End()
		span.SetAttributes(attribute.Int("document.length", len(doc.Text)))

		start := time.Now()
		out, err := call(ctx, doc.Text)
		metrics.AnalysisDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.AnalysisCalls.WithLabelValues(op, "error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, op+" failed")
			a.logger.Error("language analysis failed", map[string]interface{}{
				"operation": op,
				"title":     doc.Title,
				"error":     err.Error(),
			})
			return zero, wrapError(ctx, op, err)
		}

		metrics.AnalysisCalls.WithLabelValues(op, "ok").Inc()
		return out, nil
	})
}

func wrapError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewAnalysisTimeoutError(op, err)
	}
	return apperrors.NewAnalysisFailedError(op, err)
}
