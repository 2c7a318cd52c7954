package articles

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nlp-dashboard/internal/common/cache"
	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/common/metrics"
	"nlp-dashboard/internal/common/observability"
	"nlp-dashboard/internal/models"
)

const (
	countNamespace   = "count"
	articleNamespace = "article"
)

var errEmptyCollection = errors.New("article collection is empty")

// Fetcher picks a random article on every call.
type Fetcher struct {
	store  Store
	memo   *cache.Memoizer
	logger logger.Logger
	intn   func(n int) int
}

type Option func(*Fetcher)

// WithRandom replaces the index source. intn must return a value in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(f *Fetcher) { f.intn = intn }
}

func NewFetcher(store Store, memo *cache.Memoizer, log logger.Logger, opts ...Option) *Fetcher {
	if memo == nil {
		memo = cache.NewMemoizer(nil, 0, "", nil)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	f := &Fetcher{store: store, memo: memo, logger: log, intn: rand.IntN}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchRandom returns a uniformly chosen article, or the placeholder article if the
// collection cannot be counted, is empty, or the chosen number cannot be read.
// It never returns an error.
func (f *Fetcher) FetchRandom(ctx context.Context) models.Article {
	ctx, span := observability.Tracer().Start(ctx, "articles.FetchRandom")
	defer span.End()

	count, err := cache.Memoize(ctx, f.memo, countNamespace, f.memo.Key(countNamespace),
		func(ctx context.Context) (int, error) {
			n, err := f.store.Count(ctx)
			if err != nil {
				return 0, err
			}
			if n <= 0 {
				return 0, errEmptyCollection
			}
			return n, nil
		})
	if err != nil {
		reason := "count_failed"
		if errors.Is(err, errEmptyCollection) {
			reason = "empty"
		}
		return f.fallback(span, 0, reason, err)
	}

	number := f.intn(count)
	span.SetAttributes(attribute.Int("article.number", number), attribute.Int("article.count", count))

	article, err := cache.Memoize(ctx, f.memo, articleNamespace, f.memo.Key(articleNamespace, strconv.Itoa(number)),
		func(ctx context.Context) (models.Article, error) {
			a, err := f.store.Get(ctx, number)
			if err != nil {
				return models.Article{}, err
			}
			return a.Trimmed(), nil
		})
	if err != nil {
		reason := "lookup_failed"
		if IsNotFound(err) {
			reason = "not_found"
		}
		return f.fallback(span, number, reason, err)
	}

	article.Number = number
	return article
}

func (f *Fetcher) fallback(span trace.Span, number int, reason string, err error) models.Article {
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	metrics.ArticleFallbacks.WithLabelValues(reason).Inc()
	f.logger.Warn("serving placeholder article", map[string]interface{}{
		"number": number,
		"reason": reason,
		"error":  err.Error(),
	})
	return models.PlaceholderArticle(number)
}
