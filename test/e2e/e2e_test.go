// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"nlp-dashboard/internal/analysis"
	"nlp-dashboard/internal/articles"
	"nlp-dashboard/internal/common/cache"
	"nlp-dashboard/internal/common/config"
	"nlp-dashboard/internal/common/database"
	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/dashboard"
	"nlp-dashboard/internal/ingest"
	"nlp-dashboard/internal/models"
	"nlp-dashboard/internal/presentation"
)

// languageFake answers the three document endpoints and counts calls per endpoint.
type languageFake struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
}

func (f *languageFake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	fail := f.fail
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fail {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": {"code": 400, "message": "invalid document"}}`)
		return
	}

	switch r.URL.Path {
	case "/v1/documents:analyzeSentiment":
		io.WriteString(w, `{
			"documentSentiment": {"magnitude": 1.4, "score": 0.3},
			"sentences": [
				{"text": {"content": "Gophers are delightful."}, "sentiment": {"magnitude": 0.9, "score": 0.9}},
				{"text": {"content": "Moles are not."}, "sentiment": {"magnitude": 0.5, "score": -0.5}},
				{"text": {"content": "Both dig."}, "sentiment": {"magnitude": 0.0, "score": 0.0}}
			]
		}`)
	case "/v1/documents:analyzeEntities":
		io.WriteString(w, `{"entities": [
			{"name": "Gophers", "salience": 0.5},
			{"name": "Moles", "salience": 0.3},
			{"name": "Gophers", "salience": 0.1}
		]}`)
	case "/v1/documents:classifyText":
		io.WriteString(w, `{"categories": [{"name": "/Pets & Animals/Wildlife", "confidence": 0.87}]}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *languageFake) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type stack struct {
	router   *gin.Engine
	language *languageFake
	redis    *miniredis.Miniredis
}

func setup(t testing.TB, seed []ingest.Record) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	log := logger.NewTestLogger(t)

	store, err := articles.Open(config.StoreConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "articles.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if len(seed) > 0 {
		report, err := ingest.NewLoader(store, log).Load(ctx, "seed", seed)
		require.NoError(t, err)
		require.Equal(t, len(seed), report.Loaded)
	} else {
		require.NoError(t, store.EnsureSchema(ctx))
	}

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	redis, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { redis.Close() })
	memo := cache.NewMemoizer(cache.NewRedisCache(redis.Client), time.Duration(config.OneWeek)*time.Second, "nlp", log)

	fake := &languageFake{calls: map[string]int{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := analysis.NewLanguageClient(ctx,
		config.LanguageConfig{Endpoint: srv.URL + "/", Timeout: 5000},
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	service := dashboard.NewService(
		articles.NewFetcher(store, memo, log),
		analysis.NewAnalyzer(client, memo, log),
		nil, log,
	)
	handler := dashboard.NewHandler(&dashboard.Config{Title: "nlp-mvp", RequestTimeout: 10 * time.Second},
		service, map[string]dashboard.Pinger{"store": store, "cache": redis}, log)

	return &stack{router: dashboard.NewRouter(handler), language: fake, redis: mr}
}

func next(t testing.TB, r http.Handler) (*httptest.ResponseRecorder, dashboard.View) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/articles/next", nil))
	var view dashboard.View
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	}
	return w, view
}

func TestFullE2E(t *testing.T) {
	s := setup(t, []ingest.Record{
		{"title": "  Gophers  ", "text": "Gophers are delightful. Moles are not. Both dig.", "url": "https://example.com/gophers"},
	})

	t.Log("Refreshing the dashboard against a seeded store...")
	w, view := next(t, s.router)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "Gophers", view.Title)
	assert.Equal(t, "https://example.com/gophers", view.URL)
	assert.Equal(t, "+0.30", view.Sentiment)
	assert.Equal(t, "+1.40", view.Magnitude)
	assert.Equal(t, 8, view.Length)

	require.Len(t, view.Sentences, 3)
	assert.Equal(t, "Gophers are delightful.", view.Sentences[0].Text)
	assert.Equal(t, presentation.ColorPositive, view.Sentences[0].Color)
	assert.Equal(t, presentation.ColorNegative, view.Sentences[1].Color)
	assert.Equal(t, presentation.ColorNeutral, view.Sentences[2].Color)

	assert.Equal(t, []string{"Gophers", "Moles"}, view.EntityChart.Data[0].X)
	assert.Equal(t, []float64{0.5, 0.3}, view.EntityChart.Data[0].Y)
	assert.Equal(t, []string{"Wildlife"}, view.CategoryChart.Data[0].X)
	assert.Equal(t, 3, s.language.total())

	t.Log("Refreshing again is served from the cache...")
	w, again := next(t, s.router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, view.Title, again.Title)
	assert.Equal(t, 3, s.language.total())

	var sentimentKeys int
	for _, k := range s.redis.Keys() {
		if strings.HasPrefix(k, "nlp:"+analysis.OpSentiment+":") {
			sentimentKeys++
			assert.Equal(t, 7*24*time.Hour, s.redis.TTL(k))
		}
	}
	assert.Equal(t, 1, sentimentKeys)
}

func TestE2E_EmptyStoreShowsPlaceholder(t *testing.T) {
	s := setup(t, nil)

	w, view := next(t, s.router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PlaceholderTitle, view.Title)
	assert.Empty(t, view.URL)
	assert.Empty(t, view.FullText)
	assert.Empty(t, view.Sentences)
	assert.Zero(t, s.language.total())
}

func TestE2E_LanguageFailureIsReported(t *testing.T) {
	s := setup(t, []ingest.Record{{"title": "t", "text": "some words"}})
	s.language.mu.Lock()
	s.language.fail = true
	s.language.mu.Unlock()

	w, _ := next(t, s.router)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ANALYSIS_FAILED")

	s.language.mu.Lock()
	s.language.fail = false
	s.language.mu.Unlock()

	w, view := next(t, s.router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t", view.Title)
}

func TestE2E_Ready(t *testing.T) {
	s := setup(t, nil)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	s.redis.Close()
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func BenchmarkDashboard_CachedRefresh(b *testing.B) {
	s := setup(b, []ingest.Record{{"title": "bench", "text": "A short and cheerful benchmark article."}})
	_, _ = next(b, s.router)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/articles/next", nil))
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
