// Package ingest fills the article collection from JSON files and RSS/Atom feeds.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"nlp-dashboard/internal/articles"
	apperrors "nlp-dashboard/internal/common/errors"
	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/common/metrics"
	"nlp-dashboard/internal/common/validation"
	"nlp-dashboard/internal/models"
)

// Record is one undecoded article as read from a file or feed.
type Record map[string]interface{}

// Report summarizes one load. Loaded counts new articles; Overwritten counts stored
// articles replaced by an explicit number.
type Report struct {
	Source      string   `json:"source"`
	Loaded      int      `json:"loaded"`
	Overwritten int      `json:"overwritten"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors,omitempty"`
}

type Loader struct {
	store  articles.ReadWriter
	logger logger.Logger
}

func NewLoader(store articles.ReadWriter, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Loader{store: store, logger: log}
}

type pending struct {
	index     int
	article   models.Article
	explicit  bool
	overwrite bool
}

// Load validates and writes records. Numbers stay dense: an explicit number below the
// current count replaces that article, an explicit number at or above it claims a new
// slot, and records without a number fill the remaining new slots in input order.
// Explicit numbers that would leave a gap, or that repeat within the batch, are skipped
// and reported. A store failure stops the load.
func (l *Loader) Load(ctx context.Context, source string, records []Record) (*Report, error) {
	report := &Report{Source: source}

	if err := l.store.EnsureSchema(ctx); err != nil {
		return report, err
	}
	count, err := l.store.Count(ctx)
	if err != nil {
		return report, err
	}

	batch := l.decodeAll(source, records, report)
	batch = l.assignNumbers(source, count, batch, report)

	for _, p := range batch {
		if err := l.store.Upsert(ctx, p.article.Trimmed()); err != nil {
			metrics.ArticlesLoaded.WithLabelValues(source, "error").Inc()
			return report, err
		}
		if p.overwrite {
			report.Overwritten++
			metrics.ArticlesLoaded.WithLabelValues(source, "overwritten").Inc()
			continue
		}
		report.Loaded++
		metrics.ArticlesLoaded.WithLabelValues(source, "ok").Inc()
	}

	l.logger.Info("articles loaded", map[string]interface{}{
		"source":      source,
		"loaded":      report.Loaded,
		"overwritten": report.Overwritten,
		"skipped":     report.Skipped,
	})
	return report, nil
}

func (l *Loader) decodeAll(source string, records []Record, report *Report) []pending {
	batch := make([]pending, 0, len(records))
	for i, rec := range records {
		result := validation.ValidateArticle(rec)
		if !result.Valid {
			l.skip(source, report, i, strings.Join(result.GetErrorMessages(), "; "))
			continue
		}

		article, err := decode(rec)
		if err != nil {
			l.skip(source, report, i, err.Error())
			continue
		}
		_, explicit := rec["number"]
		batch = append(batch, pending{index: i, article: article, explicit: explicit})
	}
	return batch
}

// assignNumbers numbers the batch so that new articles occupy exactly [count, count+n).
func (l *Loader) assignNumbers(source string, count int, batch []pending, report *Report) []pending {
	claimed := make(map[int]bool)
	rejected := make(map[int]string)
	var fresh []int

	for i, p := range batch {
		if !p.explicit {
			continue
		}
		n := p.article.Number
		switch {
		case claimed[n]:
			rejected[i] = fmt.Sprintf("number %d repeats an earlier record", n)
		case n < count:
			claimed[n] = true
			batch[i].overwrite = true
		default:
			claimed[n] = true
			fresh = append(fresh, i)
		}
	}

	auto := 0
	for _, p := range batch {
		if !p.explicit {
			auto++
		}
	}

	// Drop the highest new explicit numbers until none lies past the end of the new range.
	sort.Slice(fresh, func(a, b int) bool { return batch[fresh[a]].article.Number < batch[fresh[b]].article.Number })
	for len(fresh) > 0 {
		last := fresh[len(fresh)-1]
		limit := count + len(fresh) + auto
		if batch[last].article.Number < limit {
			break
		}
		rejected[last] = fmt.Sprintf("number %d would leave a gap after %d", batch[last].article.Number, limit-1)
		delete(claimed, batch[last].article.Number)
		fresh = fresh[:len(fresh)-1]
	}

	next := count
	out := make([]pending, 0, len(batch))
	for i, p := range batch {
		if reason, ok := rejected[i]; ok {
			l.skip(source, report, p.index, reason)
			continue
		}
		if !p.explicit {
			for claimed[next] {
				next++
			}
			p.article.Number = next
			claimed[next] = true
		}
		out = append(out, p)
	}
	return out
}

func (l *Loader) skip(source string, report *Report, index int, reason string) {
	report.Skipped++
	report.Errors = append(report.Errors, fmt.Sprintf("record %d: %s", index, reason))
	metrics.ArticlesLoaded.WithLabelValues(source, "invalid").Inc()
	l.logger.Warn("skipping article", map[string]interface{}{
		"source": source,
		"index":  index,
		"reason": reason,
	})
}

// Validate checks records without writing them.
func Validate(records []Record) *Report {
	report := &Report{}
	for i, rec := range records {
		result := validation.ValidateArticle(rec)
		if result.Valid {
			report.Loaded++
			continue
		}
		report.Skipped++
		report.Errors = append(report.Errors,
			fmt.Sprintf("record %d: %s", i, strings.Join(result.GetErrorMessages(), "; ")))
	}
	return report
}

// ReadJSONFile reads a JSON array of article objects.
func ReadJSONFile(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.NewArticleValidationFailedError(fmt.Sprintf("%s: expected a JSON array of objects: %v", path, err))
	}
	return records, nil
}

func decode(rec Record) (models.Article, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return models.Article{}, err
	}
	var a models.Article
	if err := json.Unmarshal(raw, &a); err != nil {
		return models.Article{}, err
	}
	return a, nil
}
