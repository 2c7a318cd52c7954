// Package articles reads the stored article collection and picks the article shown on each refresh.
package articles

import (
	"context"

	apperrors "nlp-dashboard/internal/common/errors"
	"nlp-dashboard/internal/models"
)

// Store is the read side of the article collection. Numbers run from 0 to Count()-1.
type Store interface {
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, number int) (*models.Article, error)
}

// Writer is used by the loader to create the collection and add documents to it.
type Writer interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, article models.Article) error
}

// ReadWriter is a Store that can also be written to.
type ReadWriter interface {
	Store
	Writer
}

// IsNotFound reports whether err means no document carries the requested number.
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeArticleNotFound)
}
