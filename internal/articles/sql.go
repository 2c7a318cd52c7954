package articles

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	apperrors "nlp-dashboard/internal/common/errors"
	"nlp-dashboard/internal/models"
)

const (
	createTableQuery = `CREATE TABLE IF NOT EXISTS articles (
	number INTEGER PRIMARY KEY,
	title  TEXT NOT NULL,
	text   TEXT NOT NULL,
	url    TEXT NOT NULL DEFAULT ''
)`
	countQuery  = `SELECT COUNT(*) FROM articles`
	getQuery    = `SELECT number, title, text, url FROM articles WHERE number = ?`
	upsertQuery = `INSERT INTO articles (number, title, text, url) VALUES (?, ?, ?, ?)
ON CONFLICT (number) DO UPDATE SET title = excluded.title, text = excluded.text, url = excluded.url`
)

// SQLStore keeps articles in a relational table. The same queries serve Postgres and SQLite;
// placeholders are rebound for the driver behind db.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery); err != nil {
		return apperrors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, countQuery); err != nil {
		return 0, apperrors.NewArticleCountFailedError(err)
	}
	return n, nil
}

func (s *SQLStore) Get(ctx context.Context, number int) (*models.Article, error) {
	var a models.Article
	err := s.db.GetContext(ctx, &a, s.db.Rebind(getQuery), number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewArticleNotFoundError(number)
	}
	if err != nil {
		return nil, apperrors.NewArticleLookupFailedError(number, err)
	}
	return &a, nil
}

func (s *SQLStore) Upsert(ctx context.Context, a models.Article) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(upsertQuery), a.Number, a.Title, a.Text, a.URL); err != nil {
		return apperrors.NewArticleStoreFailedError(a.Number, err)
	}
	return nil
}
