package articles

import (
	"context"
	"fmt"

	"nlp-dashboard/internal/common/config"
	"nlp-dashboard/internal/common/database"
)

type connection interface {
	Ping(ctx context.Context) error
	Close() error
}

// Backend is a ReadWriter bound to the connection it was opened on.
type Backend struct {
	ReadWriter
	Name string
	conn connection
}

// Open connects to the configured backend. The connection is not verified; call Ping.
func Open(cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pg, err := database.NewPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return &Backend{ReadWriter: NewSQLStore(pg.DB), Name: cfg.Backend, conn: pg}, nil

	case config.BackendSQLite:
		lite, err := database.NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, err
		}
		return &Backend{ReadWriter: NewSQLStore(lite.DB), Name: cfg.Backend, conn: lite}, nil

	case config.BackendElasticsearch:
		es, err := database.NewElasticsearch(cfg.Elasticsearch)
		if err != nil {
			return nil, err
		}
		return &Backend{
			ReadWriter: NewElasticsearchStore(es.Client, cfg.Elasticsearch.Index),
			Name:       cfg.Backend,
			conn:       es,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.conn.Ping(ctx)
}

func (b *Backend) Close() error {
	return b.conn.Close()
}
