package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlp-dashboard/internal/articles"
	"nlp-dashboard/internal/common/config"
	"nlp-dashboard/internal/common/logger"
	"nlp-dashboard/internal/ingest"
)

func openTestStore(t *testing.T) *articles.Backend {
	store, err := articles.Open(config.StoreConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "articles.db")},
	})
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))
	return store
}

func TestUseStore_ClosesOnError(t *testing.T) {
	store := openTestStore(t)
	boom := errors.New("load stopped")

	err := useStore(store, func(*articles.Backend) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Error(t, store.Ping(context.Background()))
}

func TestUseStore_ClosesAfterLoad(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var report *ingest.Report
	err := useStore(store, func(b *articles.Backend) error {
		var err error
		report, err = ingest.NewLoader(b, logger.NewTestLogger(t)).Load(ctx, "test", []ingest.Record{
			{"title": "a", "text": "body"},
		})
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	assert.Error(t, store.Ping(ctx))
}
