package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Initialize(filepath.Join(t.TempDir(), "nested", "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewStore(db)
}

func TestInitializeCreatesSchema(t *testing.T) {
	store := newTestStore(t)

	assert.True(t, store.db.Migrator().HasTable(&QueryLog{}))
	assert.True(t, store.db.Migrator().HasIndex(&QueryLog{}, "idx_query_logs_time"))
	assert.True(t, store.db.Migrator().HasIndex(&QueryLog{}, "idx_query_logs_outcome"))
	assert.False(t, store.db.Migrator().HasColumn(&QueryLog{}, "numero_processo"))
	assert.True(t, store.Ping(context.Background()))

	// Migrations are idempotent.
	require.NoError(t, Migrate(store.db))
	require.NoError(t, Migrate(store.db))
}

func TestInitializeReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()

	first, err := Initialize(path)
	require.NoError(t, err)
	require.NoError(t, NewStore(first).Record(ctx, &QueryLog{Outcome: OutcomeFound, Tribunal: "api_publica_trf1", Success: true}))
	sqlDB, err := first.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	second, err := Initialize(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := second.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, Migrate(second))

	store := NewStore(second)
	assert.True(t, second.Migrator().HasIndex(&QueryLog{}, "idx_query_logs_time"))
	assert.True(t, second.Migrator().HasIndex(&QueryLog{}, "idx_query_logs_outcome"))

	sum, err := store.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.Total)
	assert.Equal(t, int64(1), sum.Outcomes[OutcomeFound])
}

func TestRecordAndSummarize(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []*QueryLog{
		{Outcome: OutcomeNoNumber},
		{Outcome: OutcomeFound, Tribunal: "api_publica_trf1", Success: true, DurationMS: 100},
		{Outcome: OutcomeFound, Tribunal: "api_publica_trf1", Success: true, FromCache: true, DurationMS: 2},
		{Outcome: OutcomeUnavailable, Tribunal: "api_publica_tjsp", Success: true, FailReason: "status", StatusCode: 503, DurationMS: 30},
	}
	for _, e := range entries {
		require.NoError(t, store.Record(ctx, e))
		assert.NotZero(t, e.ID)
		assert.False(t, e.QueryTime.IsZero())
	}

	sum, err := store.Summarize(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), sum.Total)
	assert.Equal(t, int64(1), sum.Outcomes[OutcomeNoNumber])
	assert.Equal(t, int64(2), sum.Outcomes[OutcomeFound])
	assert.Equal(t, int64(1), sum.Outcomes[OutcomeUnavailable])
	assert.Equal(t, int64(2), sum.Tribunals["api_publica_trf1"])
	assert.Equal(t, int64(1), sum.Tribunals["api_publica_tjsp"])
	assert.NotContains(t, sum.Tribunals, "")
	assert.Equal(t, int64(1), sum.CacheHits)
	assert.InDelta(t, 33.0, sum.AvgLatency, 0.001)
	require.NotNil(t, sum.Since)
}

func TestSummarizeEmpty(t *testing.T) {
	store := newTestStore(t)

	sum, err := store.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), sum.Total)
	assert.Empty(t, sum.Outcomes)
	assert.Nil(t, sum.Since)
}

func TestRecordKeepsExplicitTime(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	entry := &QueryLog{Outcome: OutcomeNotFound, QueryTime: at}
	require.NoError(t, store.Record(context.Background(), entry))

	var stored QueryLog
	require.NoError(t, store.db.First(&stored, entry.ID).Error)
	assert.True(t, at.Equal(stored.QueryTime))
}
