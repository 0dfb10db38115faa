package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(dbPath string) (*gorm.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Store records webhook outcomes and summarizes them.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Record inserts one query log row.
func (s *Store) Record(ctx context.Context, entry *QueryLog) error {
	if entry.QueryTime.IsZero() {
		entry.QueryTime = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// Summary is an aggregate view of the query log.
type Summary struct {
	Total      int64             `json:"total"`
	Outcomes   map[Outcome]int64 `json:"outcomes"`
	Tribunals  map[string]int64  `json:"tribunals"`
	CacheHits  int64             `json:"cache_hits"`
	AvgLatency float64           `json:"avg_latency_ms"`
	Since      *time.Time        `json:"since,omitempty"`
}

type countRow struct {
	Name  string
	Total int64
}

// Summarize counts calls per outcome and per tribunal.
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	sum := &Summary{
		Outcomes:  make(map[Outcome]int64),
		Tribunals: make(map[string]int64),
	}

	if err := s.db.WithContext(ctx).Model(&QueryLog{}).Count(&sum.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count queries: %w", err)
	}

	var outcomes []countRow
	if err := s.db.WithContext(ctx).Model(&QueryLog{}).
		Select("outcome AS name, COUNT(*) AS total").
		Group("outcome").
		Scan(&outcomes).Error; err != nil {
		return nil, fmt.Errorf("failed to group outcomes: %w", err)
	}
	for _, row := range outcomes {
		sum.Outcomes[Outcome(row.Name)] = row.Total
	}

	var tribunals []countRow
	if err := s.db.WithContext(ctx).Model(&QueryLog{}).
		Select("tribunal AS name, COUNT(*) AS total").
		Where("tribunal <> ''").
		Group("tribunal").
		Scan(&tribunals).Error; err != nil {
		return nil, fmt.Errorf("failed to group tribunals: %w", err)
	}
	for _, row := range tribunals {
		sum.Tribunals[row.Name] = row.Total
	}

	if err := s.db.WithContext(ctx).Model(&QueryLog{}).
		Where("from_cache = ?", true).
		Count(&sum.CacheHits).Error; err != nil {
		return nil, fmt.Errorf("failed to count cache hits: %w", err)
	}

	if sum.Total > 0 {
		row := s.db.WithContext(ctx).Model(&QueryLog{}).
			Select("COALESCE(AVG(duration_ms), 0)").
			Row()
		if err := row.Scan(&sum.AvgLatency); err != nil {
			return nil, fmt.Errorf("failed to average latency: %w", err)
		}

		var first QueryLog
		if err := s.db.WithContext(ctx).Order("query_time ASC").First(&first).Error; err == nil {
			since := first.QueryTime
			sum.Since = &since
		}
	}

	return sum, nil
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) bool {
	var count int64
	return s.db.WithContext(ctx).Model(&QueryLog{}).Count(&count).Error == nil
}
