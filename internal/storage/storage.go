package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"psguard/internal/report"

	_ "github.com/jackc/pgx/v4/stdlib" // драйвер pgx для database/sql
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS psguard_runs (
	run_id        UUID PRIMARY KEY,
	created_at    TIMESTAMPTZ NOT NULL,
	device        TEXT NOT NULL,
	passed        BOOLEAN NOT NULL,
	total_urls    INTEGER NOT NULL,
	passed_urls   INTEGER NOT NULL,
	failed_urls   INTEGER NOT NULL,
	average_score INTEGER NOT NULL,
	worst_score   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS psguard_results (
	run_id    UUID NOT NULL REFERENCES psguard_runs (run_id) ON DELETE CASCADE,
	position  INTEGER NOT NULL,
	url       TEXT NOT NULL,
	device    TEXT NOT NULL,
	passed    BOOLEAN NOT NULL,
	score     INTEGER NOT NULL,
	min_score INTEGER NOT NULL,
	metrics   JSONB NOT NULL,
	error     TEXT,
	PRIMARY KEY (run_id, position)
);`

// Store - история прогонов в Postgres
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open - подключается к Postgres и создает таблицы, если их нет
func Open(ctx context.Context, url string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := New(db, logger)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New - оборачивает уже открытое соединение
func New(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Migrate - создает таблицы прогонов и результатов
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// SaveRun - сохраняет прогон и все его результаты одной транзакцией
func (s *Store) SaveRun(ctx context.Context, site *report.SiteReport) error {
	rows, err := rowsFor(site)
	if err != nil {
		return err
	}
	createdAt, err := time.Parse(report.TimestampLayout, site.Timestamp)
	if err != nil {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO psguard_runs (run_id, created_at, device, passed, total_urls, passed_urls, failed_urls, average_score, worst_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		site.RunID, createdAt, string(site.Device), site.Passed,
		site.TotalURLs, site.PassedURLs, site.FailedURLs, site.AverageScore, site.WorstScore,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO psguard_results (run_id, position, url, device, passed, score, min_score, metrics, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, site.RunID, r.position, r.url, r.device, r.passed, r.score, r.minScore, r.metrics, r.err); err != nil {
			return fmt.Errorf("failed to save result %s: %w", r.url, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug("run saved", zap.String("run_id", site.RunID), zap.Int("results", len(rows)))
	return nil
}

// Close - закрывает соединение
func (s *Store) Close() error {
	return s.db.Close()
}

type resultRow struct {
	position int
	url      string
	device   string
	passed   bool
	score    int
	minScore int
	metrics  string
	err      sql.NullString
}

func rowsFor(site *report.SiteReport) ([]resultRow, error) {
	rows := make([]resultRow, 0, len(site.Results))
	for i, res := range site.Results {
		metrics := res.Metrics
		if metrics == nil {
			metrics = []report.MetricResult{}
		}
		data, err := json.Marshal(metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metrics for %s: %w", res.URL, err)
		}
		rows = append(rows, resultRow{
			position: i + 1,
			url:      res.URL,
			device:   string(res.Device),
			passed:   res.Passed,
			score:    res.Score,
			minScore: res.MinScore,
			metrics:  string(data),
			err:      sql.NullString{String: res.Error, Valid: res.Error != ""},
		})
	}
	return rows, nil
}
