package postgres

import (
	"context"

	"github.com/fdg312/run-coach/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage is the pgx-backed implementation of storage.Storage.
type PostgresStorage struct {
	pool    *pgxpool.Pool
	runs    *PostgresRunsStorage
	reports *PostgresReportsStorage
}

func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &PostgresStorage{
		pool:    pool,
		runs:    NewPostgresRunsStorage(pool),
		reports: NewPostgresReportsStorage(pool),
	}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// RunsStorage methods - delegate to embedded runs storage.

func (p *PostgresStorage) UpsertRun(ctx context.Context, run *storage.Run) error {
	return p.runs.UpsertRun(ctx, run)
}

func (p *PostgresStorage) ListRuns(ctx context.Context, from, to string) ([]storage.Run, error) {
	return p.runs.ListRuns(ctx, from, to)
}

func (p *PostgresStorage) EarliestRunDate(ctx context.Context) (string, error) {
	return p.runs.EarliestRunDate(ctx)
}

// ReportsStorage methods - delegate to embedded reports storage.

func (p *PostgresStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	return p.reports.CreateReport(ctx, report)
}

func (p *PostgresStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	return p.reports.GetReport(ctx, id)
}

func (p *PostgresStorage) ListReports(ctx context.Context, limit, offset int) ([]storage.ReportMeta, error) {
	return p.reports.ListReports(ctx, limit, offset)
}

func (p *PostgresStorage) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return p.reports.DeleteReport(ctx, id)
}
