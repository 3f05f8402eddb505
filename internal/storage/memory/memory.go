package memory

import (
	"context"

	"github.com/fdg312/run-coach/internal/storage"
	"github.com/google/uuid"
)

// MemoryStorage is the in-memory implementation of storage.Storage, used in
// tests and when no DATABASE_URL is configured.
type MemoryStorage struct {
	runs    *RunsMemoryStorage
	reports *ReportsMemoryStorage
}

func New() *MemoryStorage {
	return &MemoryStorage{
		runs:    NewRunsMemoryStorage(),
		reports: NewReportsMemoryStorage(),
	}
}

func (m *MemoryStorage) Close() error {
	return nil
}

// RunsStorage methods - delegate to embedded runs storage.

func (m *MemoryStorage) UpsertRun(ctx context.Context, run *storage.Run) error {
	return m.runs.UpsertRun(ctx, run)
}

func (m *MemoryStorage) ListRuns(ctx context.Context, from, to string) ([]storage.Run, error) {
	return m.runs.ListRuns(ctx, from, to)
}

func (m *MemoryStorage) EarliestRunDate(ctx context.Context) (string, error) {
	return m.runs.EarliestRunDate(ctx)
}

// ReportsStorage methods - delegate to embedded reports storage.

func (m *MemoryStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	return m.reports.CreateReport(ctx, report)
}

func (m *MemoryStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	return m.reports.GetReport(ctx, id)
}

func (m *MemoryStorage) ListReports(ctx context.Context, limit, offset int) ([]storage.ReportMeta, error) {
	return m.reports.ListReports(ctx, limit, offset)
}

func (m *MemoryStorage) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return m.reports.DeleteReport(ctx, id)
}
