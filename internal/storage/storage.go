package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRunNotFound    = errors.New("run not found")
	ErrReportNotFound = errors.New("report not found")
)

// Run is one recorded running session. Zone fields are minutes spent in each
// heart-rate zone. The ID comes from the syncing client when it has a stable
// workout identifier, otherwise it is generated on insert.
type Run struct {
	ID          uuid.UUID
	Date        string // YYYY-MM-DD
	DistanceKm  float64
	DurationMin float64
	ElevationM  float64
	AvgHR       *float64
	Z1          float64
	Z2          float64
	Z3          float64
	Z4          float64
	Z5          float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RunsStorage stores raw runs for the single configured athlete.
type RunsStorage interface {
	// UpsertRun inserts a run or replaces it when the ID already exists,
	// so repeated client syncs stay idempotent.
	UpsertRun(ctx context.Context, run *Run) error

	// ListRuns returns runs with from <= date < to, ordered by date.
	ListRuns(ctx context.Context, from, to string) ([]Run, error)

	// EarliestRunDate returns the date of the oldest stored run, or "" when
	// no runs exist.
	EarliestRunDate(ctx context.Context) (string, error)
}

// ReportMeta describes one generated export. Data is only populated in local
// blob mode; in S3 mode the bytes live behind ObjectKey.
type ReportMeta struct {
	ID        uuid.UUID
	Format    string // "pdf" | "csv"
	FromDate  string
	ToDate    string
	ObjectKey *string
	Data      []byte
	SizeBytes int64
	CreatedAt time.Time
}

// ReportsStorage stores generated report metadata and, in local mode, bytes.
type ReportsStorage interface {
	CreateReport(ctx context.Context, report *ReportMeta) error
	GetReport(ctx context.Context, id uuid.UUID) (*ReportMeta, error)
	ListReports(ctx context.Context, limit, offset int) ([]ReportMeta, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

// Storage bundles the per-concern stores behind one handle so the HTTP
// wiring can swap memory and postgres implementations.
type Storage interface {
	RunsStorage
	ReportsStorage
	Close() error
}
