package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/run-coach/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRunsStorage stores runs in the runs table.
type PostgresRunsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresRunsStorage(pool *pgxpool.Pool) *PostgresRunsStorage {
	return &PostgresRunsStorage{pool: pool}
}

func (s *PostgresRunsStorage) UpsertRun(ctx context.Context, run *storage.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	query := `
		INSERT INTO runs (id, date, distance_km, duration_min, elevation_m, avg_hr, z1, z2, z3, z4, z5, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			distance_km = EXCLUDED.distance_km,
			duration_min = EXCLUDED.duration_min,
			elevation_m = EXCLUDED.elevation_m,
			avg_hr = EXCLUDED.avg_hr,
			z1 = EXCLUDED.z1,
			z2 = EXCLUDED.z2,
			z3 = EXCLUDED.z3,
			z4 = EXCLUDED.z4,
			z5 = EXCLUDED.z5,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		run.ID,
		run.Date,
		run.DistanceKm,
		run.DurationMin,
		run.ElevationM,
		run.AvgHR,
		run.Z1,
		run.Z2,
		run.Z3,
		run.Z4,
		run.Z5,
	).Scan(&run.CreatedAt, &run.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert run: %w", err)
	}

	return nil
}

func (s *PostgresRunsStorage) ListRuns(ctx context.Context, from, to string) ([]storage.Run, error) {
	query := `
		SELECT id, date, distance_km, duration_min, elevation_m, avg_hr, z1, z2, z3, z4, z5, created_at, updated_at
		FROM runs
		WHERE date >= $1 AND date < $2
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []storage.Run{}
	for rows.Next() {
		var run storage.Run
		err := rows.Scan(
			&run.ID,
			&run.Date,
			&run.DistanceKm,
			&run.DurationMin,
			&run.ElevationM,
			&run.AvgHR,
			&run.Z1,
			&run.Z2,
			&run.Z3,
			&run.Z4,
			&run.Z5,
			&run.CreatedAt,
			&run.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *PostgresRunsStorage) EarliestRunDate(ctx context.Context) (string, error) {
	query := `SELECT date FROM runs ORDER BY date ASC LIMIT 1`

	var date string
	err := s.pool.QueryRow(ctx, query).Scan(&date)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query earliest run: %w", err)
	}

	return date, nil
}
