package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/run-coach/internal/storage"
	"github.com/google/uuid"
)

// RunsMemoryStorage keeps runs in a map keyed by run ID.
type RunsMemoryStorage struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]storage.Run
}

func NewRunsMemoryStorage() *RunsMemoryStorage {
	return &RunsMemoryStorage{
		runs: make(map[uuid.UUID]storage.Run),
	}
}

func (s *RunsMemoryStorage) UpsertRun(ctx context.Context, run *storage.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	now := time.Now()
	if existing, ok := s.runs[run.ID]; ok {
		run.CreatedAt = existing.CreatedAt
	} else {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	s.runs[run.ID] = *run
	return nil
}

func (s *RunsMemoryStorage) ListRuns(ctx context.Context, from, to string) ([]storage.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []storage.Run{}
	for _, run := range s.runs {
		if run.Date >= from && run.Date < to {
			result = append(result, run)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (s *RunsMemoryStorage) EarliestRunDate(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	earliest := ""
	for _, run := range s.runs {
		if earliest == "" || run.Date < earliest {
			earliest = run.Date
		}
	}
	return earliest, nil
}
