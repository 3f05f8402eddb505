package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/run-coach/internal/coach"
	"github.com/fdg312/run-coach/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidPeriod  = errors.New("invalid period")
)

const dateLayout = "2006-01-02"

type Service struct {
	runs storage.RunsStorage
	now  func() time.Time
}

func NewService(runs storage.RunsStorage) *Service {
	return &Service{
		runs: runs,
		now:  time.Now,
	}
}

// SyncRuns stores a batch of runs. Upserts are keyed by the client's run ID,
// so the whole history can be re-sent safely.
func (s *Service) SyncRuns(ctx context.Context, req SyncRequest) (*SyncResponse, error) {
	if len(req.Runs) == 0 {
		return nil, fmt.Errorf("%w: runs must not be empty", ErrInvalidRequest)
	}

	for i, payload := range req.Runs {
		if _, err := time.Parse(dateLayout, payload.Date); err != nil {
			return nil, fmt.Errorf("%w: runs[%d].date %q", ErrInvalidRequest, i, payload.Date)
		}
		if payload.DistanceKm < 0 || payload.DurationMin <= 0 {
			return nil, fmt.Errorf("%w: runs[%d] has non-positive duration or negative distance", ErrInvalidRequest, i)
		}

		run := storage.Run{
			Date:        payload.Date,
			DistanceKm:  payload.DistanceKm,
			DurationMin: payload.DurationMin,
			ElevationM:  payload.ElevationM,
			AvgHR:       payload.AvgHR,
			Z1:          payload.Z1,
			Z2:          payload.Z2,
			Z3:          payload.Z3,
			Z4:          payload.Z4,
			Z5:          payload.Z5,
		}
		if payload.ID != "" {
			id, err := uuid.Parse(payload.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: runs[%d].id %q", ErrInvalidRequest, i, payload.ID)
			}
			run.ID = id
		}

		if err := s.runs.UpsertRun(ctx, &run); err != nil {
			return nil, err
		}
	}

	return &SyncResponse{Synced: len(req.Runs)}, nil
}

// Snapshot aggregates the stored runs of a period into the pre-computed
// training picture the chat core answers from.
func (s *Service) Snapshot(ctx context.Context, start, end string) (*coach.Snapshot, error) {
	startDay, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidPeriod, start)
	}
	endDay, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidPeriod, end)
	}
	if !startDay.Before(endDay) {
		return nil, fmt.Errorf("%w: start must precede end", ErrInvalidPeriod)
	}

	// Weekly periods arrive with an exclusive end (next Monday), monthly ones
	// with an inclusive end (last day of the month). Normalize to a half-open
	// range before querying.
	queryEnd := endDay
	if isMonthPeriod(startDay, endDay) {
		queryEnd = endDay.AddDate(0, 0, 1)
	}

	runs, err := s.runs.ListRuns(ctx, start, queryEnd.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	snapshot := &coach.Snapshot{
		Period:    coach.Period{Start: start, End: end},
		WeekLabel: weekLabel(startDay, endDay),
	}

	var hrWeighted, hrWeight float64
	var zones [5]float64
	for _, run := range runs {
		snapshot.Totals.DistanceKm += run.DistanceKm
		snapshot.Totals.DurationMin += run.DurationMin
		snapshot.Totals.ElevationM += run.ElevationM
		snapshot.Totals.Sessions++

		if run.AvgHR != nil && run.DurationMin > 0 {
			hrWeighted += *run.AvgHR * run.DurationMin
			hrWeight += run.DurationMin
		}

		zones[0] += run.Z1
		zones[1] += run.Z2
		zones[2] += run.Z3
		zones[3] += run.Z4
		zones[4] += run.Z5

		avgHR := 0.0
		if run.AvgHR != nil {
			avgHR = *run.AvgHR
		}
		snapshot.DailyRuns = append(snapshot.DailyRuns, coach.DailyRun{
			Date:        run.Date,
			DistanceKm:  run.DistanceKm,
			DurationMin: run.DurationMin,
			ElevationM:  run.ElevationM,
			AvgHR:       avgHR,
			Z1:          run.Z1,
			Z2:          run.Z2,
			Z3:          run.Z3,
			Z4:          run.Z4,
			Z5:          run.Z5,
		})
	}

	if hrWeight > 0 {
		avg := hrWeighted / hrWeight
		snapshot.Totals.AvgHR = &avg
	}

	totalZoneMinutes := zones[0] + zones[1] + zones[2] + zones[3] + zones[4]
	if totalZoneMinutes > 0 {
		snapshot.ZonesPercent = map[string]float64{
			"z1": zones[0] / totalZoneMinutes * 100,
			"z2": zones[1] / totalZoneMinutes * 100,
			"z3": zones[2] / totalZoneMinutes * 100,
			"z4": zones[3] / totalZoneMinutes * 100,
			"z5": zones[4] / totalZoneMinutes * 100,
		}
	}

	load, err := s.trainingLoad(ctx, queryEnd)
	if err != nil {
		return nil, err
	}
	snapshot.TrainingLoad = load

	return snapshot, nil
}

// trainingLoad computes the acute (7-day) and chronic (28-day weekly average)
// duration load ending at the period boundary. It is omitted entirely until
// 28 days of history exist: a ratio over partial history reads as a spike.
func (s *Service) trainingLoad(ctx context.Context, endExclusive time.Time) (*coach.TrainingLoad, error) {
	earliest, err := s.runs.EarliestRunDate(ctx)
	if err != nil {
		return nil, err
	}
	if earliest == "" {
		return nil, nil
	}

	chronicStart := endExclusive.AddDate(0, 0, -28)
	if earliest > chronicStart.Format(dateLayout) {
		return nil, nil
	}

	acuteStart := endExclusive.AddDate(0, 0, -7)
	endStr := endExclusive.Format(dateLayout)

	chronicRuns, err := s.runs.ListRuns(ctx, chronicStart.Format(dateLayout), endStr)
	if err != nil {
		return nil, err
	}

	acuteStartStr := acuteStart.Format(dateLayout)
	var acute, chronic float64
	for _, run := range chronicRuns {
		chronic += run.DurationMin
		if run.Date >= acuteStartStr {
			acute += run.DurationMin
		}
	}

	load := &coach.TrainingLoad{
		Load7d:  acute,
		Load28d: chronic / 4,
	}
	if load.Load28d > 0 {
		load.Ratio = load.Load7d / load.Load28d
	}
	return load, nil
}

// isMonthPeriod reports whether the range is a whole calendar month with an
// inclusive end.
func isMonthPeriod(start, end time.Time) bool {
	if start.Day() != 1 {
		return false
	}
	lastDay := time.Date(end.Year(), end.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return end.Year() == start.Year() && end.Month() == start.Month() && end.Day() == lastDay.Day()
}

// weekLabel names seven-day periods for the client's snapshot header.
func weekLabel(start, end time.Time) string {
	if end.Sub(start) == 7*24*time.Hour {
		return "Semaine du " + start.Format(dateLayout)
	}
	return ""
}
