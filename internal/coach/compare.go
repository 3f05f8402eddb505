package coach

import (
	"fmt"
	"math"
)

// Comparison is the outcome of comparing a metric across two snapshots.
// Delta is left minus right: the left snapshot is the more recent period by
// convention, so a positive delta reads as "more" in the reply.
type Comparison struct {
	Metric Metric
	Left   float64
	Right  float64
	Delta  float64
}

// Compare computes the signed delta between two snapshots for a metric.
func Compare(left, right Snapshot, metric Metric) Comparison {
	l := metricValue(left, metric)
	r := metricValue(right, metric)
	return Comparison{Metric: metric, Left: l, Right: r, Delta: l - r}
}

func metricValue(s Snapshot, metric Metric) float64 {
	switch metric {
	case MetricDuration:
		return s.Totals.DurationMin
	case MetricSessions:
		return float64(s.Totals.Sessions)
	case MetricElevation:
		return s.Totals.ElevationM
	case MetricAvgHR:
		if s.Totals.AvgHR != nil {
			return *s.Totals.AvgHR
		}
		return 0
	case MetricLoad:
		if s.TrainingLoad != nil {
			return s.TrainingLoad.Load7d
		}
		return 0
	default:
		// DISTANCE, PACE, UNKNOWN all fall back to distance: only the
		// distance trend has specified phrasing.
		return s.Totals.DistanceKm
	}
}

// Reply renders the comparison as distance-trend text.
func (c Comparison) Reply(leftPeriod, rightPeriod Period) string {
	delta := math.Round(math.Abs(c.Delta)*10) / 10
	switch {
	case c.Delta > 0:
		return fmt.Sprintf(
			"Sur la période du %s au %s, tu as couru %.1f km, soit %.1f km de plus que sur la période du %s au %s (%.1f km).",
			leftPeriod.Start, leftPeriod.End, roundTo1(c.Left), delta, rightPeriod.Start, rightPeriod.End, roundTo1(c.Right))
	case c.Delta < 0:
		return fmt.Sprintf(
			"Sur la période du %s au %s, tu as couru %.1f km, soit %.1f km de moins que sur la période du %s au %s (%.1f km).",
			leftPeriod.Start, leftPeriod.End, roundTo1(c.Left), delta, rightPeriod.Start, rightPeriod.End, roundTo1(c.Right))
	default:
		return fmt.Sprintf(
			"Tu as couru la même distance sur les deux périodes : %.1f km.",
			roundTo1(c.Left))
	}
}
