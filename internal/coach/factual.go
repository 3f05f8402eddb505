package coach

import (
	"fmt"
	"math"
)

// FactualReply renders a metric value from a snapshot as user-facing text,
// deterministically, without any generative call.
func FactualReply(snapshot Snapshot, metric Metric) string {
	start := snapshot.Period.Start
	end := snapshot.Period.End

	// No sessions wins over every metric.
	if snapshot.Totals.Sessions == 0 {
		return fmt.Sprintf("Aucune séance enregistrée sur la période du %s au %s.", start, end)
	}

	switch metric {
	case MetricDistance:
		return fmt.Sprintf("Sur la période du %s au %s, tu as couru %.1f km.",
			start, end, roundTo1(snapshot.Totals.DistanceKm))

	case MetricDuration:
		minutes := int(math.Round(snapshot.Totals.DurationMin))
		hours := minutes / 60
		mins := minutes % 60
		if hours > 0 {
			return fmt.Sprintf("Sur la période du %s au %s, tu as couru pendant %dh%02d.",
				start, end, hours, mins)
		}
		return fmt.Sprintf("Sur la période du %s au %s, tu as couru pendant %d minutes.",
			start, end, minutes)

	case MetricSessions:
		return fmt.Sprintf("Sur la période du %s au %s, tu as effectué %d séances.",
			start, end, snapshot.Totals.Sessions)

	default:
		// Catch-all, never an error: sessions plus distance.
		return fmt.Sprintf("Sur la période du %s au %s, tu as %d séances pour %.1f km.",
			start, end, snapshot.Totals.Sessions, roundTo1(snapshot.Totals.DistanceKm))
	}
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
