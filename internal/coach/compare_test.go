package coach

import (
	"strings"
	"testing"
)

func comparisonSnapshot(start, end string, distance float64) Snapshot {
	return Snapshot{
		Period: Period{Start: start, End: end},
		Totals: Totals{DistanceKm: distance, Sessions: 3},
	}
}

func TestCompareDeltaSign(t *testing.T) {
	left := comparisonSnapshot("2025-03-10", "2025-03-17", 20)
	right := comparisonSnapshot("2025-03-03", "2025-03-10", 15)

	cmp := Compare(left, right, MetricDistance)
	if cmp.Delta != 5 {
		t.Fatalf("delta = %v, want 5 (left minus right)", cmp.Delta)
	}

	reply := cmp.Reply(left.Period, right.Period)
	if !strings.Contains(reply, "de plus") {
		t.Errorf("positive delta must read as more: %q", reply)
	}
	if !strings.Contains(reply, "5.0 km") {
		t.Errorf("reply must state the delta: %q", reply)
	}
}

func TestCompareNegativeDelta(t *testing.T) {
	left := comparisonSnapshot("2025-03-10", "2025-03-17", 12)
	right := comparisonSnapshot("2025-03-03", "2025-03-10", 18.5)

	cmp := Compare(left, right, MetricDistance)
	reply := cmp.Reply(left.Period, right.Period)
	if !strings.Contains(reply, "de moins") {
		t.Errorf("negative delta must read as less: %q", reply)
	}
	if !strings.Contains(reply, "6.5 km") {
		t.Errorf("delta must be reported as an absolute value: %q", reply)
	}
}

func TestCompareEqualDistances(t *testing.T) {
	left := comparisonSnapshot("2025-03-10", "2025-03-17", 20)
	right := comparisonSnapshot("2025-03-03", "2025-03-10", 20)

	reply := Compare(left, right, MetricDistance).Reply(left.Period, right.Period)
	if !strings.Contains(reply, "même distance") {
		t.Errorf("zero delta must read as equal: %q", reply)
	}
}

func TestCompareOtherMetrics(t *testing.T) {
	hr := 151.0
	left := Snapshot{
		Period:       Period{Start: "2025-03-10", End: "2025-03-17"},
		Totals:       Totals{DurationMin: 180, Sessions: 4, ElevationM: 320, AvgHR: &hr},
		TrainingLoad: &TrainingLoad{Load7d: 45},
	}
	right := Snapshot{
		Period: Period{Start: "2025-03-03", End: "2025-03-10"},
		Totals: Totals{DurationMin: 120, Sessions: 2, ElevationM: 100},
	}

	tests := []struct {
		metric Metric
		delta  float64
	}{
		{MetricDuration, 60},
		{MetricSessions, 2},
		{MetricElevation, 220},
		{MetricAvgHR, 151}, // right has no HR data, treated as zero
		{MetricLoad, 45},
	}
	for _, tc := range tests {
		cmp := Compare(left, right, tc.metric)
		if cmp.Delta != tc.delta {
			t.Errorf("%s: delta = %v, want %v", tc.metric, cmp.Delta, tc.delta)
		}
	}
}
