package coach

import (
	"errors"
	"testing"
	"time"
)

var routerToday = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) // Saturday

func currentWeekPeriod() Period {
	return Period{Start: "2025-03-10", End: "2025-03-17"}
}

func TestRouteCurrentWeekPhraseOverridesClassifier(t *testing.T) {
	// The classifier mislabeled an explicit current-week question as a
	// previous-week request; the literal guard must win.
	intent := Intent{Type: IntentRequestWeek, Offset: flexInt{value: -1, set: true}, Metric: "DISTANCE"}

	d, err := Route(routerToday, "Combien de km cette semaine ?", intent, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFactual {
		t.Fatalf("kind = %v, want DecideFactual", d.Kind)
	}
	if d.Metric != MetricDistance {
		t.Errorf("metric = %q, want DISTANCE", d.Metric)
	}
}

func TestRoutePreviousWeekTriggersFetch(t *testing.T) {
	intent := Intent{Type: IntentRequestWeek, Offset: flexInt{value: -1, set: true}, Metric: "DISTANCE"}

	d, err := Route(routerToday, "et la semaine dernière ?", intent, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFetch {
		t.Fatalf("kind = %v, want DecideFetch", d.Kind)
	}
	if d.Period.Start != "2025-03-03" || d.Period.End != "2025-03-10" {
		t.Errorf("period = %s..%s", d.Period.Start, d.Period.End)
	}
}

func TestRouteWeekSufficiencyIsReflexive(t *testing.T) {
	// Second leg of a fetch: the held snapshot now covers the target week.
	intent := Intent{Type: IntentRequestWeek, Offset: flexInt{value: -1, set: true}, Metric: "DISTANCE"}
	held := Period{Start: "2025-03-03", End: "2025-03-10"}

	d, err := Route(routerToday, "et la semaine dernière ?", intent, held)
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFactual {
		t.Fatalf("kind = %v, want DecideFactual after fetch", d.Kind)
	}
}

func TestRouteWeeksAgoOffset(t *testing.T) {
	intent := Intent{Type: IntentRequestWeek, Offset: flexInt{value: -2, set: true}}

	d, err := Route(routerToday, "il y a 2 semaines ?", intent, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFetch {
		t.Fatalf("kind = %v", d.Kind)
	}
	if d.Period.Start != "2025-02-24" || d.Period.End != "2025-03-03" {
		t.Errorf("period = %s..%s", d.Period.Start, d.Period.End)
	}
}

func TestRouteMissingWeekOffsetDefaultsToPrevious(t *testing.T) {
	d, err := Route(routerToday, "la semaine d'avant", Intent{Type: IntentRequestWeek}, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFetch || d.Period.Start != "2025-03-03" {
		t.Errorf("got kind=%v period=%s..%s, want previous-week fetch", d.Kind, d.Period.Start, d.Period.End)
	}
}

func TestRouteAbsoluteMonth(t *testing.T) {
	intent := Intent{
		Type:   IntentRequestMonth,
		Month:  flexInt{value: 11, set: true},
		Year:   flexInt{value: 2024, set: true},
		Metric: "DISTANCE",
	}

	d, err := Route(routerToday, "mes stats de novembre 2024", intent, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFetch {
		t.Fatalf("kind = %v", d.Kind)
	}
	if d.Period.Start != "2024-11-01" || d.Period.End != "2024-11-30" {
		t.Errorf("period = %s..%s", d.Period.Start, d.Period.End)
	}
}

func TestRouteAbsoluteMonthDefaultsYearFromHeldPeriod(t *testing.T) {
	intent := Intent{Type: IntentRequestMonth, Month: flexInt{value: 1, set: true}}
	held := Period{Start: "2024-12-30", End: "2025-01-06"}

	d, err := Route(routerToday, "et en janvier ?", intent, held)
	if err != nil {
		t.Fatal(err)
	}
	if d.Period.Start != "2024-01-01" {
		t.Errorf("period start = %s, want year taken from held period (2024)", d.Period.Start)
	}
}

func TestRouteMissingMonthAsksForClarification(t *testing.T) {
	d, err := Route(routerToday, "et ce fameux mois ?", Intent{Type: IntentRequestMonth}, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideClarify {
		t.Fatalf("kind = %v, want DecideClarify", d.Kind)
	}
	if d.Reply == "" {
		t.Error("clarify decision must carry a reply")
	}
}

func TestRouteRelativeMonthPhraseOverrides(t *testing.T) {
	// Classifier said offset -1 but the message says "ce mois".
	intent := Intent{Type: IntentRequestMonthRel, Offset: flexInt{value: -1, set: true}}

	d, err := Route(routerToday, "mon volume ce mois", intent, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Period.Start != "2025-03-01" || d.Period.End != "2025-03-31" {
		t.Errorf("period = %s..%s, want current month", d.Period.Start, d.Period.End)
	}

	// And the inverse: classifier said 0 but the message says "mois dernier".
	intent = Intent{Type: IntentRequestMonthRel, Offset: flexInt{value: 0, set: true}}
	d, err = Route(routerToday, "combien le mois dernier ?", intent, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Period.Start != "2025-02-01" || d.Period.End != "2025-02-28" {
		t.Errorf("period = %s..%s, want previous month", d.Period.Start, d.Period.End)
	}
}

func TestRouteComparisonRequestsBatch(t *testing.T) {
	intent := Intent{
		Type:   IntentComparePeriods,
		Left:   KeyCurrentWeek,
		Right:  KeyPreviousWeek,
		Metric: "DISTANCE",
	}

	d, err := Route(routerToday, "cette semaine vs la précédente", intent, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFetchBatch {
		t.Fatalf("kind = %v, want DecideFetchBatch", d.Kind)
	}
	if d.Left.Start != "2025-03-10" || d.Right.Start != "2025-03-03" {
		t.Errorf("left=%s.. right=%s..", d.Left.Start, d.Right.Start)
	}
	if d.Comparison != "CURRENT_WEEK_VS_PREVIOUS_WEEK" {
		t.Errorf("comparison tag = %q", d.Comparison)
	}
}

func TestRouteComparisonUnknownKeyFails(t *testing.T) {
	intent := Intent{Type: IntentComparePeriods, Left: "NEXT_WEEK", Right: KeyPreviousWeek}

	_, err := Route(routerToday, "compare", intent, currentWeekPeriod())
	if !errors.Is(err, ErrUnknownPeriodKey) {
		t.Fatalf("got %v, want ErrUnknownPeriodKey", err)
	}
}

func TestRouteAnswerNowModes(t *testing.T) {
	d, err := Route(routerToday, "combien de km ?", Intent{Type: IntentAnswerNow, AnswerMode: AnswerModeFactual, Metric: "DISTANCE"}, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideFactual {
		t.Errorf("FACTUAL: kind = %v", d.Kind)
	}

	d, err = Route(routerToday, "un conseil pour progresser ?", Intent{Type: IntentAnswerNow, AnswerMode: AnswerModeCoaching}, currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideGenerative {
		t.Errorf("COACHING: kind = %v", d.Kind)
	}

	d, err = Route(routerToday, "salut !", SmallTalkIntent(), currentWeekPeriod())
	if err != nil {
		t.Fatal(err)
	}
	if d.Kind != DecideGenerative {
		t.Errorf("SMALL_TALK: kind = %v", d.Kind)
	}
}
