package coach

import "testing"

func TestDecodeIntentPlainJSON(t *testing.T) {
	intent := DecodeIntent(`{"type":"REQUEST_WEEK","offset":-2,"metric":"DISTANCE"}`)
	if intent.Type != IntentRequestWeek {
		t.Fatalf("type = %q", intent.Type)
	}
	if got := intent.OffsetOr(0); got != -2 {
		t.Errorf("offset = %d, want -2", got)
	}
	if ParseMetric(intent.Metric) != MetricDistance {
		t.Errorf("metric = %q", intent.Metric)
	}
}

func TestDecodeIntentSurroundedByProse(t *testing.T) {
	raw := "Voici ma décision :\n```json\n{\"type\":\"answer_now\",\"answer_mode\":\"factual\"}\n```\nBonne journée."
	intent := DecodeIntent(raw)
	if intent.Type != IntentAnswerNow {
		t.Fatalf("type = %q", intent.Type)
	}
	if intent.AnswerMode != AnswerModeFactual {
		t.Errorf("answer_mode = %q, want FACTUAL (uppercased)", intent.AnswerMode)
	}
}

func TestDecodeIntentStringNumbers(t *testing.T) {
	intent := DecodeIntent(`{"type":"REQUEST_MONTH","month":"11","year":"2025"}`)
	if !intent.Month.set || intent.Month.value != 11 {
		t.Errorf("month = %+v, want 11", intent.Month)
	}
	if !intent.Year.set || intent.Year.value != 2025 {
		t.Errorf("year = %+v, want 2025", intent.Year)
	}
}

func TestDecodeIntentNullAndGarbageFieldsAreAbsent(t *testing.T) {
	intent := DecodeIntent(`{"type":"REQUEST_MONTH","month":null,"year":"soon"}`)
	if intent.Type != IntentRequestMonth {
		t.Fatalf("type = %q", intent.Type)
	}
	if intent.Month.set {
		t.Error("null month must decode as absent")
	}
	if intent.Year.set {
		t.Error("non-numeric year must decode as absent")
	}
}

func TestDecodeIntentFallsBackToSmallTalk(t *testing.T) {
	cases := []string{
		"",
		"pas de JSON ici",
		"{broken",
		`{"no_type_tag": true}`,
		`{"type": ""}`,
	}
	for _, raw := range cases {
		intent := DecodeIntent(raw)
		if intent.Type != IntentAnswerNow || intent.AnswerMode != AnswerModeSmallTalk {
			t.Errorf("DecodeIntent(%q) = %+v, want small-talk fallback", raw, intent)
		}
	}
}

func TestParseMetric(t *testing.T) {
	if ParseMetric("") != MetricDistance {
		t.Error("empty metric must default to DISTANCE")
	}
	if ParseMetric("distance") != MetricDistance {
		t.Error("lowercase metric must normalize")
	}
	if ParseMetric("CADENCE") != MetricUnknown {
		t.Error("unrecognized metric must collapse to UNKNOWN")
	}
}
