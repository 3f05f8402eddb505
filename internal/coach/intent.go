package coach

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Metric is the measurable quantity a factual answer reports.
type Metric string

const (
	MetricDistance  Metric = "DISTANCE"
	MetricDuration  Metric = "DURATION"
	MetricSessions  Metric = "SESSIONS"
	MetricAvgHR     Metric = "AVG_HR"
	MetricPace      Metric = "PACE"
	MetricElevation Metric = "ELEVATION"
	MetricLoad      Metric = "LOAD"
	MetricUnknown   Metric = "UNKNOWN"
)

// ParseMetric normalizes a classifier-provided metric name. Empty input
// defaults to DISTANCE, anything unrecognized collapses to UNKNOWN.
func ParseMetric(raw string) Metric {
	m := Metric(strings.ToUpper(strings.TrimSpace(raw)))
	switch m {
	case "":
		return MetricDistance
	case MetricDistance, MetricDuration, MetricSessions, MetricAvgHR,
		MetricPace, MetricElevation, MetricLoad:
		return m
	default:
		return MetricUnknown
	}
}

// Intent type tags, matching the classification contract.
const (
	IntentAnswerNow       = "ANSWER_NOW"
	IntentRequestWeek     = "REQUEST_WEEK"
	IntentRequestMonth    = "REQUEST_MONTH"
	IntentRequestMonthRel = "REQUEST_MONTH_RELATIVE"
	IntentComparePeriods  = "COMPARE_PERIODS"
)

// Answer modes for ANSWER_NOW.
const (
	AnswerModeFactual   = "FACTUAL"
	AnswerModeCoaching  = "COACHING"
	AnswerModeSmallTalk = "SMALL_TALK"
)

// flexInt tolerates the classifier returning numbers as JSON numbers,
// numeric strings, or null.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Unparseable value is treated as absent, not as a failure: the
		// surrounding intent stays usable.
		return nil
	}
	f.value = v
	f.set = true
	return nil
}

// Intent is the classified meaning of a user message. Optional fields use
// tolerant decoding: the classifier's JSON is loosely typed and any of them
// may be absent, null, or mistyped from one call to the next.
type Intent struct {
	Type       string  `json:"type"`
	AnswerMode string  `json:"answer_mode,omitempty"`
	Metric     string  `json:"metric,omitempty"`
	Offset     flexInt `json:"offset,omitempty"`
	Month      flexInt `json:"month,omitempty"`
	Year       flexInt `json:"year,omitempty"`
	Left       string  `json:"left,omitempty"`
	Right      string  `json:"right,omitempty"`
}

// OffsetOr returns the classifier offset, or def when it was absent.
func (i Intent) OffsetOr(def int) int {
	if i.Offset.set {
		return i.Offset.value
	}
	return def
}

// SmallTalkIntent is the controlled fallback used whenever the classifier
// output cannot be trusted. The router must never crash on malformed model
// output.
func SmallTalkIntent() Intent {
	return Intent{Type: IntentAnswerNow, AnswerMode: AnswerModeSmallTalk}
}

// DecodeIntent extracts the first top-level JSON object from the model's raw
// text (everything between the first '{' and the last '}') and parses it.
// Any extraction or parse failure, or a payload without a type tag, yields
// the small-talk fallback.
func DecodeIntent(raw string) Intent {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return SmallTalkIntent()
	}
	chunk := []byte(raw[start : end+1])

	// Probe for the type tag before committing to the typed decode.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(chunk, &probe); err != nil {
		return SmallTalkIntent()
	}
	if _, ok := probe["type"]; !ok {
		return SmallTalkIntent()
	}

	var intent Intent
	if err := json.Unmarshal(chunk, &intent); err != nil {
		return SmallTalkIntent()
	}
	if strings.TrimSpace(intent.Type) == "" {
		return SmallTalkIntent()
	}
	intent.Type = strings.ToUpper(strings.TrimSpace(intent.Type))
	intent.AnswerMode = strings.ToUpper(strings.TrimSpace(intent.AnswerMode))
	return intent
}
