package coach

// Period is a contiguous date range, YYYY-MM-DD strings.
// Weekly periods use an exclusive end (Monday to next Monday), monthly
// periods an inclusive one (1st to last day), matching the client convention.
// Invariant: Start <= End.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Totals holds the aggregate numbers for one period.
type Totals struct {
	DistanceKm  float64  `json:"distance_km"`
	DurationMin float64  `json:"duration_min"`
	Sessions    int      `json:"sessions"`
	ElevationM  float64  `json:"elevation_m"`
	AvgHR       *float64 `json:"avg_hr,omitempty"`
}

// TrainingLoad carries the acute/chronic load values. Only present when the
// stats provider has enough history to compute them.
type TrainingLoad struct {
	Load7d  float64 `json:"load_7d"`
	Load28d float64 `json:"load_28d"`
	Ratio   float64 `json:"ratio"`
}

// DailyRun is one run inside a snapshot, with per-zone minutes.
type DailyRun struct {
	Date        string  `json:"date"`
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	ElevationM  float64 `json:"elevation_m"`
	AvgHR       float64 `json:"avg_hr"`
	Z1          float64 `json:"z1"`
	Z2          float64 `json:"z2"`
	Z3          float64 `json:"z3"`
	Z4          float64 `json:"z4"`
	Z5          float64 `json:"z5"`
}

// Snapshot is the pre-aggregated training picture for one period. It is
// produced by the stats provider and read-only here.
type Snapshot struct {
	WeekLabel    string             `json:"week_label,omitempty"`
	Period       Period             `json:"period"`
	Totals       Totals             `json:"totals"`
	ZonesPercent map[string]float64 `json:"zones_percent,omitempty"`
	DailyRuns    []DailyRun         `json:"daily_runs,omitempty"`
	TrainingLoad *TrainingLoad      `json:"training_load,omitempty"`
}

// ChatRequest is the inbound payload of POST /v1/chat. Snapshots and Meta are
// only set on the final leg of a comparison, after the caller fetched both
// periods.
type ChatRequest struct {
	Message   string             `json:"message"`
	Snapshot  Snapshot           `json:"snapshot"`
	Snapshots *ComparisonPayload `json:"snapshots,omitempty"`
	Meta      map[string]string  `json:"meta,omitempty"`
}

// ComparisonPayload carries the two snapshots of a comparison request.
type ComparisonPayload struct {
	Left  Snapshot `json:"left"`
	Right Snapshot `json:"right"`
}

// ReplyResponse is a terminal answer for the user.
type ReplyResponse struct {
	Reply string `json:"reply"`
}

// SnapshotRequestResponse asks the caller to fetch one period's snapshot and
// re-invoke the chat with it.
type SnapshotRequestResponse struct {
	Type   string            `json:"type"` // "REQUEST_SNAPSHOT"
	Period Period            `json:"period"`
	Meta   map[string]string `json:"meta"`
}

// SnapshotBatchRequestResponse asks the caller to fetch both periods of a
// comparison.
type SnapshotBatchRequestResponse struct {
	Type      string            `json:"type"` // "REQUEST_SNAPSHOT_BATCH"
	Snapshots BatchPeriods      `json:"snapshots"`
	Meta      map[string]string `json:"meta"`
}

type BatchPeriods struct {
	Left  Period `json:"left"`
	Right Period `json:"right"`
}

const (
	TypeRequestSnapshot      = "REQUEST_SNAPSHOT"
	TypeRequestSnapshotBatch = "REQUEST_SNAPSHOT_BATCH"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details []ValidationError `json:"details,omitempty"`
}

// ValidationError describes one failed field of a malformed inbound payload.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
