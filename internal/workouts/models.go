package workouts

// RunPayload is one run in a sync batch. The client sends its stable workout
// UUID so re-syncs overwrite instead of duplicating; id may be omitted.
type RunPayload struct {
	ID          string   `json:"id,omitempty"`
	Date        string   `json:"date"` // YYYY-MM-DD
	DistanceKm  float64  `json:"distance_km"`
	DurationMin float64  `json:"duration_min"`
	ElevationM  float64  `json:"elevation_m"`
	AvgHR       *float64 `json:"avg_hr,omitempty"`
	Z1          float64  `json:"z1"`
	Z2          float64  `json:"z2"`
	Z3          float64  `json:"z3"`
	Z4          float64  `json:"z4"`
	Z5          float64  `json:"z5"`
}

// SyncRequest is the inbound payload of POST /v1/runs/sync.
type SyncRequest struct {
	Runs []RunPayload `json:"runs"`
}

// SyncResponse reports how many runs were stored.
type SyncResponse struct {
	Synced int `json:"synced"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
