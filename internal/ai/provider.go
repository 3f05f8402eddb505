package ai

import "context"

// Provider is the generative backend behind the coach. Classify returns the
// model's raw text under the strict JSON decision contract; the caller is
// responsible for safe extraction and fallback. Reply returns free coaching
// text phrased from the supplied figures.
type Provider interface {
	Classify(ctx context.Context, req ClassifyRequest) (string, error)
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}

// ClassifyRequest carries the user message and the period of the snapshot
// already in hand.
type ClassifyRequest struct {
	Message     string
	PeriodStart string
	PeriodEnd   string
}

// StatsSummary is the small slice of snapshot data the coaching prompt is
// allowed to phrase. The prompt forbids computing or altering figures.
type StatsSummary struct {
	DistanceKm  float64
	DurationMin float64
	Sessions    int
	LoadRatio   *float64
}

// ReplyRequest carries the user message and the summary for a free-text
// coaching answer.
type ReplyRequest struct {
	Message string
	Stats   StatsSummary
}
