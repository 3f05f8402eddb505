package coach

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fdg312/run-coach/internal/ai"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrAIFailed       = errors.New("ai failed")
)

// ValidationFailure lists the fields of a malformed chat payload.
type ValidationFailure struct {
	Details []ValidationError
}

func (e *ValidationFailure) Error() string {
	fields := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		fields = append(fields, d.Field)
	}
	return "invalid request: " + strings.Join(fields, ", ")
}

func (e *ValidationFailure) Unwrap() error { return ErrInvalidRequest }

const fallbackReply = "Je n'ai pas pu formuler de réponse. Peux-tu reformuler ta question ?"

type Service struct {
	provider ai.Provider
	now      func() time.Time
}

func NewService(provider ai.Provider) *Service {
	return &Service{
		provider: provider,
		now:      time.Now,
	}
}

// Chat runs one turn of the conversation. The return value is one of
// ReplyResponse, SnapshotRequestResponse or SnapshotBatchRequestResponse;
// the handler serializes whichever comes back.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (any, error) {
	if err := validateChatRequest(req); err != nil {
		return nil, err
	}

	// Comparison fast path: when both snapshots arrive with the request the
	// classifier already ran on a previous turn, so the answer is computed
	// directly from the supplied pair.
	if req.Snapshots != nil {
		metric := ParseMetric(req.Meta["metric"])
		cmp := Compare(req.Snapshots.Left, req.Snapshots.Right, metric)
		return ReplyResponse{
			Reply: cmp.Reply(req.Snapshots.Left.Period, req.Snapshots.Right.Period),
		}, nil
	}

	raw, err := s.provider.Classify(ctx, ai.ClassifyRequest{
		Message:     req.Message,
		PeriodStart: req.Snapshot.Period.Start,
		PeriodEnd:   req.Snapshot.Period.End,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIFailed, err)
	}

	intent := DecodeIntent(raw)
	log.Printf("INFO: chat intent type=%s answer_mode=%s metric=%s", intent.Type, intent.AnswerMode, intent.Metric)

	decision, err := Route(s.now(), req.Message, intent, req.Snapshot.Period)
	if err != nil {
		return nil, err
	}

	switch decision.Kind {
	case DecideFactual:
		return ReplyResponse{Reply: FactualReply(req.Snapshot, decision.Metric)}, nil

	case DecideClarify:
		return ReplyResponse{Reply: decision.Reply}, nil

	case DecideFetch:
		return SnapshotRequestResponse{
			Type:   TypeRequestSnapshot,
			Period: decision.Period,
			Meta:   map[string]string{"metric": string(decision.Metric)},
		}, nil

	case DecideFetchBatch:
		return SnapshotBatchRequestResponse{
			Type:      TypeRequestSnapshotBatch,
			Snapshots: BatchPeriods{Left: decision.Left, Right: decision.Right},
			Meta: map[string]string{
				"metric":     string(decision.Metric),
				"comparison": decision.Comparison,
			},
		}, nil

	default: // DecideGenerative
		reply, err := s.provider.Reply(ctx, ai.ReplyRequest{
			Message: req.Message,
			Stats:   statsSummary(req.Snapshot),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAIFailed, err)
		}
		reply = strings.TrimSpace(reply)
		if reply == "" {
			reply = fallbackReply
		}
		return ReplyResponse{Reply: reply}, nil
	}
}

func validateChatRequest(req ChatRequest) error {
	var details []ValidationError

	if strings.TrimSpace(req.Message) == "" {
		details = append(details, ValidationError{Field: "message", Message: "must not be empty"})
	}

	if req.Snapshots != nil {
		if req.Snapshots.Left.Period.Start == "" || req.Snapshots.Left.Period.End == "" {
			details = append(details, ValidationError{Field: "snapshots.left.period", Message: "start and end are required"})
		}
		if req.Snapshots.Right.Period.Start == "" || req.Snapshots.Right.Period.End == "" {
			details = append(details, ValidationError{Field: "snapshots.right.period", Message: "start and end are required"})
		}
	} else {
		if req.Snapshot.Period.Start == "" || req.Snapshot.Period.End == "" {
			details = append(details, ValidationError{Field: "snapshot.period", Message: "start and end are required"})
		}
	}

	if len(details) > 0 {
		return &ValidationFailure{Details: details}
	}
	return nil
}

// statsSummary flattens a snapshot into the numbers the coaching prompt
// receives. All arithmetic stays on this side; the model only phrases it.
func statsSummary(snap Snapshot) ai.StatsSummary {
	summary := ai.StatsSummary{
		DistanceKm:  snap.Totals.DistanceKm,
		DurationMin: snap.Totals.DurationMin,
		Sessions:    snap.Totals.Sessions,
	}
	if snap.TrainingLoad != nil {
		ratio := snap.TrainingLoad.Ratio
		summary.LoadRatio = &ratio
	}
	return summary
}
