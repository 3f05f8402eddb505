package coach

import (
	"strconv"
	"strings"
	"time"
)

// DecisionKind enumerates the four terminal outcomes of routing.
type DecisionKind int

const (
	// DecideFactual answers from the already-held snapshot, deterministically.
	DecideFactual DecisionKind = iota
	// DecideGenerative delegates to the free-text coaching responder.
	DecideGenerative
	// DecideClarify returns a fixed clarification question to the user.
	DecideClarify
	// DecideFetch asks the caller to fetch one period's snapshot.
	DecideFetch
	// DecideFetchBatch asks the caller to fetch both periods of a comparison.
	DecideFetchBatch
)

// Decision is the router's verdict for one request. Exactly one dispatch per
// request, no retries; the caller re-invokes after satisfying a fetch.
type Decision struct {
	Kind       DecisionKind
	Metric     Metric
	Reply      string // set for DecideClarify
	Period     Period // set for DecideFetch
	Left       Period // set for DecideFetchBatch
	Right      Period // set for DecideFetchBatch
	Comparison string // "{left}_VS_{right}" tag for DecideFetchBatch
}

// Literal phrase sets for the deterministic guards. The classifier is
// probabilistic; these high-frequency phrasings are decided without it.
var (
	currentWeekPhrases   = []string{"cette semaine", "semaine en cours", "semaine actuelle"}
	currentMonthPhrases  = []string{"ce mois"}
	previousMonthPhrases = []string{"mois dernier"}
)

func containsAny(msg string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

const clarifyMonthReply = "Je n'ai pas compris quel mois précis tu voulais. Peux-tu préciser (ex: 'novembre 2025') ?"

// Route runs the decision state machine over a classified intent. today is
// injected so period resolution stays deterministic; held is the period of
// the snapshot already supplied with the request.
func Route(today time.Time, message string, intent Intent, held Period) (Decision, error) {
	msg := strings.ToLower(message)
	metric := ParseMetric(intent.Metric)

	// Current-week override: message literals win over whatever the
	// classifier returned. Comparisons are exempt because their messages
	// routinely name the current week as one side ("cette semaine vs ...").
	if intent.Type != IntentComparePeriods && containsAny(msg, currentWeekPhrases) {
		return Decision{Kind: DecideFactual, Metric: metric}, nil
	}

	switch intent.Type {
	case IntentRequestWeek:
		target := ResolveWeek(today, intent.OffsetOr(-1))
		if SamePeriod(held, target) {
			return Decision{Kind: DecideFactual, Metric: metric}, nil
		}
		return Decision{Kind: DecideFetch, Metric: metric, Period: target}, nil

	case IntentRequestMonth:
		if !intent.Month.set {
			// Missing month is a user-facing clarification, not an error.
			return Decision{Kind: DecideClarify, Metric: metric, Reply: clarifyMonthReply}, nil
		}
		year := today.Year()
		if intent.Year.set {
			year = intent.Year.value
		} else if y, err := strconv.Atoi(yearOfPeriod(held)); err == nil {
			year = y
		}
		target := ResolveMonth(year, intent.Month.value)
		if SamePeriod(held, target) {
			return Decision{Kind: DecideFactual, Metric: metric}, nil
		}
		return Decision{Kind: DecideFetch, Metric: metric, Period: target}, nil

	case IntentRequestMonthRel:
		// Second deterministic guard: unambiguous month phrases in the
		// message override the classifier's offset.
		var offset int
		switch {
		case containsAny(msg, currentMonthPhrases):
			offset = 0
		case containsAny(msg, previousMonthPhrases):
			offset = -1
		default:
			offset = intent.OffsetOr(-1)
		}
		target := ResolveMonthRelative(today, offset)
		if SamePeriod(held, target) {
			return Decision{Kind: DecideFactual, Metric: metric}, nil
		}
		return Decision{Kind: DecideFetch, Metric: metric, Period: target}, nil

	case IntentComparePeriods:
		left, err := ResolveKey(today, intent.Left)
		if err != nil {
			return Decision{}, err
		}
		right, err := ResolveKey(today, intent.Right)
		if err != nil {
			return Decision{}, err
		}
		// A comparison is never answered from the held snapshot: both
		// periods are always fetched fresh.
		return Decision{
			Kind:       DecideFetchBatch,
			Metric:     metric,
			Left:       left,
			Right:      right,
			Comparison: intent.Left + "_VS_" + intent.Right,
		}, nil

	default: // ANSWER_NOW and anything unrecognized
		if intent.AnswerMode == AnswerModeFactual {
			return Decision{Kind: DecideFactual, Metric: metric}, nil
		}
		return Decision{Kind: DecideGenerative, Metric: metric}, nil
	}
}

// yearOfPeriod extracts the year digits from the held period start, used as
// the default year for absolute-month requests.
func yearOfPeriod(p Period) string {
	if len(p.Start) < 4 {
		return ""
	}
	return p.Start[:4]
}
