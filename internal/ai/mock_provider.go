package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// MockProvider is a deterministic keyword-driven stand-in for the generative
// backend, used in tests and demo mode. It emits the same JSON contract a
// real model is prompted for.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

var (
	weeksAgoRe  = regexp.MustCompile(`il y a (\d+) semaines?`)
	monthsAgoRe = regexp.MustCompile(`il y a (\d+) mois`)
)

var monthNames = map[string]int{
	"janvier": 1, "février": 2, "fevrier": 2, "mars": 3, "avril": 4,
	"mai": 5, "juin": 6, "juillet": 7, "août": 8, "aout": 8,
	"septembre": 9, "octobre": 10, "novembre": 11, "décembre": 12, "decembre": 12,
}

func (p *MockProvider) Classify(ctx context.Context, req ClassifyRequest) (string, error) {
	_ = ctx
	msg := strings.ToLower(req.Message)
	metric := detectMetric(msg)

	if isGreeting(msg) {
		return `{"type":"ANSWER_NOW","answer_mode":"SMALL_TALK"}`, nil
	}

	if strings.Contains(msg, " vs ") || strings.Contains(msg, "compar") {
		return `{"type":"COMPARE_PERIODS","left":"CURRENT_WEEK","right":"PREVIOUS_WEEK","metric":"` + metric + `"}`, nil
	}

	if m := weeksAgoRe.FindStringSubmatch(msg); m != nil {
		return fmt.Sprintf(`{"type":"REQUEST_WEEK","offset":-%s,"metric":"%s"}`, m[1], metric), nil
	}
	if strings.Contains(msg, "semaine dernière") || strings.Contains(msg, "semaine derniere") {
		return `{"type":"REQUEST_WEEK","offset":-1,"metric":"` + metric + `"}`, nil
	}
	if strings.Contains(msg, "cette semaine") || strings.Contains(msg, "semaine actuelle") {
		return `{"type":"ANSWER_NOW","answer_mode":"FACTUAL","metric":"` + metric + `"}`, nil
	}

	if strings.Contains(msg, "ce mois") {
		return `{"type":"REQUEST_MONTH_RELATIVE","offset":0,"metric":"` + metric + `"}`, nil
	}
	if strings.Contains(msg, "mois dernier") {
		return `{"type":"REQUEST_MONTH_RELATIVE","offset":-1,"metric":"` + metric + `"}`, nil
	}
	if m := monthsAgoRe.FindStringSubmatch(msg); m != nil {
		return fmt.Sprintf(`{"type":"REQUEST_MONTH_RELATIVE","offset":-%s,"metric":"%s"}`, m[1], metric), nil
	}
	for name, num := range monthNames {
		if strings.Contains(msg, name) {
			return fmt.Sprintf(`{"type":"REQUEST_MONTH","month":%d,"year":null,"metric":"%s"}`, num, metric), nil
		}
	}

	if metric != "UNKNOWN" {
		return `{"type":"ANSWER_NOW","answer_mode":"FACTUAL","metric":"` + metric + `"}`, nil
	}

	return `{"type":"ANSWER_NOW","answer_mode":"COACHING"}`, nil
}

func (p *MockProvider) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	_ = ctx

	if isGreeting(strings.ToLower(req.Message)) {
		return "Salut ! Que veux-tu analyser : ton rythme, ton volume ou ta récupération ?", nil
	}

	return fmt.Sprintf(
		"Réponse de démonstration : %.1f km sur %d séances pour %.0f minutes. Continue comme ça !",
		req.Stats.DistanceKm, req.Stats.Sessions, req.Stats.DurationMin,
	), nil
}

func isGreeting(msg string) bool {
	greetings := []string{"hello", "salut", "bonjour", "ça va", "ca va", "merci", "ok", "coucou"}
	trimmed := strings.TrimSpace(msg)
	for _, g := range greetings {
		if trimmed == g || strings.HasPrefix(trimmed, g+" ") || strings.HasPrefix(trimmed, g+",") || strings.HasPrefix(trimmed, g+"!") {
			return true
		}
	}
	return false
}

func detectMetric(msg string) string {
	switch {
	case strings.Contains(msg, "km") || strings.Contains(msg, "distance") || strings.Contains(msg, "couru"):
		return "DISTANCE"
	case strings.Contains(msg, "durée") || strings.Contains(msg, "duree") || strings.Contains(msg, "temps") || strings.Contains(msg, "minutes"):
		return "DURATION"
	case strings.Contains(msg, "séance") || strings.Contains(msg, "seance") || strings.Contains(msg, "sortie"):
		return "SESSIONS"
	case strings.Contains(msg, "fc") || strings.Contains(msg, "cardiaque") || strings.Contains(msg, "fréquence"):
		return "AVG_HR"
	case strings.Contains(msg, "allure") || strings.Contains(msg, "rythme"):
		return "PACE"
	case strings.Contains(msg, "dénivelé") || strings.Contains(msg, "denivele") || strings.Contains(msg, "élévation"):
		return "ELEVATION"
	case strings.Contains(msg, "charge"):
		return "LOAD"
	default:
		return "UNKNOWN"
	}
}
