package ai

import "fmt"

// classifyPrompt builds the strict decision prompt. The backend must return
// exactly one JSON object; anything else is absorbed by the caller's
// fallback.
func classifyPrompt(req ClassifyRequest) string {
	return fmt.Sprintf(
		"Tu es un moteur de décision STRICT pour une application de suivi de course à pied.\n"+
			"Tu dois retourner UNE décision JSON valide, et RIEN d'autre.\n\n"+
			"1) PRIORITÉ ABSOLUE — SMALL TALK\n"+
			"Si le message est une salutation ou une phrase vague (ex: \"hello\", \"salut\", \"bonjour\", \"ça va\", \"merci\", \"ok\") :\n"+
			"retourne exactement {\"type\":\"ANSWER_NOW\",\"answer_mode\":\"SMALL_TALK\"}.\n"+
			"Tu n'as PAS le droit de demander un snapshot dans ce cas.\n\n"+
			"2) CHANGEMENT DE PÉRIODE — SEMAINES\n"+
			"\"semaine dernière\" → offset = -1 ; \"il y a X semaines\" → offset = -X.\n"+
			"Retourne {\"type\":\"REQUEST_WEEK\",\"offset\":-X,\"metric\":\"<métrique détectée>\"}.\n"+
			"Si la question contient \"cette semaine\" ou \"la semaine actuelle\" :\n"+
			"retourne {\"type\":\"ANSWER_NOW\",\"answer_mode\":\"FACTUAL\",\"metric\":\"<métrique détectée>\"}.\n\n"+
			"3) MOIS RELATIFS\n"+
			"\"ce mois-ci\" → {\"type\":\"REQUEST_MONTH_RELATIVE\",\"offset\":0,\"metric\":\"<métrique détectée>\"}.\n"+
			"\"le mois dernier\" → {\"type\":\"REQUEST_MONTH_RELATIVE\",\"offset\":-1,\"metric\":\"<métrique détectée>\"}.\n"+
			"\"il y a X mois\" → {\"type\":\"REQUEST_MONTH_RELATIVE\",\"offset\":-X,\"metric\":\"<métrique détectée>\"}.\n\n"+
			"4) MOIS ABSOLU (EXPLICITE SEULEMENT)\n"+
			"Si un mois explicite est mentionné (janvier → décembre) :\n"+
			"retourne {\"type\":\"REQUEST_MONTH\",\"month\":1-12,\"year\":YYYY ou null,\"metric\":\"<métrique détectée>\"}.\n\n"+
			"5) COMPARAISON DE PÉRIODES\n"+
			"Si la question compare deux périodes (ex: \"cette semaine vs la semaine dernière\") :\n"+
			"retourne {\"type\":\"COMPARE_PERIODS\",\"left\":\"<clé>\",\"right\":\"<clé>\",\"metric\":\"<métrique détectée>\"}.\n"+
			"Clés autorisées : CURRENT_WEEK, PREVIOUS_WEEK, CURRENT_MONTH, PREVIOUS_MONTH, LAST_2_WEEKS, PREVIOUS_2_WEEKS.\n\n"+
			"6) ANSWER_NOW FACTUEL\n"+
			"Si la question demande une valeur mesurable (distance, km, durée, temps, séances, FC, allure, dénivelé) :\n"+
			"retourne {\"type\":\"ANSWER_NOW\",\"answer_mode\":\"FACTUAL\",\"metric\":\"<métrique détectée>\"}.\n\n"+
			"7) PAR DÉFAUT\n"+
			"retourne {\"type\":\"ANSWER_NOW\",\"answer_mode\":\"COACHING\"}.\n\n"+
			"MÉTRIQUES POSSIBLES : DISTANCE | DURATION | SESSIONS | AVG_HR | PACE | ELEVATION | LOAD | UNKNOWN\n\n"+
			"QUESTION :\n%s\n\n"+
			"PÉRIODE COURANTE :\n%s → %s\n",
		req.Message, req.PeriodStart, req.PeriodEnd)
}

// coachPrompt builds the free-text prompt. The backend may only phrase the
// figures below, never compute or alter them.
func coachPrompt(req ReplyRequest) string {
	loadRatio := "N/A"
	if req.Stats.LoadRatio != nil {
		loadRatio = fmt.Sprintf("%.2f", *req.Stats.LoadRatio)
	}
	return fmt.Sprintf(
		"Tu es un coach de course à pied humain et bienveillant.\n\n"+
			"RÈGLES :\n"+
			"- Small talk → réponse courte, aucune statistique\n"+
			"- Coaching → tu peux utiliser les données ci-dessous\n"+
			"- Ne fais AUCUN calcul\n"+
			"- Ne modifies AUCUN chiffre\n\n"+
			"DONNÉES :\n"+
			"- Distance : %.1f\n"+
			"- Séances : %d\n"+
			"- Durée : %.0f\n"+
			"- Charge ratio : %s\n\n"+
			"Question :\n%s\n",
		req.Stats.DistanceKm, req.Stats.Sessions, req.Stats.DurationMin, loadRatio, req.Message)
}
