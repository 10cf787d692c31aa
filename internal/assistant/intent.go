package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the kind of question the responder recognised
type Intent string

const (
	IntentHelp         Intent = "help"
	IntentTopN         Intent = "top_n"
	IntentRound        Intent = "round"
	IntentRank         Intent = "rank"
	IntentPlayer       Intent = "player"
	IntentUnrecognized Intent = "unrecognized"
)

var (
	helpPattern     = regexp.MustCompile(`\bhelp\b|\bwhat can you\b|\bhow do i\b|\bwhat do you do\b`)
	topNPattern     = regexp.MustCompile(`\b(?:top|best)\s+(\d+)(?:\s+([a-z]+))?`)
	roundPattern    = regexp.MustCompile(`\bround\s+(\d+)(?:\D+?pick\s+#?(\d+))?`)
	ordinalRound    = regexp.MustCompile(`\b(\d+)(?:st|nd|rd|th)\s+round\b`)
	rankPattern     = regexp.MustCompile(`(?:\badp|\brank(?:ed)?|\bpick|\bnumber|\bno\.)\s*#?\s*(\d+)\b|#\s*(\d+)\b|\b(\d+)(?:st|nd|rd|th)\b`)
	playerTrigger   = regexp.MustCompile(`\badp\b|\branked\b|\brank\b|\bwhere\b|\bwhen\b`)
	nonNameChars    = regexp.MustCompile(`[^a-z0-9'.\-\s]`)
	possessiveTrail = regexp.MustCompile(`'s$`)
)

var positionWords = map[string]string{
	"qb": "QB", "qbs": "QB", "quarterback": "QB", "quarterbacks": "QB",
	"rb": "RB", "rbs": "RB",
	"wr": "WR", "wrs": "WR", "receiver": "WR", "receivers": "WR",
	"te": "TE", "tes": "TE",
	"k": "K", "ks": "K", "kicker": "K", "kickers": "K",
	"dst": "DST", "dsts": "DST", "def": "DST", "defense": "DST", "defenses": "DST",
}

// Words dropped when pulling a player name out of a question
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "what": true, "whats": true, "what's": true,
	"who": true, "is": true, "are": true, "was": true, "where": true, "when": true,
	"does": true, "do": true, "did": true, "adp": true, "rank": true, "ranked": true,
	"ranking": true, "get": true, "gets": true, "go": true, "goes": true, "going": true,
	"drafted": true, "draft": true, "picked": true, "taken": true, "typically": true,
	"usually": true, "being": true, "of": true, "for": true, "in": true, "at": true,
	"his": true, "current": true, "currently": true, "me": true, "tell": true,
	"about": true, "average": true, "position": true, "now": true, "right": true,
}

type classification struct {
	intent   Intent
	n        int
	pick     int
	position string
	name     string
}

func classify(question string) classification {
	q := strings.ToLower(strings.TrimSpace(question))
	q = strings.ReplaceAll(q, "’", "'")

	if q == "" {
		return classification{intent: IntentUnrecognized}
	}

	if helpPattern.MatchString(q) {
		return classification{intent: IntentHelp}
	}

	if m := topNPattern.FindStringSubmatch(q); m != nil {
		return classification{intent: IntentTopN, n: atoi(m[1]), position: positionWords[m[2]]}
	}

	if m := roundPattern.FindStringSubmatch(q); m != nil {
		return classification{intent: IntentRound, n: atoi(m[1]), pick: atoi(m[2])}
	}
	if m := ordinalRound.FindStringSubmatch(q); m != nil {
		return classification{intent: IntentRound, n: atoi(m[1])}
	}

	if m := rankPattern.FindStringSubmatch(q); m != nil {
		for _, group := range m[1:] {
			if group != "" {
				return classification{intent: IntentRank, n: atoi(group)}
			}
		}
	}

	if playerTrigger.MatchString(q) {
		if name := extractName(q); name != "" {
			return classification{intent: IntentPlayer, name: name}
		}
	}

	return classification{intent: IntentUnrecognized}
}

func extractName(q string) string {
	q = nonNameChars.ReplaceAllString(q, " ")

	var kept []string
	for _, word := range strings.Fields(q) {
		word = strings.Trim(word, "'.-")
		word = possessiveTrail.ReplaceAllString(word, "")
		if word == "" || fillerWords[word] {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
