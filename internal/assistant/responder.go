// Package assistant answers free-text ADP questions by keyword classification
// and table lookups.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
)

const (
	DefaultLeagueSize = 12
	maxTopN           = 25
)

const helpText = "I can answer ADP questions. Try \"Who is ADP #5?\", \"Top 10 RBs\", " +
	"\"Who goes in round 3?\", \"Round 2 pick 4\" or \"What is Josh Allen's ADP?\"."

// Response is the structured answer to one question
type Response struct {
	Success    bool                   `json:"success"`
	Answer     string                 `json:"answer"`
	Confidence float64                `json:"confidence"`
	Reasoning  string                 `json:"reasoning"`
	Intent     Intent                 `json:"intent"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// Responder answers questions against an ADP source
type Responder struct {
	source     adp.Source
	matcher    matching.Matcher
	leagueSize int
}

func NewResponder(source adp.Source, matcher matching.Matcher, leagueSize int) *Responder {
	if leagueSize < 1 {
		leagueSize = DefaultLeagueSize
	}
	return &Responder{
		source:     source,
		matcher:    matcher,
		leagueSize: leagueSize,
	}
}

// Answer classifies the question and looks up the data it asks for. The only
// error returned is a failure to read the ADP source.
func (r *Responder) Answer(ctx context.Context, question string) (Response, error) {
	c := classify(question)

	switch c.intent {
	case IntentHelp:
		return Response{
			Success:    true,
			Answer:     helpText,
			Confidence: 1.0,
			Reasoning:  "Question asks what the assistant can do",
			Intent:     IntentHelp,
		}, nil
	case IntentUnrecognized:
		return unrecognized(), nil
	}

	table, err := adp.Load(ctx, r.source)
	if err != nil {
		return Response{}, fmt.Errorf("failed to load ADP data: %w", err)
	}

	switch c.intent {
	case IntentTopN:
		return r.topN(table, c.n, c.position), nil
	case IntentRound:
		return r.round(table, c.n, c.pick), nil
	case IntentRank:
		return r.rank(table, c.n), nil
	default:
		return r.player(table, c.name), nil
	}
}

func (r *Responder) topN(table *adp.Table, n int, position string) Response {
	if n < 1 {
		return miss(IntentTopN, 0.9, "Ask for at least one player, e.g. \"Top 5 WRs\".", "Top-N request with N below 1")
	}
	if n > maxTopN {
		n = maxTopN
	}

	players := table.Top(n, position)
	label := "players"
	if position != "" {
		label = position + "s"
	}
	if len(players) == 0 {
		return miss(IntentTopN, 0.9, fmt.Sprintf("No %s found in the ADP table.", label), "Top-N request matched no rows")
	}

	return Response{
		Success:    true,
		Answer:     fmt.Sprintf("Top %d %s by ADP: %s", len(players), label, listPlayers(players)),
		Confidence: 0.9,
		Reasoning:  fmt.Sprintf("Matched top-N request for %d %s", n, label),
		Intent:     IntentTopN,
		Data: map[string]interface{}{
			"position": position,
			"players":  players,
		},
	}
}

func (r *Responder) round(table *adp.Table, round, pick int) Response {
	if round < 1 {
		return miss(IntentRound, 0.85, "Rounds start at 1.", "Round lookup with round below 1")
	}

	if pick > 0 {
		if pick > r.leagueSize {
			return miss(IntentRound, 0.85,
				fmt.Sprintf("A %d-team league has no pick %d in a round.", r.leagueSize, pick),
				"Pick number exceeds league size")
		}
		overall := adp.OverallPick(round, pick, r.leagueSize)
		p, ok := table.ByRank(overall)
		if !ok {
			return miss(IntentRound, 0.85,
				fmt.Sprintf("No player is ranked at overall pick %d.", overall),
				fmt.Sprintf("Round %d pick %d is beyond the ADP table", round, pick))
		}
		return Response{
			Success:    true,
			Answer:     fmt.Sprintf("Round %d pick %d (overall #%d): %s.", round, pick, overall, describe(p)),
			Confidence: 0.85,
			Reasoning:  fmt.Sprintf("Round %d pick %d in a %d-team league is overall pick %d", round, pick, r.leagueSize, overall),
			Intent:     IntentRound,
			Data: map[string]interface{}{
				"round":   round,
				"pick":    pick,
				"overall": overall,
				"player":  p,
			},
		}
	}

	players := table.Round(round, r.leagueSize)
	if len(players) == 0 {
		return miss(IntentRound, 0.85,
			fmt.Sprintf("No players have an ADP in round %d.", round),
			fmt.Sprintf("Round %d is beyond the ADP table", round))
	}

	first := adp.OverallPick(round, 1, r.leagueSize)
	return Response{
		Success:    true,
		Answer:     fmt.Sprintf("Round %d (picks %d-%d): %s", round, first, first+r.leagueSize-1, listPlayers(players)),
		Confidence: 0.85,
		Reasoning:  fmt.Sprintf("Listed players whose ADP rank falls in round %d of a %d-team draft", round, r.leagueSize),
		Intent:     IntentRound,
		Data: map[string]interface{}{
			"round":   round,
			"players": players,
		},
	}
}

func (r *Responder) rank(table *adp.Table, rank int) Response {
	p, ok := table.ByRank(rank)
	if !ok {
		return miss(IntentRank, 0.95,
			fmt.Sprintf("No player is ranked #%d. The table covers ranks 1-%d.", rank, table.Len()),
			fmt.Sprintf("Rank %d is outside the ADP table", rank))
	}

	return Response{
		Success:    true,
		Answer:     fmt.Sprintf("ADP #%d is %s.", rank, describe(p)),
		Confidence: 0.95,
		Reasoning:  fmt.Sprintf("Direct lookup of ADP rank %d", rank),
		Intent:     IntentRank,
		Data: map[string]interface{}{
			"rank":   rank,
			"player": p,
		},
	}
}

func (r *Responder) player(table *adp.Table, name string) Response {
	p, match := table.Find(name, r.matcher)
	if !match.Found {
		return miss(IntentPlayer, 0,
			fmt.Sprintf("I couldn't find a player named %q in the ADP table.", name),
			"No name cleared the match threshold")
	}

	return Response{
		Success:    true,
		Answer:     fmt.Sprintf("%s is ranked #%d.", describe(p), p.Rank),
		Confidence: match.Similarity,
		Reasoning:  fmt.Sprintf("Matched %q to %s with similarity %.2f", name, p.Name, match.Similarity),
		Intent:     IntentPlayer,
		Data: map[string]interface{}{
			"player": p,
			"match":  match,
		},
	}
}

func unrecognized() Response {
	return Response{
		Success:    false,
		Answer:     "I didn't understand that question. " + helpText,
		Confidence: 0,
		Reasoning:  "No known question pattern matched",
		Intent:     IntentUnrecognized,
	}
}

func miss(intent Intent, confidence float64, answer, reasoning string) Response {
	return Response{
		Success:    false,
		Answer:     answer,
		Confidence: confidence,
		Reasoning:  reasoning,
		Intent:     intent,
	}
}

func describe(p models.Player) string {
	return fmt.Sprintf("%s (%s, %s) with an ADP of %.1f", p.Name, p.Position, p.Team, p.ADP)
}

func listPlayers(players []models.Player) string {
	parts := make([]string, len(players))
	for i, p := range players {
		parts[i] = fmt.Sprintf("%d. %s (%s)", p.Rank, p.Name, p.Position)
	}
	return strings.Join(parts, ", ")
}
