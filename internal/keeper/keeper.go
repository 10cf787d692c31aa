// Package keeper decides whether a rostered player is worth keeping at his
// keeper cost.
package keeper

import "fmt"

const (
	StrongKeep = "Strong Keep"
	Marginal   = "Marginal"
	DoNotKeep  = "Do Not Keep"
)

// DefaultThreshold is the value, in overall picks, separating the bands
const DefaultThreshold = 10

// Bands configures the recommendation cut-offs
type Bands struct {
	Threshold int
}

type Evaluation struct {
	CurrentADPRank int    `json:"current_adp_rank"`
	KeeperCostRank int    `json:"keeper_cost_rank"`
	Value          int    `json:"keeper_value"`
	Recommendation string `json:"recommendation"`
}

// Evaluate compares where the player goes in drafts today with the pick it
// would cost to keep him. Positive values favour keeping.
func Evaluate(currentADPRank, keeperCostRank int, bands Bands) Evaluation {
	value := keeperCostRank - currentADPRank

	recommendation := Marginal
	switch {
	case value > bands.Threshold:
		recommendation = StrongKeep
	case value < -bands.Threshold:
		recommendation = DoNotKeep
	}

	return Evaluation{
		CurrentADPRank: currentADPRank,
		KeeperCostRank: keeperCostRank,
		Value:          value,
		Recommendation: recommendation,
	}
}

// CostRule describes how a league charges for keepers.
type CostRule struct {
	LeagueSize     int
	RoundPenalty   int // rounds earlier than the original draft round
	UndraftedRound int // round charged for waiver pickups
}

// CostRank returns the overall pick spent to keep a player drafted in
// draftRound (0 for undrafted): the first pick of the penalised round.
func (r CostRule) CostRank(draftRound int) int {
	round := draftRound
	if round <= 0 {
		round = r.UndraftedRound
	}
	round -= r.RoundPenalty
	if round < 1 {
		round = 1
	}

	size := r.LeagueSize
	if size < 1 {
		size = 1
	}
	return (round-1)*size + 1
}

// Recommendation is the printable keeper verdict for one player
type Recommendation struct {
	PlayerName     string  `json:"player_name"`
	Position       string  `json:"position"`
	Team           string  `json:"team"`
	CurrentADP     float64 `json:"current_adp"`
	ADPRank        int     `json:"adp_rank"`
	KeeperCostRank int     `json:"keeper_cost_rank"`
	KeeperValue    int     `json:"keeper_value"`
	Recommendation string  `json:"recommendation"`
}

// Candidate is a rostered player with his current ADP data
type Candidate struct {
	PlayerName string
	Position   string
	Team       string
	CurrentADP float64
	ADPRank    int
	DraftRound int
}

// Recommend evaluates one candidate under rule and bands.
func Recommend(c Candidate, rule CostRule, bands Bands) Recommendation {
	eval := Evaluate(c.ADPRank, rule.CostRank(c.DraftRound), bands)
	return Recommendation{
		PlayerName:     c.PlayerName,
		Position:       c.Position,
		Team:           c.Team,
		CurrentADP:     c.CurrentADP,
		ADPRank:        eval.CurrentADPRank,
		KeeperCostRank: eval.KeeperCostRank,
		KeeperValue:    eval.Value,
		Recommendation: eval.Recommendation,
	}
}

func (r Recommendation) String() string {
	return fmt.Sprintf("%-24s %-3s %-4s ADP %6.1f  value %+4d  %s",
		r.PlayerName, r.Position, r.Team, r.CurrentADP, r.KeeperValue, r.Recommendation)
}
