// Package draft scores a drafted fantasy team against ADP and projections.
package draft

import (
	"math"
)

// Projection is the points projection attached to a pick
type Projection struct {
	ProjectionPts float64 `json:"projection_pts"`
}

// Pick is one drafted player. ADPValue is positive when the player went
// later than his ADP.
type Pick struct {
	PlayerName      string     `json:"player_name,omitempty"`
	Position        string     `json:"position,omitempty"`
	ADPValue        float64    `json:"adp_value"`
	ProjectionValue float64    `json:"projection_value"`
	Projection      Projection `json:"projection"`
}

type Team struct {
	Picks                  []Pick  `json:"picks"`
	TotalProjection        float64 `json:"total_projection"`
	TotalADPValue          float64 `json:"total_adp_value"`
	AveragePickValue       float64 `json:"average_pick_value"`
	AverageProjectionValue float64 `json:"average_projection_value"`
}

// NewTeam builds a Team with its totals and averages derived from picks.
func NewTeam(picks []Pick) Team {
	team := Team{Picks: picks}
	if len(picks) == 0 {
		return team
	}

	var projectionValue float64
	for _, p := range picks {
		team.TotalProjection += p.Projection.ProjectionPts
		team.TotalADPValue += p.ADPValue
		projectionValue += p.ProjectionValue
	}

	n := float64(len(picks))
	team.AveragePickValue = team.TotalADPValue / n
	team.AverageProjectionValue = projectionValue / n
	return team
}

// Weights blends the ADP and projection components of the score
type Weights struct {
	ADP        float64
	Projection float64
}

// DefaultWeights gives both signals equal say
var DefaultWeights = Weights{ADP: 0.5, Projection: 0.5}

func (w Weights) normalized() Weights {
	if w.ADP < 0 || w.Projection < 0 || w.ADP+w.Projection == 0 {
		return DefaultWeights
	}
	total := w.ADP + w.Projection
	return Weights{ADP: w.ADP / total, Projection: w.Projection / total}
}

// Component scales: a neutral draft sits at 70, every pick of ADP value is
// worth 2 points and every projected point is worth 1.
const (
	baselineScore   = 70.0
	adpScale        = 2.0
	projectionScale = 1.0
)

type Analysis struct {
	Score               float64 `json:"score"`
	ADPComponent        float64 `json:"adp_component"`
	ProjectionComponent float64 `json:"projection_component"`
	ADPGrade            Grade   `json:"adp_grade"`
	ProjectionGrade     Grade   `json:"projection_grade"`
	OverallGrade        Grade   `json:"overall_grade"`
	PickCount           int     `json:"pick_count"`
	TotalProjection     float64 `json:"total_projection"`
	TotalADPValue       float64 `json:"total_adp_value"`
	BestPick            *Pick   `json:"best_pick,omitempty"`
	WorstPick           *Pick   `json:"worst_pick,omitempty"`
}

// Score computes the consolidated draft score and grades from the team's
// populated averages. A team without picks scores 0 with all grades F.
func Score(team Team, weights Weights) Analysis {
	if len(team.Picks) == 0 {
		return Analysis{
			ADPGrade:        GradeF,
			ProjectionGrade: GradeF,
			OverallGrade:    GradeF,
		}
	}

	w := weights.normalized()
	adp := clamp(baselineScore+adpScale*team.AveragePickValue, 0, 100)
	proj := clamp(baselineScore+projectionScale*team.AverageProjectionValue, 0, 100)
	score := round1(w.ADP*adp + w.Projection*proj)

	analysis := Analysis{
		Score:               score,
		ADPComponent:        round1(adp),
		ProjectionComponent: round1(proj),
		ADPGrade:            GradeFor(adp),
		ProjectionGrade:     GradeFor(proj),
		OverallGrade:        GradeFor(score),
		PickCount:           len(team.Picks),
		TotalProjection:     team.TotalProjection,
		TotalADPValue:       team.TotalADPValue,
	}

	best, worst := 0, 0
	for i, p := range team.Picks {
		if p.ADPValue > team.Picks[best].ADPValue {
			best = i
		}
		if p.ADPValue < team.Picks[worst].ADPValue {
			worst = i
		}
	}
	bestPick, worstPick := team.Picks[best], team.Picks[worst]
	analysis.BestPick = &bestPick
	analysis.WorstPick = &worstPick

	return analysis
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
