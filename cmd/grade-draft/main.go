// Command grade-draft scores a set of sample drafted teams and prints the
// consolidated score and letter grades of each.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jstittsworth/draft-diagnostics/internal/draft"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

type sampleTeam struct {
	Name  string
	Picks []draft.Pick
}

func pick(name, position string, adpValue, projectionValue, points float64) draft.Pick {
	return draft.Pick{
		PlayerName:      name,
		Position:        position,
		ADPValue:        adpValue,
		ProjectionValue: projectionValue,
		Projection:      draft.Projection{ProjectionPts: points},
	}
}

var sampleTeams = []sampleTeam{
	{Name: "Value hunter", Picks: []draft.Pick{
		pick("Bijan Robinson", "RB", 2, 6, 300),
		pick("Puka Nacua", "WR", 6, 8, 270),
		pick("Kenneth Walker III", "RB", 12, 10, 230),
		pick("Jayden Daniels", "QB", 8, 12, 360),
	}},
	{Name: "Chalk", Picks: []draft.Pick{
		pick("Ja'Marr Chase", "WR", 0, 1, 310),
		pick("Derrick Henry", "RB", 0, -1, 250),
		pick("Brock Bowers", "TE", 1, 0, 200),
	}},
	{Name: "Reacher", Picks: []draft.Pick{
		pick("Christian McCaffrey", "RB", -10, -15, 200),
		pick("Josh Allen", "QB", -14, -5, 380),
		pick("Tyreek Hill", "WR", -8, -20, 210),
	}},
	{Name: "Empty roster"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())

	weights := draft.Weights{ADP: cfg.DraftADPWeight, Projection: cfg.DraftProjectionWeight}
	log.WithField("weights", weights).Info("Grading sample drafts")

	gradeAll(os.Stdout, sampleTeams, weights)
}

func gradeAll(out io.Writer, teams []sampleTeam, weights draft.Weights) []draft.Analysis {
	results := make([]draft.Analysis, 0, len(teams))
	for _, team := range teams {
		a := draft.Score(draft.NewTeam(team.Picks), weights)
		results = append(results, a)

		fmt.Fprintf(out, "%-14s score %5.1f  overall %-2s  adp %-2s (%5.1f)  projection %-2s (%5.1f)  picks %d\n",
			team.Name, a.Score, a.OverallGrade, a.ADPGrade, a.ADPComponent, a.ProjectionGrade, a.ProjectionComponent, a.PickCount)
		if a.BestPick != nil {
			fmt.Fprintf(out, "%-14s best value %s (%+.0f), biggest reach %s (%+.0f)\n",
				"", a.BestPick.PlayerName, a.BestPick.ADPValue, a.WorstPick.PlayerName, a.WorstPick.ADPValue)
		}
	}
	return results
}
