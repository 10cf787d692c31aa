package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePicks() []Pick {
	return []Pick{
		{PlayerName: "Bijan Robinson", Position: "RB", ADPValue: 2, ProjectionValue: 10, Projection: Projection{ProjectionPts: 280}},
		{PlayerName: "Garrett Wilson", Position: "WR", ADPValue: 8, ProjectionValue: 5, Projection: Projection{ProjectionPts: 220}},
		{PlayerName: "Kyle Pitts", Position: "TE", ADPValue: -6, ProjectionValue: -12, Projection: Projection{ProjectionPts: 130}},
		{PlayerName: "Jordan Love", Position: "QB", ADPValue: 4, ProjectionValue: 3, Projection: Projection{ProjectionPts: 290}},
	}
}

func TestNewTeamDerivesTotals(t *testing.T) {
	team := NewTeam(samplePicks())

	assert.InDelta(t, 920.0, team.TotalProjection, 1e-9)
	assert.InDelta(t, 8.0, team.TotalADPValue, 1e-9)
	assert.InDelta(t, 2.0, team.AveragePickValue, 1e-9)
	assert.InDelta(t, 1.5, team.AverageProjectionValue, 1e-9)
}

func TestScoreEmptyTeam(t *testing.T) {
	tests := []struct {
		name string
		team Team
	}{
		{"no picks", NewTeam(nil)},
		{"empty slice", NewTeam([]Pick{})},
		{"stale averages without picks", Team{AveragePickValue: 12, AverageProjectionValue: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := Score(tt.team, DefaultWeights)

			assert.Equal(t, 0.0, analysis.Score)
			assert.Equal(t, GradeF, analysis.ADPGrade)
			assert.Equal(t, GradeF, analysis.ProjectionGrade)
			assert.Equal(t, GradeF, analysis.OverallGrade)
			assert.Nil(t, analysis.BestPick)
			assert.Nil(t, analysis.WorstPick)
		})
	}
}

func TestScoreBlendsComponents(t *testing.T) {
	analysis := Score(NewTeam(samplePicks()), DefaultWeights)

	// adp = 70 + 2*2 = 74, projection = 70 + 1.5 = 71.5
	assert.InDelta(t, 74.0, analysis.ADPComponent, 1e-9)
	assert.InDelta(t, 71.5, analysis.ProjectionComponent, 1e-9)
	assert.InDelta(t, 72.8, analysis.Score, 1e-9)
	assert.Equal(t, GradeBMinus, analysis.ADPGrade)
	assert.Equal(t, GradeBMinus, analysis.ProjectionGrade)
	assert.Equal(t, GradeBMinus, analysis.OverallGrade)
	assert.Equal(t, 4, analysis.PickCount)

	require.NotNil(t, analysis.BestPick)
	require.NotNil(t, analysis.WorstPick)
	assert.Equal(t, "Garrett Wilson", analysis.BestPick.PlayerName)
	assert.Equal(t, "Kyle Pitts", analysis.WorstPick.PlayerName)
}

func TestScoreWeights(t *testing.T) {
	team := NewTeam(samplePicks())

	adpOnly := Score(team, Weights{ADP: 1, Projection: 0})
	assert.InDelta(t, 74.0, adpOnly.Score, 1e-9)

	projectionOnly := Score(team, Weights{ADP: 0, Projection: 3})
	assert.InDelta(t, 71.5, projectionOnly.Score, 1e-9)

	// invalid weights fall back to the defaults
	assert.Equal(t, Score(team, DefaultWeights), Score(team, Weights{ADP: -1, Projection: 2}))
	assert.Equal(t, Score(team, DefaultWeights), Score(team, Weights{}))
}

func TestScoreClampsComponents(t *testing.T) {
	great := NewTeam([]Pick{{ADPValue: 40, ProjectionValue: 90}})
	analysis := Score(great, DefaultWeights)
	assert.Equal(t, 100.0, analysis.Score)
	assert.Equal(t, GradeAPlus, analysis.OverallGrade)

	awful := NewTeam([]Pick{{ADPValue: -60, ProjectionValue: -200}})
	analysis = Score(awful, DefaultWeights)
	assert.Equal(t, 0.0, analysis.Score)
	assert.Equal(t, GradeF, analysis.OverallGrade)
}

func TestScoreMonotonicInProjectionValue(t *testing.T) {
	base := samplePicks()
	previous := Score(NewTeam(base), DefaultWeights)

	for step := 1; step <= 40; step++ {
		picks := make([]Pick, len(base))
		copy(picks, base)
		for i := range picks {
			picks[i].ProjectionValue += float64(step)
		}

		current := Score(NewTeam(picks), DefaultWeights)
		assert.GreaterOrEqual(t, current.Score, previous.Score, "step %d", step)
		assert.LessOrEqual(t, current.OverallGrade.Rank(), previous.OverallGrade.Rank(), "step %d", step)
		previous = current
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	team := NewTeam(samplePicks())

	first := Score(team, DefaultWeights)
	second := Score(NewTeam(samplePicks()), DefaultWeights)

	assert.Equal(t, first, second)
}
