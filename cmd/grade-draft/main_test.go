package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/draft"
)

func TestGradeAllSampleTeams(t *testing.T) {
	var out bytes.Buffer
	results := gradeAll(&out, sampleTeams, draft.DefaultWeights)
	require.Len(t, results, len(sampleTeams))

	value, chalk, reacher, empty := results[0], results[1], results[2], results[3]
	assert.Greater(t, value.Score, chalk.Score)
	assert.Greater(t, chalk.Score, reacher.Score)
	assert.Less(t, value.OverallGrade.Rank(), chalk.OverallGrade.Rank())
	assert.Equal(t, draft.GradeBPlus, value.OverallGrade)

	assert.Equal(t, 0.0, empty.Score)
	assert.Equal(t, draft.GradeF, empty.OverallGrade)
	assert.Nil(t, empty.BestPick)

	assert.Contains(t, out.String(), "Empty roster")
	assert.Contains(t, out.String(), "best value Kenneth Walker III")
}
