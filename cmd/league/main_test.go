package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/keeper"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/database/dbtest"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

func testResult() *services.ImportResult {
	return &services.ImportResult{
		League:        models.League{Name: "Sleeper Sharks", Platform: models.PlatformSleeper, ExternalID: "L1", Season: 2024, Size: 12},
		BatchID:       "batch-1",
		Members:       2,
		RosterEntries: 3,
		Unmatched:     []string{"Some Backup"},
		Recommendations: []keeper.Recommendation{
			{PlayerName: "Kenneth Walker III", Position: "RB", Team: "SEA", ADPRank: 43, KeeperCostRank: 73, KeeperValue: 30, Recommendation: keeper.StrongKeep},
		},
	}
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	printResult(&out, testResult(), false)
	assert.Contains(t, out.String(), "League: Sleeper Sharks (sleeper L1, season 2024, 12 teams)")
	assert.Contains(t, out.String(), "Some Backup")
	assert.Contains(t, out.String(), "Kenneth Walker III")
	assert.Contains(t, out.String(), keeper.StrongKeep)

	out.Reset()
	printResult(&out, testResult(), true)
	assert.NotContains(t, out.String(), "League:")
	assert.Contains(t, out.String(), "Kenneth Walker III")

	out.Reset()
	empty := testResult()
	empty.Recommendations = nil
	printResult(&out, empty, true)
	assert.Contains(t, out.String(), "no rostered players matched")
}

func TestADPSourceFallsBackToBundledTable(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, &models.Player{})

	source, err := adpSource(ctx, db, logger.Discard())
	require.NoError(t, err)
	players, err := source.Players(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, players)

	stored := []models.Player{{Rank: 1, Name: "Only Player", Position: "RB"}}
	require.NoError(t, adp.NewRepository(db).Upsert(ctx, stored))

	source, err = adpSource(ctx, db, logger.Discard())
	require.NoError(t, err)
	players, err = source.Players(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Only Player", players[0].Name)
}
