package adp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/database/dbtest"
)

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t, &models.Player{}))

	players, err := Seed()
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, players))

	stored, err := repo.Players(ctx)
	require.NoError(t, err)
	require.Len(t, stored, len(players))
	assert.Equal(t, "Ja'Marr Chase", stored[0].Name)
	assert.Equal(t, 2025, stored[0].Season)

	table, err := Load(ctx, repo)
	require.NoError(t, err)
	p, ok := table.ByRank(15)
	assert.True(t, ok)
	assert.Equal(t, "Christian McCaffrey", p.Name)
}

func TestRepositoryUpsertReplacesRank(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t, &models.Player{}))

	require.NoError(t, repo.Upsert(ctx, []models.Player{{Rank: 1, Name: "Old Name", Position: "RB"}}))
	require.NoError(t, repo.Upsert(ctx, []models.Player{{Rank: 1, Name: "New Name", Position: "WR"}}))

	stored, err := repo.Players(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "New Name", stored[0].Name)
	assert.Equal(t, "WR", stored[0].Position)

	assert.NoError(t, repo.Upsert(ctx, nil))
}

func TestRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(dbtest.New(t, &models.Player{}))

	players, err := Seed()
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, players))

	qbs, total, err := repo.List(ctx, "QB", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
	require.Len(t, qbs, 3)
	assert.Equal(t, "Josh Allen", qbs[0].Name)

	all, total, err := repo.List(ctx, "", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(96), total)
	assert.Len(t, all, 5)
}
