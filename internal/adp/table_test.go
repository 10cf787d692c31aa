package adp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
)

func seedTable(t *testing.T) *Table {
	t.Helper()
	table, err := SeedTable()
	require.NoError(t, err)
	return table
}

func TestSeed(t *testing.T) {
	players, err := Seed()
	require.NoError(t, err)
	require.Len(t, players, 96)

	assert.Equal(t, "Ja'Marr Chase", players[0].Name)
	assert.Equal(t, 1, players[0].Rank)
	assert.Equal(t, "WR", players[0].Position)
	assert.Equal(t, 2025, players[0].Season)

	for _, p := range players {
		assert.Contains(t, models.Positions, p.Position, p.Name)
		assert.Positive(t, p.ADP, p.Name)
	}
}

func TestParseRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Malformed", "players: [ {rank: 1"},
		{"Missing name", "players:\n  - {rank: 1}"},
		{"Zero rank", "players:\n  - {rank: 0, name: A}"},
		{"Duplicate rank", "players:\n  - {rank: 1, name: A}\n  - {rank: 1, name: B}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestNewTableSortsByRank(t *testing.T) {
	table := NewTable([]models.Player{
		{Rank: 3, Name: "C"},
		{Rank: 1, Name: "A"},
		{Rank: 2, Name: "B"},
	})

	players, err := table.Players(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", players[0].Name)
	assert.Equal(t, "C", players[2].Name)
	assert.Equal(t, 3, table.Len())
}

func TestByRank(t *testing.T) {
	table := seedTable(t)

	p, ok := table.ByRank(4)
	assert.True(t, ok)
	assert.Equal(t, "Justin Jefferson", p.Name)

	_, ok = table.ByRank(500)
	assert.False(t, ok)

	_, ok = table.ByRank(0)
	assert.False(t, ok)
}

func TestOverallPick(t *testing.T) {
	assert.Equal(t, 1, OverallPick(1, 1, 12))
	assert.Equal(t, 13, OverallPick(2, 1, 12))
	assert.Equal(t, 30, OverallPick(3, 6, 12))
	assert.Equal(t, 0, OverallPick(0, 1, 12))
	assert.Equal(t, 0, OverallPick(1, 1, 0))
}

func TestRound(t *testing.T) {
	table := seedTable(t)

	first := table.Round(1, 12)
	require.Len(t, first, 12)
	assert.Equal(t, "Ja'Marr Chase", first[0].Name)
	assert.Equal(t, "Derrick Henry", first[11].Name)

	second := table.Round(2, 12)
	require.Len(t, second, 12)
	assert.Equal(t, 13, second[0].Rank)

	assert.Empty(t, table.Round(20, 12))
	assert.Nil(t, table.Round(0, 12))
}

func TestTop(t *testing.T) {
	table := seedTable(t)

	top := table.Top(3, "")
	require.Len(t, top, 3)
	assert.Equal(t, "Saquon Barkley", top[2].Name)

	qbs := table.Top(2, "qb")
	require.Len(t, qbs, 2)
	assert.Equal(t, "Josh Allen", qbs[0].Name)
	assert.Equal(t, "Lamar Jackson", qbs[1].Name)

	assert.Empty(t, table.Top(5, "P"))
	assert.Empty(t, table.Top(0, ""))
}

func TestFind(t *testing.T) {
	table := seedTable(t)
	m := matching.New(matching.DefaultThreshold)

	p, match := table.Find("pat mahomes", m)
	assert.True(t, match.Found)
	assert.Equal(t, "Patrick Mahomes II", p.Name)
	assert.Equal(t, 55, p.Rank)

	_, match = table.Find("Nobody Special", m)
	assert.False(t, match.Found)
}

type failingSource struct{}

func (failingSource) Players(context.Context) ([]models.Player, error) {
	return nil, errors.New("boom")
}

func TestLoad(t *testing.T) {
	table, err := Load(context.Background(), seedTable(t))
	require.NoError(t, err)
	assert.Equal(t, 96, table.Len())

	_, err = Load(context.Background(), failingSource{})
	assert.EqualError(t, err, "boom")
}
