// Package adp holds the average-draft-position table and its lookups.
package adp

import (
	"context"
	"sort"
	"strings"

	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
)

// Source supplies the ADP rows, from memory or from the database.
type Source interface {
	Players(ctx context.Context) ([]models.Player, error)
}

// Table is an immutable, rank-ordered ADP table.
type Table struct {
	players []models.Player
	names   []string
}

func NewTable(players []models.Player) *Table {
	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})

	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.Name
	}
	return &Table{players: sorted, names: names}
}

// Load builds a Table from any Source.
func Load(ctx context.Context, src Source) (*Table, error) {
	players, err := src.Players(ctx)
	if err != nil {
		return nil, err
	}
	return NewTable(players), nil
}

// Players makes a Table usable as a Source
func (t *Table) Players(_ context.Context) ([]models.Player, error) {
	out := make([]models.Player, len(t.players))
	copy(out, t.players)
	return out, nil
}

func (t *Table) Len() int {
	return len(t.players)
}

// ByRank returns the player holding the given ADP rank.
func (t *Table) ByRank(rank int) (models.Player, bool) {
	i := sort.Search(len(t.players), func(i int) bool {
		return t.players[i].Rank >= rank
	})
	if i < len(t.players) && t.players[i].Rank == rank {
		return t.players[i], true
	}
	return models.Player{}, false
}

// OverallPick converts a round and pick-in-round into an overall pick.
func OverallPick(round, pick, teams int) int {
	if round < 1 || pick < 1 || teams < 1 {
		return 0
	}
	return (round-1)*teams + pick
}

// Round returns the players whose ADP rank falls inside the given round.
func (t *Table) Round(round, teams int) []models.Player {
	first := OverallPick(round, 1, teams)
	if first == 0 {
		return nil
	}
	last := first + teams - 1

	var out []models.Player
	for _, p := range t.players {
		if p.Rank >= first && p.Rank <= last {
			out = append(out, p)
		}
	}
	return out
}

// Top returns the n best-ranked players, optionally limited to a position.
func (t *Table) Top(n int, position string) []models.Player {
	position = strings.ToUpper(position)

	var out []models.Player
	for _, p := range t.players {
		if len(out) >= n {
			break
		}
		if position != "" && p.Position != position {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Find resolves a free-text name to a player using m.
func (t *Table) Find(name string, m matching.Matcher) (models.Player, matching.Match) {
	match := m.Best(name, t.names)
	if !match.Found {
		return models.Player{}, match
	}
	return t.players[match.Index], match
}
