package adp

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jstittsworth/draft-diagnostics/internal/models"
)

//go:embed data/adp.yaml
var seedYAML []byte

type seedFile struct {
	Season  int             `yaml:"season"`
	Players []models.Player `yaml:"players"`
}

// Seed returns the bundled ADP table rows.
func Seed() ([]models.Player, error) {
	return Parse(seedYAML)
}

// Parse reads an ADP table in the bundled YAML layout.
func Parse(data []byte) ([]models.Player, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse ADP data: %w", err)
	}

	seen := make(map[int]string, len(file.Players))
	for i := range file.Players {
		p := &file.Players[i]
		if p.Rank < 1 || p.Name == "" {
			return nil, fmt.Errorf("invalid ADP row %d: rank %d name %q", i+1, p.Rank, p.Name)
		}
		if other, dup := seen[p.Rank]; dup {
			return nil, fmt.Errorf("duplicate ADP rank %d: %s and %s", p.Rank, other, p.Name)
		}
		seen[p.Rank] = p.Name
		p.Season = file.Season
	}
	return file.Players, nil
}

// SeedTable is the bundled data as a Table.
func SeedTable() (*Table, error) {
	players, err := Seed()
	if err != nil {
		return nil, err
	}
	return NewTable(players), nil
}
