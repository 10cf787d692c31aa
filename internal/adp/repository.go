package adp

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
)

// Repository reads and writes the players table.
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Players returns every ADP row ordered by rank.
func (r *Repository) Players(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := r.db.WithContext(ctx).Order("rank ASC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch ADP players: %w", err)
	}
	return players, nil
}

// List returns up to limit rows, optionally for one position.
func (r *Repository) List(ctx context.Context, position string, limit int) ([]models.Player, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Player{})
	if position != "" {
		query = query.Where("position = ?", position)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ADP players: %w", err)
	}

	var players []models.Player
	if err := query.Order("rank ASC").Limit(limit).Find(&players).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ADP players: %w", err)
	}
	return players, total, nil
}

// Upsert inserts players, replacing rows that share a rank.
func (r *Repository) Upsert(ctx context.Context, players []models.Player) error {
	if len(players) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rank"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "position", "team", "adp", "bye_week", "projected_points", "season", "updated_at"}),
	}).Create(&players).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ADP players: %w", err)
	}
	return nil
}
