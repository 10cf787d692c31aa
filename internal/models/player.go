package models

import (
	"time"
)

// Player is one row of the ADP table.
type Player struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Rank            int       `gorm:"not null;uniqueIndex" json:"rank" yaml:"rank"`
	Name            string    `gorm:"not null;index" json:"name" yaml:"name"`
	Position        string    `gorm:"not null;index" json:"position" yaml:"position"` // QB, RB, WR, TE, K, DST
	Team            string    `json:"team" yaml:"team"`
	ADP             float64   `gorm:"column:adp" json:"adp" yaml:"adp"`
	ByeWeek         int       `json:"bye_week" yaml:"bye"`
	ProjectedPoints float64   `json:"projected_points" yaml:"points"`
	Season          int       `gorm:"index" json:"season" yaml:"-"`
	CreatedAt       time.Time `json:"created_at" yaml:"-"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"-"`
}

// TableName specifies the table name for GORM
func (Player) TableName() string {
	return "players"
}

// Positions accepted in the ADP table
var Positions = []string{"QB", "RB", "WR", "TE", "K", "DST"}
