package models

import (
	"time"
)

// Platform identifies an external fantasy platform
type Platform string

const (
	PlatformESPN    Platform = "espn"
	PlatformSleeper Platform = "sleeper"
)

func (p Platform) Valid() bool {
	return p == PlatformESPN || p == PlatformSleeper
}

type League struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Platform     Platform  `gorm:"not null;uniqueIndex:idx_league_platform_external" json:"platform"`
	ExternalID   string    `gorm:"not null;uniqueIndex:idx_league_platform_external" json:"external_id"`
	Season       int       `gorm:"uniqueIndex:idx_league_platform_external" json:"season"`
	Name         string    `json:"name"`
	Size         int       `json:"size"`
	LastSyncedAt time.Time `json:"last_synced_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (League) TableName() string {
	return "leagues"
}

type LeagueMember struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	LeagueID       uint   `gorm:"not null;index" json:"league_id"`
	ExternalID     string `gorm:"not null" json:"external_id"`
	DisplayName    string `json:"display_name"`
	TeamExternalID string `json:"team_external_id"`
	TeamName       string `json:"team_name"`
}

func (LeagueMember) TableName() string {
	return "league_members"
}

// RosterEntry is one player on one fantasy team at import time.
type RosterEntry struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	LeagueID         uint      `gorm:"not null;index" json:"league_id"`
	ImportBatch      string    `gorm:"index" json:"import_batch"`
	TeamExternalID   string    `gorm:"not null" json:"team_external_id"`
	TeamName         string    `json:"team_name"`
	OwnerName        string    `json:"owner_name"`
	PlayerExternalID string    `gorm:"not null" json:"player_external_id"`
	PlayerName       string    `gorm:"not null" json:"player_name"`
	Position         string    `json:"position"`
	ProTeam          string    `json:"pro_team"`
	DraftRound       int       `json:"draft_round"` // 0 when not drafted
	DraftPick        int       `json:"draft_pick"`
	CreatedAt        time.Time `json:"created_at"`
}

func (RosterEntry) TableName() string {
	return "roster_entries"
}

type KeeperRecommendation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	LeagueID       uint      `gorm:"not null;index" json:"league_id"`
	ImportBatch    string    `gorm:"index" json:"import_batch"`
	TeamName       string    `json:"team_name"`
	PlayerName     string    `json:"player_name"`
	Position       string    `json:"position"`
	Team           string    `json:"team"`
	CurrentADP     float64   `gorm:"column:current_adp" json:"current_adp"`
	ADPRank        int       `gorm:"column:adp_rank" json:"adp_rank"`
	KeeperCostRank int       `json:"keeper_cost_rank"`
	KeeperValue    int       `json:"keeper_value"`
	Recommendation string    `json:"recommendation"`
	CreatedAt      time.Time `json:"created_at"`
}

func (KeeperRecommendation) TableName() string {
	return "keeper_recommendations"
}
