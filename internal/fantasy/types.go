// Package fantasy defines the platform-neutral league records returned by
// the ESPN and Sleeper connectors.
package fantasy

import (
	"context"
	"time"
)

// Platform identifies a hosted fantasy platform
type Platform string

const (
	PlatformESPN    Platform = "espn"
	PlatformSleeper Platform = "sleeper"
)

// LeagueData is league metadata from an external platform
type LeagueData struct {
	ExternalID  string    `json:"external_id"`
	Platform    Platform  `json:"platform"`
	Name        string    `json:"name"`
	Season      int       `json:"season"`
	Size        int       `json:"size"`
	DraftRounds int       `json:"draft_rounds"`
	ScoringType string    `json:"scoring_type,omitempty"`
	Status      string    `json:"status,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// MemberData is a league member (a human manager)
type MemberData struct {
	ExternalID  string `json:"external_id"`
	DisplayName string `json:"display_name"`
	TeamID      string `json:"team_id,omitempty"`
}

// RosterPlayer is one player on a fantasy roster
type RosterPlayer struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	ProTeam    string `json:"pro_team"`
}

// RosterData is one fantasy team and its current players
type RosterData struct {
	TeamID    string         `json:"team_id"`
	TeamName  string         `json:"team_name"`
	OwnerID   string         `json:"owner_id"`
	OwnerName string         `json:"owner_name,omitempty"`
	Players   []RosterPlayer `json:"players"`
}

// DraftPickData is one selection from the league's most recent draft
type DraftPickData struct {
	Round       int    `json:"round"`
	Pick        int    `json:"pick"`
	OverallPick int    `json:"overall_pick"`
	TeamID      string `json:"team_id"`
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name,omitempty"`
	IsKeeper    bool   `json:"is_keeper"`
}

// LeagueProvider is implemented by each platform connector
type LeagueProvider interface {
	Platform() Platform
	GetLeague(ctx context.Context) (*LeagueData, error)
	GetMembers(ctx context.Context) ([]MemberData, error)
	GetRosters(ctx context.Context) ([]RosterData, error)
	GetDraftPicks(ctx context.Context) ([]DraftPickData, error)
}

// CacheProvider interface for cache operations
type CacheProvider interface {
	SetSimple(key string, value interface{}, expiration time.Duration) error
	GetSimple(key string, dest interface{}) error
}

// NoCache never hits; used when Redis is not configured.
type NoCache struct{}

func (NoCache) SetSimple(string, interface{}, time.Duration) error { return nil }

func (NoCache) GetSimple(string, interface{}) error { return ErrCacheMiss }
