package models

import (
	"time"

	"gorm.io/datatypes"
)

// AIQuery records each question answered by the AI helper
type AIQuery struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	RequestID  string         `gorm:"index" json:"request_id"`
	Question   string         `gorm:"not null" json:"question"`
	Intent     string         `gorm:"index" json:"intent"`
	Success    bool           `json:"success"`
	Confidence float64        `json:"confidence"`
	Answer     string         `json:"answer"`
	Data       datatypes.JSON `json:"data"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (AIQuery) TableName() string {
	return "ai_queries"
}

// DraftAnalysis records a consolidated draft score
type DraftAnalysis struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Label           string         `json:"label"`
	PickCount       int            `json:"pick_count"`
	Score           float64        `json:"score"`
	ADPGrade        string         `gorm:"column:adp_grade" json:"adp_grade"`
	ProjectionGrade string         `json:"projection_grade"`
	OverallGrade    string         `json:"overall_grade"`
	Picks           datatypes.JSON `json:"picks"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (DraftAnalysis) TableName() string {
	return "draft_analyses"
}

// All returns every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&Player{},
		&League{},
		&LeagueMember{},
		&RosterEntry{},
		&KeeperRecommendation{},
		&AIQuery{},
		&DraftAnalysis{},
	}
}

// TableNames lists the tables the diagnostics expect, in migration order
var TableNames = []string{
	"players",
	"leagues",
	"league_members",
	"roster_entries",
	"keeper_recommendations",
	"ai_queries",
	"draft_analyses",
}
