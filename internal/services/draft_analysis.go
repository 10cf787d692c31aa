package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/jstittsworth/draft-diagnostics/internal/draft"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
)

// DraftAnalysisService scores drafted teams and keeps a record of each run
type DraftAnalysisService struct {
	db      *database.DB
	weights draft.Weights
	logger  *logrus.Logger
}

func NewDraftAnalysisService(db *database.DB, weights draft.Weights, logger *logrus.Logger) *DraftAnalysisService {
	return &DraftAnalysisService{
		db:      db,
		weights: weights,
		logger:  logger,
	}
}

// Analyze scores picks and stores the result under label.
func (s *DraftAnalysisService) Analyze(ctx context.Context, label string, picks []draft.Pick) (draft.Analysis, *models.DraftAnalysis, error) {
	analysis := draft.Score(draft.NewTeam(picks), s.weights)

	raw, err := json.Marshal(picks)
	if err != nil {
		return analysis, nil, fmt.Errorf("failed to encode picks: %w", err)
	}

	record := &models.DraftAnalysis{
		Label:           label,
		PickCount:       analysis.PickCount,
		Score:           analysis.Score,
		ADPGrade:        string(analysis.ADPGrade),
		ProjectionGrade: string(analysis.ProjectionGrade),
		OverallGrade:    string(analysis.OverallGrade),
		Picks:           datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return analysis, nil, fmt.Errorf("failed to save draft analysis: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"label":         label,
		"score":         analysis.Score,
		"overall_grade": analysis.OverallGrade,
	}).Info("Draft analyzed")

	return analysis, record, nil
}
