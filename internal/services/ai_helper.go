package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/jstittsworth/draft-diagnostics/internal/assistant"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

// AIHelperService answers ADP questions through the assistant, caching
// answers and recording every question asked.
type AIHelperService struct {
	db         *database.DB
	responder  *assistant.Responder
	cache      *CacheService
	expiration time.Duration
	logger     *logrus.Logger
}

func NewAIHelperService(db *database.DB, responder *assistant.Responder, cache *CacheService, expiration time.Duration, logger *logrus.Logger) *AIHelperService {
	return &AIHelperService{
		db:         db,
		responder:  responder,
		cache:      cache,
		expiration: expiration,
		logger:     logger,
	}
}

// Ask answers question. requestID ties the stored query to the HTTP request.
func (s *AIHelperService) Ask(ctx context.Context, requestID, question string) (assistant.Response, error) {
	question = strings.TrimSpace(question)
	cacheKey := AIAnswerCacheKey(strings.ToLower(question))

	var resp assistant.Response
	if err := s.cache.Get(ctx, cacheKey, &resp); err != nil {
		resp, err = s.responder.Answer(ctx, question)
		if err != nil {
			return assistant.Response{}, err
		}
		if resp.Success {
			if err := s.cache.Set(ctx, cacheKey, resp, s.expiration); err != nil {
				s.logger.WithError(err).Warn("Failed to cache AI answer")
			}
		}
	}

	s.record(ctx, requestID, question, resp)
	return resp, nil
}

// History returns the most recent questions, newest first
func (s *AIHelperService) History(ctx context.Context, limit int) ([]models.AIQuery, error) {
	var queries []models.AIQuery
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&queries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch AI query history: %w", err)
	}
	return queries, nil
}

// record stores the question; failure is logged and never fails the answer
func (s *AIHelperService) record(ctx context.Context, requestID, question string, resp assistant.Response) {
	var data datatypes.JSON
	if resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to encode AI answer data")
		} else {
			data = datatypes.JSON(raw)
		}
	}

	query := models.AIQuery{
		RequestID:  requestID,
		Question:   question,
		Intent:     string(resp.Intent),
		Success:    resp.Success,
		Confidence: resp.Confidence,
		Answer:     resp.Answer,
		Data:       data,
	}
	if err := s.db.WithContext(ctx).Create(&query).Error; err != nil {
		logger.WithRequestID(s.logger, requestID).WithError(err).Warn("Failed to record AI query")
	}
}
