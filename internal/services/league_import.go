package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
	"github.com/jstittsworth/draft-diagnostics/internal/keeper"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
	"github.com/jstittsworth/draft-diagnostics/pkg/utils"
)

// KeeperSettings are the league rules used to price keepers
type KeeperSettings struct {
	DefaultLeagueSize int // used when the platform does not report one
	RoundPenalty      int
	UndraftedRound    int
	ValueThreshold    int
}

func KeeperSettingsFromConfig(cfg *config.Config) KeeperSettings {
	return KeeperSettings{
		DefaultLeagueSize: cfg.LeagueSize,
		RoundPenalty:      cfg.KeeperRoundPenalty,
		UndraftedRound:    cfg.UndraftedKeeperRound,
		ValueThreshold:    cfg.KeeperValueThreshold,
	}
}

// ImportResult summarises one league import
type ImportResult struct {
	League          models.League           `json:"league"`
	BatchID         string                  `json:"batch_id"`
	Members         int                     `json:"members"`
	RosterEntries   int                     `json:"roster_entries"`
	Recommendations []keeper.Recommendation `json:"recommendations"`
	Unmatched       []string                `json:"unmatched,omitempty"`
}

// LeagueImportService pulls a league from a platform, stores its rosters and
// derives keeper recommendations from current ADP.
type LeagueImportService struct {
	db       *database.DB
	adp      adp.Source
	matcher  matching.Matcher
	settings KeeperSettings
	cache    *CacheService
	logger   *logrus.Logger
}

func NewLeagueImportService(db *database.DB, source adp.Source, matcher matching.Matcher, settings KeeperSettings, cache *CacheService, logger *logrus.Logger) *LeagueImportService {
	return &LeagueImportService{
		db:       db,
		adp:      source,
		matcher:  matcher,
		settings: settings,
		cache:    cache,
		logger:   logger,
	}
}

// Import connects to the league through provider and replaces the stored
// rosters and recommendations with a fresh batch. Failing to read the league
// or its rosters is fatal and wraps utils.ErrLeagueConnection; a missing draft
// only means every player is priced as undrafted.
func (s *LeagueImportService) Import(ctx context.Context, provider fantasy.LeagueProvider) (*ImportResult, error) {
	leagueData, err := provider.GetLeague(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrLeagueConnection, err)
	}
	log := logger.WithLeagueContext(s.logger, string(provider.Platform()), leagueData.ExternalID)
	log.WithField("name", leagueData.Name).Info("Connected to league")

	members, err := provider.GetMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrLeagueConnection, err)
	}
	rosters, err := provider.GetRosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrLeagueConnection, err)
	}
	picks, err := provider.GetDraftPicks(ctx)
	if err != nil {
		log.WithError(err).Warn("Draft picks unavailable, treating all players as undrafted")
		picks = nil
	}

	table, err := adp.Load(ctx, s.adp)
	if err != nil {
		return nil, fmt.Errorf("failed to load ADP data: %w", err)
	}

	rule := s.costRule(leagueData.Size)
	bands := keeper.Bands{Threshold: s.settings.ValueThreshold}
	picksByPlayer := make(map[string]fantasy.DraftPickData, len(picks))
	for _, p := range picks {
		picksByPlayer[p.PlayerID] = p
	}

	result := &ImportResult{BatchID: uuid.New().String()}
	var entries []models.RosterEntry
	var recs []models.KeeperRecommendation

	for _, roster := range rosters {
		for _, player := range roster.Players {
			pick := picksByPlayer[player.ExternalID]
			entries = append(entries, models.RosterEntry{
				ImportBatch:      result.BatchID,
				TeamExternalID:   roster.TeamID,
				TeamName:         roster.TeamName,
				OwnerName:        roster.OwnerName,
				PlayerExternalID: player.ExternalID,
				PlayerName:       player.Name,
				Position:         player.Position,
				ProTeam:          player.ProTeam,
				DraftRound:       pick.Round,
				DraftPick:        pick.Pick,
			})

			if player.Name == "" {
				continue
			}
			ranked, match := table.Find(player.Name, s.matcher)
			if !match.Found {
				log.WithField("player", player.Name).Warn("Player not in ADP table, skipping keeper evaluation")
				result.Unmatched = append(result.Unmatched, player.Name)
				continue
			}

			rec := keeper.Recommend(keeper.Candidate{
				PlayerName: ranked.Name,
				Position:   ranked.Position,
				Team:       ranked.Team,
				CurrentADP: ranked.ADP,
				ADPRank:    ranked.Rank,
				DraftRound: pick.Round,
			}, rule, bands)

			result.Recommendations = append(result.Recommendations, rec)
			recs = append(recs, models.KeeperRecommendation{
				ImportBatch:    result.BatchID,
				TeamName:       roster.TeamName,
				PlayerName:     rec.PlayerName,
				Position:       rec.Position,
				Team:           rec.Team,
				CurrentADP:     rec.CurrentADP,
				ADPRank:        rec.ADPRank,
				KeeperCostRank: rec.KeeperCostRank,
				KeeperValue:    rec.KeeperValue,
				Recommendation: rec.Recommendation,
			})
		}
	}

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		return result.Recommendations[i].KeeperValue > result.Recommendations[j].KeeperValue
	})

	teamNames := make(map[string]string, len(rosters))
	for _, r := range rosters {
		teamNames[r.TeamID] = r.TeamName
	}

	league := models.League{
		Platform:   models.Platform(leagueData.Platform),
		ExternalID: leagueData.ExternalID,
		Season:     leagueData.Season,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		league.Name = leagueData.Name
		league.Size = leagueData.Size
		league.LastSyncedAt = time.Now().UTC()

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform"}, {Name: "external_id"}, {Name: "season"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "size", "last_synced_at", "updated_at"}),
		}).Create(&league).Error; err != nil {
			return fmt.Errorf("failed to save league: %w", err)
		}
		// the upsert does not report the existing row's ID on every driver
		var stored models.League
		if err := tx.Where("platform = ? AND external_id = ? AND season = ?",
			league.Platform, league.ExternalID, league.Season).First(&stored).Error; err != nil {
			return fmt.Errorf("failed to reload league: %w", err)
		}
		league = stored

		if err := tx.Where("league_id = ?", league.ID).Delete(&models.LeagueMember{}).Error; err != nil {
			return fmt.Errorf("failed to clear members: %w", err)
		}
		if len(members) > 0 {
			rows := make([]models.LeagueMember, 0, len(members))
			for _, m := range members {
				rows = append(rows, models.LeagueMember{
					LeagueID:       league.ID,
					ExternalID:     m.ExternalID,
					DisplayName:    m.DisplayName,
					TeamExternalID: m.TeamID,
					TeamName:       teamNames[m.TeamID],
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save members: %w", err)
			}
		}

		for _, model := range []interface{}{&models.RosterEntry{}, &models.KeeperRecommendation{}} {
			if err := tx.Where("league_id = ?", league.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear previous import: %w", err)
			}
		}

		for i := range entries {
			entries[i].LeagueID = league.ID
		}
		if len(entries) > 0 {
			if err := tx.CreateInBatches(&entries, 200).Error; err != nil {
				return fmt.Errorf("failed to save rosters: %w", err)
			}
		}

		for i := range recs {
			recs[i].LeagueID = league.ID
		}
		if len(recs) > 0 {
			if err := tx.CreateInBatches(&recs, 200).Error; err != nil {
				return fmt.Errorf("failed to save keeper recommendations: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, KeepersCacheKey(league.ID)); err != nil {
		log.WithError(err).Warn("Failed to invalidate keeper cache")
	}

	result.League = league
	result.Members = len(members)
	result.RosterEntries = len(entries)

	log.WithFields(logrus.Fields{
		"batch_id":        result.BatchID,
		"roster_entries":  result.RosterEntries,
		"recommendations": len(result.Recommendations),
		"unmatched":       len(result.Unmatched),
	}).Info("League import completed")

	return result, nil
}

// Leagues lists imported leagues, most recently synced first
func (s *LeagueImportService) Leagues(ctx context.Context) ([]models.League, error) {
	var leagues []models.League
	if err := s.db.WithContext(ctx).Order("last_synced_at DESC").Find(&leagues).Error; err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}

// Keepers returns the stored recommendations for a league, best value first.
func (s *LeagueImportService) Keepers(ctx context.Context, leagueID uint) ([]models.KeeperRecommendation, error) {
	cacheKey := KeepersCacheKey(leagueID)

	var cached []models.KeeperRecommendation
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	var league models.League
	if err := s.db.WithContext(ctx).First(&league, leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("league %d: %w", leagueID, utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch league: %w", err)
	}

	var recs []models.KeeperRecommendation
	if err := s.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Order("keeper_value DESC, adp_rank ASC").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch keeper recommendations: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, recs, time.Hour); err != nil {
		s.logger.WithError(err).Warn("Failed to cache keeper recommendations")
	}
	return recs, nil
}

func (s *LeagueImportService) costRule(reportedSize int) keeper.CostRule {
	size := reportedSize
	if size < 1 {
		size = s.settings.DefaultLeagueSize
	}
	return keeper.CostRule{
		LeagueSize:     size,
		RoundPenalty:   s.settings.RoundPenalty,
		UndraftedRound: s.settings.UndraftedRound,
	}
}
