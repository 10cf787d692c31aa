package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

// ProviderFactory builds a connector for a stored league
type ProviderFactory func(league models.League) (fantasy.LeagueProvider, error)

// LeagueSyncService re-imports every stored league on a cron schedule
type LeagueSyncService struct {
	db       *database.DB
	importer *LeagueImportService
	factory  ProviderFactory
	logger   *logrus.Logger
	cron     *cron.Cron
	schedule string
	timeout  time.Duration
	mu       sync.Mutex
	running  bool
}

func NewLeagueSyncService(
	db *database.DB,
	importer *LeagueImportService,
	factory ProviderFactory,
	logger *logrus.Logger,
	schedule string,
	timeout time.Duration,
) *LeagueSyncService {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &LeagueSyncService{
		db:       db,
		importer: importer,
		factory:  factory,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		timeout:  timeout,
	}
}

// Start schedules the sync job
func (s *LeagueSyncService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("league sync is already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { s.SyncAll(context.Background()) }); err != nil {
		return fmt.Errorf("failed to schedule league sync: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.WithField("schedule", s.schedule).Info("League sync service started")
	return nil
}

// Stop waits for a running job to finish, then halts the schedule
func (s *LeagueSyncService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.running = false
	s.logger.Info("League sync service stopped")
}

// SyncAll re-imports each stored league. One league failing does not stop
// the others; the number of successful imports is returned.
func (s *LeagueSyncService) SyncAll(ctx context.Context) int {
	var leagues []models.League
	if err := s.db.WithContext(ctx).Find(&leagues).Error; err != nil {
		s.logger.WithError(err).Error("Failed to list leagues for sync")
		return 0
	}

	s.logger.Infof("Syncing %d leagues", len(leagues))

	synced := 0
	for _, league := range leagues {
		log := logger.WithLeagueContext(s.logger, string(league.Platform), league.ExternalID)

		provider, err := s.factory(league)
		if err != nil {
			log.WithError(err).Error("Failed to build league provider")
			continue
		}

		leagueCtx, cancel := context.WithTimeout(ctx, s.timeout)
		_, err = s.importer.Import(leagueCtx, provider)
		cancel()
		if err != nil {
			log.WithError(err).Error("League sync failed")
			continue
		}
		synced++
	}

	s.logger.Infof("League sync completed: %d/%d leagues", synced, len(leagues))
	return synced
}
