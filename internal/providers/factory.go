package providers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
)

// Factory builds league connectors that share one cache, breaker and config
type Factory struct {
	cfg     *config.Config
	cache   fantasy.CacheProvider
	breaker Executor
	logger  *logrus.Logger
}

func NewFactory(cfg *config.Config, cache fantasy.CacheProvider, breaker Executor, logger *logrus.Logger) *Factory {
	return &Factory{cfg: cfg, cache: cache, breaker: breaker, logger: logger}
}

func (f *Factory) options() ClientOptions {
	return ClientOptions{
		Timeout:           f.cfg.ExternalAPITimeout,
		RequestsPerSecond: float64(f.cfg.ESPNRateLimit),
	}
}

// New returns the connector for platform. Empty leagueID and season fall back
// to the configured league.
func (f *Factory) New(platform fantasy.Platform, leagueID string, season int) (fantasy.LeagueProvider, error) {
	switch platform {
	case fantasy.PlatformESPN:
		if leagueID == "" {
			leagueID = f.cfg.ESPNLeagueID
		}
		if season == 0 {
			season = f.cfg.ESPNSeason
		}
		if leagueID == "" {
			return nil, fmt.Errorf("espn league id is required")
		}
		return NewESPNClient(ESPNConfig{
			LeagueID: leagueID,
			Season:   season,
			S2:       f.cfg.ESPNS2,
			SWID:     f.cfg.ESPNSWID,
		}, f.options(), f.cache, f.breaker, f.logger), nil

	case fantasy.PlatformSleeper:
		if leagueID == "" {
			leagueID = f.cfg.SleeperLeagueID
		}
		if leagueID == "" {
			return nil, fmt.Errorf("sleeper league id is required")
		}
		return NewSleeperClient(leagueID, f.options(), f.cache, f.breaker, f.logger), nil

	default:
		return nil, fmt.Errorf("unsupported platform: %q", platform)
	}
}
