// Command league connects to an ESPN or Sleeper league, imports its rosters
// and prints keeper recommendations priced against current ADP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/providers"
	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "league",
	Short:         "Import a fantasy league and print keeper recommendations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	leagueID    string
	season      int
	keepersOnly bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&leagueID, "league-id", "", "League ID (defaults to ESPN_LEAGUE_ID or SLEEPER_LEAGUE_ID)")
	rootCmd.PersistentFlags().IntVar(&season, "season", 0, "ESPN season (defaults to ESPN_SEASON)")
	rootCmd.PersistentFlags().BoolVar(&keepersOnly, "keepers-only", false, "Print only the keeper recommendations")

	for _, platform := range []fantasy.Platform{fantasy.PlatformESPN, fantasy.PlatformSleeper} {
		platform := platform
		rootCmd.AddCommand(&cobra.Command{
			Use:   string(platform),
			Short: fmt.Sprintf("Import a %s league", platform),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runImport(cmd, platform)
			},
		})
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, platform fantasy.Platform) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	source, err := adpSource(ctx, db, log)
	if err != nil {
		return err
	}

	breaker := services.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, 60*time.Second, log)
	cache, err := services.NewCacheServiceFromURL(ctx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		cache = services.NewCacheService(nil)
	}
	defer cache.Close()

	provider, err := providers.NewFactory(cfg, cache, breaker, log).New(platform, leagueID, season)
	if err != nil {
		return err
	}

	importer := services.NewLeagueImportService(db, source, matching.New(cfg.NameMatchThreshold),
		services.KeeperSettingsFromConfig(cfg), cache, log)

	result, err := importer.Import(ctx, provider)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result, keepersOnly)
	return nil
}

// adpSource prefers the ADP table in the database and falls back to the
// bundled table when it has not been seeded.
func adpSource(ctx context.Context, db *database.DB, log *logrus.Logger) (adp.Source, error) {
	table, err := adp.Load(ctx, adp.NewRepository(db))
	if err == nil && table.Len() > 0 {
		return table, nil
	}
	if err != nil {
		log.WithError(err).Warn("Failed to read ADP table, using bundled data")
	} else {
		log.Warn("ADP table is empty, using bundled data; run `migrate seed` to store it")
	}
	return adp.SeedTable()
}

func printResult(out io.Writer, result *services.ImportResult, keepersOnly bool) {
	if !keepersOnly {
		fmt.Fprintf(out, "League: %s (%s %s, season %d, %d teams)\n",
			result.League.Name, result.League.Platform, result.League.ExternalID, result.League.Season, result.League.Size)
		fmt.Fprintf(out, "Members: %d  Roster entries: %d  Import batch: %s\n", result.Members, result.RosterEntries, result.BatchID)
		if len(result.Unmatched) > 0 {
			fmt.Fprintf(out, "Not in ADP table (%d): %v\n", len(result.Unmatched), result.Unmatched)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "=== KEEPER RECOMMENDATIONS ===")
	if len(result.Recommendations) == 0 {
		fmt.Fprintln(out, "no rostered players matched the ADP table")
		return
	}
	for _, rec := range result.Recommendations {
		fmt.Fprintln(out, rec.String())
	}
}
