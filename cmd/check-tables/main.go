// Command check-tables reports whether each expected table exists and how
// many rows it holds, then prints a sample of the ADP table.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/internal/probe"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "check-tables [table...]",
	Short: "Probe database tables for existence and row counts",
	Long:  "Checks every expected table (or the tables given as arguments), then samples the players table filtered by position. A failing table is reported and the run continues.",
	RunE:  runCheckTables,
}

var (
	samplePosition string
	sampleLimit    int
	strict         bool
)

func init() {
	rootCmd.Flags().StringVarP(&samplePosition, "position", "p", "QB", "Position filter for the players sample (empty for all)")
	rootCmd.Flags().IntVarP(&sampleLimit, "limit", "n", 5, "Number of sample rows")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any table is missing or failed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCheckTables(cmd *cobra.Command, args []string) error {
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

	tables := args
	if len(tables) == 0 {
		tables = cfg.ProbeTables
	}
	if len(tables) == 0 {
		tables = models.TableNames
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	prober := probe.New(db, log)
	report := prober.Run(ctx, tables)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== TABLES ===")
	for _, res := range report.Results {
		fmt.Fprintln(out, res.String())
	}

	filter := map[string]interface{}{}
	if samplePosition != "" {
		filter["position"] = strings.ToUpper(samplePosition)
	}
	fmt.Fprintf(out, "\n=== SAMPLE: players %v limit %d ===\n", filter, sampleLimit)
	rows, err := prober.Sample(ctx, "players", filter, sampleLimit)
	if err != nil {
		fmt.Fprintf(out, "sample failed: %v\n", err)
	}
	for _, row := range rows {
		fmt.Fprintf(out, "#%v %v (%v, %v) adp %v\n", row["rank"], row["name"], row["position"], row["team"], row["adp"])
	}

	if !report.Healthy() {
		log.WithFields(logrus.Fields{
			"missing": report.Missing(),
			"failed":  report.Failed(),
		}).Warn("Some tables are not healthy")
		if strict {
			return fmt.Errorf("%d missing and %d failed tables", len(report.Missing()), len(report.Failed()))
		}
	}
	return nil
}
