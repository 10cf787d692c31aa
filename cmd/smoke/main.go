// Command smoke hits a fixed list of API endpoints and exits non-zero when
// any of them returns an unexpected status.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jstittsworth/draft-diagnostics/internal/smoke"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "smoke",
	Short:         "Smoke test the API server",
	Long:          "Issues each request in the fixed smoke list against the API server and logs the status codes.",
	RunE:          runSmoke,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	baseURL string
	timeout time.Duration
)

func init() {
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (defaults to API_BASE_URL)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSmoke(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())

	if baseURL == "" {
		baseURL = cfg.APIBaseURL
	}
	log.WithField("base_url", baseURL).Info("Running smoke checks")

	report := smoke.NewRunner(baseURL, timeout, log).Run(cmd.Context(), smoke.DefaultChecks)

	out := cmd.OutOrStdout()
	for _, res := range report.Results {
		fmt.Fprintln(out, res.String())
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d smoke checks failed", len(failed), len(report.Results))
	}
	fmt.Fprintf(out, "all %d smoke checks passed\n", len(report.Results))
	return nil
}
