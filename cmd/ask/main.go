// Command ask runs questions through the ADP question responder and prints
// each answer with its confidence and reasoning.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/assistant"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

// defaultQuestions covers every intent plus one the responder cannot answer
var defaultQuestions = []string{
	"What can you help me with?",
	"Who is ADP #1?",
	"Who are the top 5 RBs?",
	"Top 3 QBs",
	"Who should I take in round 2?",
	"Who's available at round 3 pick 7?",
	"Where is Justin Jefferson being drafted?",
	"What is Pat Mahomes ADP?",
	"What's the weather in Green Bay?",
}

var rootCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask the ADP helper questions",
	Long:  "Answers each question given as an argument, or a fixed list of sample questions when none are given. Uses the bundled ADP table unless --db is set.",
	RunE:  runAsk,
}

var useDatabase bool

func init() {
	rootCmd.Flags().BoolVar(&useDatabase, "db", false, "Read ADP data from the database instead of the bundled table")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())

	var source adp.Source
	if useDatabase {
		db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		source = adp.NewRepository(db)
	} else {
		table, err := adp.SeedTable()
		if err != nil {
			return err
		}
		source = table
	}

	questions := defaultQuestions
	if len(args) > 0 {
		questions = []string{strings.Join(args, " ")}
	}

	responder := assistant.NewResponder(source, matching.New(cfg.NameMatchThreshold), cfg.LeagueSize)
	answered := askAll(cmd.Context(), responder, questions, cmd.OutOrStdout())
	log.Infof("Answered %d/%d questions", answered, len(questions))
	return nil
}

// askAll prints one block per question and returns how many were answered
// successfully. A question that errors is reported and the rest still run.
func askAll(ctx context.Context, responder *assistant.Responder, questions []string, out io.Writer) int {
	answered := 0
	for i, q := range questions {
		fmt.Fprintf(out, "[%d] Q: %s\n", i+1, q)

		resp, err := responder.Answer(ctx, q)
		if err != nil {
			fmt.Fprintf(out, "    ERROR: %v\n\n", err)
			continue
		}
		if resp.Success {
			answered++
		}

		fmt.Fprintf(out, "    A: %s\n", resp.Answer)
		fmt.Fprintf(out, "    intent=%s confidence=%.2f\n", resp.Intent, resp.Confidence)
		fmt.Fprintf(out, "    reasoning: %s\n\n", resp.Reasoning)
	}
	return answered
}
