package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

func main() {
	log := logger.GetLogger()

	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log = logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Info("Tables dropped successfully")

	case "seed":
		count, err := seedData(context.Background(), db)
		if err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		log.Infof("Seeded %d ADP rows", count)

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_players_position_rank ON players(position, rank)",
		"CREATE INDEX IF NOT EXISTS idx_roster_entries_league_batch ON roster_entries(league_id, import_batch)",
		"CREATE INDEX IF NOT EXISTS idx_keeper_recommendations_value ON keeper_recommendations(league_id, keeper_value DESC)",
		"CREATE INDEX IF NOT EXISTS idx_ai_queries_created ON ai_queries(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	// Drop tables in reverse order to handle foreign key constraints
	for i := len(models.TableNames) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models.TableNames[i]); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", models.TableNames[i], err)
		}
	}
	return nil
}

func seedData(ctx context.Context, db *database.DB) (int, error) {
	players, err := adp.Seed()
	if err != nil {
		return 0, err
	}
	if err := adp.NewRepository(db).Upsert(ctx, players); err != nil {
		return 0, err
	}
	return len(players), nil
}
