package main

import (
	"log"

	"github.com/cjlund9/eventpoints/internal/awards"
	"github.com/cjlund9/eventpoints/internal/config"
	"github.com/cjlund9/eventpoints/internal/database"
	"github.com/cjlund9/eventpoints/pkg/logger"
	"github.com/joho/godotenv"
)

// Prepares the database for the points ledger: connects, runs migrations, and
// validates the award point configuration so a bad table is caught here
// instead of at the first award.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
	}

	awardsCfg, err := awards.LoadConfig(cfg.AwardsConfigPath)
	if err != nil {
		logger.Fatal("Failed to load awards config", err)
	}
	policy := awards.NewPolicy(awardsCfg)
	logger.Info("Award policy loaded",
		"combat_tiers", len(policy.CombatAchievementTiers()),
		"collection_tiers", len(policy.CollectionLogTiers()),
		"events", len(policy.EventTypes()),
	)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	logger.Info("Setup complete", "env", cfg.AppEnv)
}
