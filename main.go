package main

import (
	"github.com/christinemirimba/VibeCodingHackathon/cmd/config"
	migration "github.com/christinemirimba/VibeCodingHackathon/cmd/database/migrate"
	"github.com/christinemirimba/VibeCodingHackathon/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("migrating database: %v", err)
	}

	app, err := config.NewApp(db, cfg)
	if err != nil {
		log.Fatalf("setting up application: %v", err)
	}

	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("starting server: %v", err)
	}
}
