package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medoffice-agenda/internal/agenda"
	"medoffice-agenda/internal/api"
	"medoffice-agenda/internal/config"
	"medoffice-agenda/internal/models"
	"medoffice-agenda/internal/render"
)

func main() {
	// Load environment variables; a missing .env just means plain env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	client := api.NewClient(cfg.API.BaseURL, logger,
		api.WithToken(cfg.API.Token),
		api.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
	)

	week := agenda.New(client, logger, agenda.WithGrid(agenda.Grid{
		OpeningHour: cfg.Calendar.OpeningHour,
		ClosingHour: cfg.Calendar.ClosingHour,
	}))

	ctx := context.Background()
	anchor := models.DateOf(time.Now())
	if len(os.Args) > 1 {
		anchor, err = models.ParseDate(os.Args[1])
		if err != nil {
			logger.Fatal("invalid anchor date", zap.String("arg", os.Args[1]), zap.Error(err))
		}
	}

	if _, err := week.OpenWeek(ctx, anchor); err != nil {
		logger.Fatal("could not load week", zap.Error(err))
	}

	if err := render.WriteWeek(os.Stdout, week.Window(), week.Blocks()); err != nil {
		logger.Fatal("could not render week", zap.Error(err))
	}
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
