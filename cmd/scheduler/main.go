package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/config"
)

// The scheduler runs the pipeline binary on the configured cron spec so a
// single long-lived process can keep a channel fed without external CI.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Schedule.Cron == "" {
		log.Fatal().Msg("schedule.cron not configured")
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule.Cron, runPipeline)
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Schedule.Cron).Msg("invalid cron spec")
	}

	log.Info().Str("spec", cfg.Schedule.Cron).Msg("scheduler started")
	c.Start()
	defer c.Stop()

	select {}
}

func runPipeline() {
	log.Info().Msg("scheduled run starting")

	cmd := exec.Command(filepath.Join(filepath.Dir(os.Args[0]), "pipeline"))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Error().Err(err).Msg("scheduled run failed")
	}
}
