package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/compose"
	"github.com/Jacktheone617/reddit-story-video-generator/config"
	"github.com/Jacktheone617/reddit-story-video-generator/pipeline"
	"github.com/Jacktheone617/reddit-story-video-generator/scrape"
	"github.com/Jacktheone617/reddit-story-video-generator/script"
	"github.com/Jacktheone617/reddit-story-video-generator/store"
	"github.com/Jacktheone617/reddit-story-video-generator/tts"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
	"github.com/Jacktheone617/reddit-story-video-generator/upload"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// Load .env for local dev; CI injects secrets directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Work} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("failed to create dir")
		}
	}

	runID := uuid.NewString()[:8]
	log.Info().Str("run_id", runID).Msg("pipeline starting")

	tracker, err := store.Open(cfg.Paths.DedupDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open dedup store")
	}
	defer tracker.Close()

	if n, err := tracker.Count(); err == nil {
		log.Info().Int("processed_posts", n).Msg("dedup store loaded")
	}

	scraper, err := scrape.New(cfg, tracker)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scraper")
	}

	compositor, err := compose.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open background pool")
	}

	controller := pipeline.NewController(
		cfg,
		func(post types.Post) (types.TextUnit, error) {
			return script.BuildTextUnit(post, cfg.Paraphrase.MaxWords)
		},
		script.NewParaphraser(cfg),
		tts.New(cfg),
		compositor,
		tracker,
		buildPublishers(cfg),
	)

	ctx := context.Background()

	posts, err := scraper.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("discovery failed")
	}

	report := controller.RunBatch(ctx, runID, posts)
	log.Info().Int("succeeded", report.Succeeded).Int("failed", report.Failed).Msg("batch complete")

	if report.Succeeded == 0 {
		os.Exit(1)
	}
}

func buildPublishers(cfg *config.Config) []upload.Publisher {
	var publishers []upload.Publisher
	for _, platform := range cfg.Upload.Platforms {
		switch platform {
		case "youtube":
			publishers = append(publishers, upload.NewYouTube(cfg))
		case "tiktok":
			publishers = append(publishers, upload.NewTikTok(cfg))
		case "s3":
			archiver, err := upload.NewS3(cfg)
			if err != nil {
				log.Warn().Err(err).Msg("s3 archiver unavailable")
				continue
			}
			publishers = append(publishers, archiver)
		default:
			log.Warn().Str("platform", platform).Msg("unknown publish platform in config")
		}
	}
	return publishers
}
