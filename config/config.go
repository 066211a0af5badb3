package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scrape     ScrapeConfig     `yaml:"scrape"`
	Paraphrase ParaphraseConfig `yaml:"paraphrase"`
	TTS        TTSConfig        `yaml:"tts"`
	Captions   CaptionsConfig   `yaml:"captions"`
	Header     HeaderConfig     `yaml:"header"`
	Compose    ComposeConfig    `yaml:"compose"`
	Upload     UploadConfig     `yaml:"upload"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Paths      PathsConfig      `yaml:"paths"`
}

type ScrapeConfig struct {
	Subreddits    []string `yaml:"subreddits"`
	PostsPerRun   int      `yaml:"posts_per_run"`
	MinScore      int      `yaml:"min_score"`
	MinBodyChars  int      `yaml:"min_body_chars"`
	MaxBodyChars  int      `yaml:"max_body_chars"`
	FetchWorkers  int      `yaml:"fetch_workers"`
	ListingLimit  int      `yaml:"listing_limit"`
}

type ParaphraseConfig struct {
	Enabled     bool    `yaml:"enabled"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxWords    int     `yaml:"max_words"`
}

type TTSConfig struct {
	Voice           string `yaml:"voice"`
	FallbackCommand string `yaml:"fallback_command"`
	Retries         int    `yaml:"retries"`
}

type CaptionsConfig struct {
	Font        string  `yaml:"font"`
	FontSize    int     `yaml:"font_size"`
	StrokeWidth float64 `yaml:"stroke_width"`
	MarginV     int     `yaml:"margin_v"`
}

type HeaderConfig struct {
	Channel string `yaml:"channel"`
}

type ComposeConfig struct {
	Preset string `yaml:"preset"`
	CRF    int    `yaml:"crf"`
}

type UploadConfig struct {
	Platforms        []string `yaml:"platforms"`
	CooldownSec      int      `yaml:"cooldown_sec"`
	Visibility       string   `yaml:"visibility"`
	CategoryID       string   `yaml:"category_id"`
	Tags             []string `yaml:"tags"`
	TikTokCommand    string   `yaml:"tiktok_command"`
	TikTokCookies    string   `yaml:"tiktok_cookies"`
	S3Bucket         string   `yaml:"s3_bucket"`
	S3Region         string   `yaml:"s3_region"`
	MadeForKids      bool     `yaml:"made_for_kids"`
	NotifySubscribers bool    `yaml:"notify_subscribers"`
}

type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

type PathsConfig struct {
	Backgrounds string `yaml:"backgrounds"`
	Output      string `yaml:"output"`
	Work        string `yaml:"work"`
	DedupDB     string `yaml:"dedup_db"`
}

// Load reads config.yaml and returns a Config struct
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Scrape.PostsPerRun == 0 {
		c.Scrape.PostsPerRun = 2
	}
	if c.Scrape.MinScore == 0 {
		c.Scrape.MinScore = 5
	}
	if c.Scrape.MinBodyChars == 0 {
		c.Scrape.MinBodyChars = 100
	}
	if c.Scrape.MaxBodyChars == 0 {
		c.Scrape.MaxBodyChars = 2000
	}
	if c.Scrape.FetchWorkers == 0 {
		c.Scrape.FetchWorkers = 4
	}
	if c.Scrape.ListingLimit == 0 {
		c.Scrape.ListingLimit = 50
	}
	if c.Paraphrase.MaxWords == 0 {
		c.Paraphrase.MaxWords = 250
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "en-US-JennyNeural"
	}
	if c.TTS.Retries == 0 {
		c.TTS.Retries = 3
	}
	if c.Captions.FontSize == 0 {
		c.Captions.FontSize = 64
	}
	if c.Captions.MarginV == 0 {
		c.Captions.MarginV = 380
	}
	if c.Compose.Preset == "" {
		c.Compose.Preset = "fast"
	}
	if c.Compose.CRF == 0 {
		c.Compose.CRF = 22
	}
	if c.Upload.CooldownSec == 0 {
		c.Upload.CooldownSec = 60
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output_videos"
	}
	if c.Paths.Work == "" {
		c.Paths.Work = "work"
	}
	if c.Paths.DedupDB == "" {
		c.Paths.DedupDB = "processed_posts.db"
	}
}

func (c *Config) validate() error {
	if len(c.Scrape.Subreddits) == 0 {
		return fmt.Errorf("config: at least one subreddit is required")
	}
	if c.Paths.Backgrounds == "" {
		return fmt.Errorf("config: paths.backgrounds is required")
	}
	return nil
}
