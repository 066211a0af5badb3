package upload

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/config"
)

// TikTokUploader hands the video to an external cookie-authenticated
// uploader command. TikTok has no public upload API, so the command is
// expected to drive a logged-in browser session; it must accept
// --video, --description and --cookies arguments.
type TikTokUploader struct {
	cfg *config.Config
}

// NewTikTok creates a new TikTokUploader
func NewTikTok(cfg *config.Config) *TikTokUploader {
	return &TikTokUploader{cfg: cfg}
}

func (u *TikTokUploader) Name() string { return "tiktok" }

// Publish runs the configured uploader command for the video.
func (u *TikTokUploader) Publish(ctx context.Context, videoFile string, meta Metadata) (string, error) {
	command := u.cfg.Upload.TikTokCommand
	if command == "" {
		return "", fmt.Errorf("upload.tiktok_command not configured")
	}

	cookies := u.cfg.Upload.TikTokCookies
	if cookies == "" {
		cookies = "tiktok_cookies.txt"
	}

	description := Caption(meta.Title, meta.Tags, 2200)

	log.Info().Str("stage", "upload").Str("platform", "tiktok").Str("title", meta.Title).Msg("uploading video")

	cmd := exec.CommandContext(ctx, command,
		"--video", videoFile,
		"--description", description,
		"--cookies", cookies,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tiktok uploader command: %w", err)
	}

	log.Info().Str("stage", "upload").Str("platform", "tiktok").Msg("upload complete")
	return videoFile, nil
}
