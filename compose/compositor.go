package compose

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/captions"
	"github.com/Jacktheone617/reddit-story-video-generator/config"
	"github.com/Jacktheone617/reddit-story-video-generator/errs"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// Compositor merges background footage, narration audio, the caption track
// and the header card into the finished artifact.
type Compositor struct {
	cfg  *config.Config
	pool *Pool
}

// New opens the background pool and creates a Compositor.
func New(cfg *config.Config) (*Compositor, error) {
	pool, err := OpenPool(cfg.Paths.Backgrounds)
	if err != nil {
		return nil, err
	}
	return &Compositor{cfg: cfg, pool: pool}, nil
}

// Render produces the final video for one RenderSpec. The artifact lands at
// <output>/<unitID>.mp4; it is encoded into a temp file first and renamed
// only on full success so a cancelled or failed render never leaves a
// partial file at the delivery location.
func (c *Compositor) Render(ctx context.Context, spec types.RenderSpec, workDir string) (string, error) {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	if err := os.MkdirAll(c.cfg.Paths.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	assFile := filepath.Join(workDir, "captions.ass")
	track := captions.WriteASS(spec.Captions, types.FPS, captions.TrackStyle{
		Font:        c.cfg.Captions.Font,
		FontSize:    c.cfg.Captions.FontSize,
		StrokeWidth: c.cfg.Captions.StrokeWidth,
		MarginV:     c.cfg.Captions.MarginV,
	})
	if err := os.WriteFile(assFile, []byte(track), 0644); err != nil {
		return "", fmt.Errorf("write caption track: %w", err)
	}

	seed := spec.Seed
	if !spec.Seeded {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	finalFile := filepath.Join(c.cfg.Paths.Output, spec.UnitID+".mp4")
	tmpFile := filepath.Join(workDir, spec.UnitID+".tmp.mp4")
	defer os.Remove(tmpFile)

	var lastProbeErr error
	for _, clip := range c.pool.Candidates(rng) {
		clipDur, err := probeVideoDuration(clip)
		if err != nil || clipDur <= 0 {
			// Corrupt or unreadable clip: retryable against the pool.
			log.Warn().Err(err).Str("stage", "compose").Str("clip", clip).Msg("background clip unreadable, trying next candidate")
			lastProbeErr = err
			continue
		}

		log.Info().Str("stage", "compose").Str("clip", filepath.Base(clip)).Float64("duration_sec", spec.Duration).Msg("encoding final video")

		args := buildEncodeArgs(encodeParams{
			Clip:      clip,
			ClipDur:   clipDur,
			AudioFile: spec.AudioFile,
			Duration:  spec.Duration,
			Header:    spec.HeaderFile,
			ASSFile:   assFile,
			Preset:    c.cfg.Compose.Preset,
			CRF:       c.cfg.Compose.CRF,
			Output:    tmpFile,
		})

		cmd := exec.CommandContext(ctx, "ffmpeg", args...)
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("%w: ffmpeg encode: %v", errs.ErrEncoding, err)
		}

		if err := os.Rename(tmpFile, finalFile); err != nil {
			return "", fmt.Errorf("%w: finalize artifact: %v", errs.ErrEncoding, err)
		}
		log.Info().Str("stage", "compose").Str("video", finalFile).Msg("final video ready")
		return finalFile, nil
	}

	return "", fmt.Errorf("%w: all %d background clips unreadable: %v", errs.ErrResource, c.pool.Size(), lastProbeErr)
}

// probeVideoDuration uses ffprobe to get accurate clip duration in seconds
func probeVideoDuration(path string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, err
	}
	var dur float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &dur)
	return dur, err
}
