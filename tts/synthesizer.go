package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/config"
	"github.com/Jacktheone617/reddit-story-video-generator/errs"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// Synthesizer turns a text unit into narration audio plus, when the primary
// engine cooperates, word boundary timing events.
type Synthesizer struct {
	cfg *config.Config
}

// New creates a new Synthesizer
func New(cfg *config.Config) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// Synthesize generates narration for the unit into outDir. The primary
// engine is edge-tts, which also writes per-word subtitle cues that become
// WordBoundaryEvents. When it fails, the configured fallback command
// produces audio only and the returned timing is AudioOnly; the caption
// scheduler must then estimate word display intervals.
func (s *Synthesizer) Synthesize(ctx context.Context, unit types.TextUnit, outDir string) (types.Narration, error) {
	if strings.TrimSpace(unit.Text) == "" || len(unit.Words) == 0 {
		return types.Narration{}, fmt.Errorf("%w: empty narration text", errs.ErrInput)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return types.Narration{}, fmt.Errorf("create audio dir: %w", err)
	}

	audioFile := filepath.Join(outDir, "narration.mp3")
	vttFile := filepath.Join(outDir, "boundaries.vtt")

	primaryErr := s.runEdgeTTS(ctx, unit.Text, audioFile, vttFile)
	if primaryErr == nil {
		dur, err := probeAudioDuration(audioFile)
		if err != nil {
			primaryErr = fmt.Errorf("probe narration: %w", err)
		} else if dur <= 0 {
			return types.Narration{}, fmt.Errorf("%w: zero-duration narration audio", errs.ErrInput)
		} else {
			events, err := ParseVTTBoundaries(vttFile)
			if err != nil || len(events) == 0 {
				// Audio is fine, only the timing signal is missing.
				log.Warn().Err(err).Str("stage", "tts").Msg("no boundary events from primary engine, captions will be estimated")
				return types.Narration{AudioFile: audioFile, Duration: dur, Timing: types.AudioOnly{}}, nil
			}
			log.Info().Str("stage", "tts").Int("events", len(events)).Float64("duration_sec", dur).Msg("primary engine narration ready")
			return types.Narration{AudioFile: audioFile, Duration: dur, Timing: types.WithBoundaries{Events: events}}, nil
		}
	}

	log.Warn().Err(primaryErr).Str("stage", "tts").Msg("primary engine failed, trying fallback")
	removeIfExists(audioFile)
	removeIfExists(vttFile)

	if s.cfg.TTS.FallbackCommand == "" {
		return types.Narration{}, fmt.Errorf("%w: primary failed and no fallback configured: %v", errs.ErrSynthesis, primaryErr)
	}

	if err := s.runFallback(ctx, unit.Text, audioFile); err != nil {
		removeIfExists(audioFile)
		return types.Narration{}, fmt.Errorf("%w: primary: %v; fallback: %v", errs.ErrSynthesis, primaryErr, err)
	}

	dur, err := probeAudioDuration(audioFile)
	if err != nil {
		removeIfExists(audioFile)
		return types.Narration{}, fmt.Errorf("%w: fallback audio unreadable: %v", errs.ErrSynthesis, err)
	}
	if dur <= 0 {
		removeIfExists(audioFile)
		return types.Narration{}, fmt.Errorf("%w: zero-duration narration audio", errs.ErrInput)
	}

	log.Info().Str("stage", "tts").Float64("duration_sec", dur).Msg("fallback engine narration ready (audio only)")
	return types.Narration{AudioFile: audioFile, Duration: dur, Timing: types.AudioOnly{}}, nil
}

// runEdgeTTS invokes the edge-tts CLI with per-word subtitle cues.
func (s *Synthesizer) runEdgeTTS(ctx context.Context, text, audioFile, vttFile string) error {
	if _, err := exec.LookPath("edge-tts"); err != nil {
		return fmt.Errorf("edge-tts not installed: %w", err)
	}

	var err error
	for attempt := 1; attempt <= s.cfg.TTS.Retries; attempt++ {
		cmd := exec.CommandContext(ctx,
			"edge-tts",
			"--voice", s.cfg.TTS.Voice,
			"--text", text,
			"--write-media", audioFile,
			"--write-subtitles", vttFile,
			"--words-in-cue", "1",
		)
		cmd.Stderr = os.Stderr

		err = cmd.Run()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Str("stage", "tts").Int("attempt", attempt).Msg("edge-tts attempt failed, retrying")
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}
	return err
}

// runFallback invokes the configured audio-only TTS command, which must
// accept --text and --output arguments.
func (s *Synthesizer) runFallback(ctx context.Context, text, audioFile string) error {
	fallback := strings.TrimSpace(s.cfg.TTS.FallbackCommand)

	var cmd *exec.Cmd
	if strings.HasSuffix(fallback, ".py") {
		cmd = exec.CommandContext(ctx, "python3", fallback, "--text", text, "--output", audioFile)
	} else {
		cmd = exec.CommandContext(ctx, fallback, "--text", text, "--output", audioFile)
	}
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// probeAudioDuration uses ffprobe to get accurate audio duration in seconds
func probeAudioDuration(audioFile string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioFile,
	).Output()
	if err != nil {
		return 0, err
	}
	var dur float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &dur)
	return dur, err
}

func removeIfExists(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
}
