package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/captions"
	"github.com/Jacktheone617/reddit-story-video-generator/config"
	"github.com/Jacktheone617/reddit-story-video-generator/errs"
	"github.com/Jacktheone617/reddit-story-video-generator/header"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
	"github.com/Jacktheone617/reddit-story-video-generator/upload"
)

// Synthesizer produces narration for a text unit into a directory.
type Synthesizer interface {
	Synthesize(ctx context.Context, unit types.TextUnit, outDir string) (types.Narration, error)
}

// Compositor renders one RenderSpec into a finished video file.
type Compositor interface {
	Render(ctx context.Context, spec types.RenderSpec, workDir string) (string, error)
}

// Rewriter optionally paraphrases the narration script.
type Rewriter interface {
	Rewrite(ctx context.Context, unit types.TextUnit) types.TextUnit
}

// Tracker records processed units and per-platform publish outcomes.
type Tracker interface {
	MarkProcessed(id, title, videoFile string) error
	RecordPublish(id, platform string, success bool, detail string) error
}

// Controller sequences synthesis, caption scheduling, header rendering and
// composition for one content unit at a time.
type Controller struct {
	cfg        *config.Config
	builder    func(types.Post) (types.TextUnit, error)
	rewriter   Rewriter
	synth      Synthesizer
	compositor Compositor
	tracker    Tracker
	publishers []upload.Publisher
}

// NewController wires the pipeline stages together.
func NewController(cfg *config.Config, builder func(types.Post) (types.TextUnit, error), rewriter Rewriter, synth Synthesizer, compositor Compositor, tracker Tracker, publishers []upload.Publisher) *Controller {
	return &Controller{
		cfg:        cfg,
		builder:    builder,
		rewriter:   rewriter,
		synth:      synth,
		compositor: compositor,
		tracker:    tracker,
		publishers: publishers,
	}
}

// ProcessUnit runs one post through the full pipeline. A failure at any
// stage moves the unit to Failed and is reported in the result; it never
// propagates to the rest of the batch.
func (c *Controller) ProcessUnit(ctx context.Context, post types.Post) types.UnitResult {
	m := NewMachine()
	result := types.UnitResult{PostID: post.ID, Title: post.Title}

	workDir := filepath.Join(c.cfg.Paths.Work, post.ID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return c.fail(m, result, "setup", err)
	}

	unit, err := c.builder(post)
	if err != nil {
		return c.fail(m, result, "script", err)
	}
	if c.rewriter != nil {
		unit = c.rewriter.Rewrite(ctx, unit)
	}

	narration, err := c.synth.Synthesize(ctx, unit, workDir)
	if err != nil {
		return c.fail(m, result, "synthesis", err)
	}
	_ = m.Advance(types.StateSynthesized)

	frames, err := captions.Schedule(narration.Timing, unit.Words, narration.Duration, types.FPS)
	if err != nil {
		return c.fail(m, result, "scheduling", err)
	}
	_ = m.Advance(types.StateScheduled)

	headerFile := filepath.Join(workDir, "header.png")
	card := types.HeaderCard{
		Subreddit: post.Subreddit,
		Author:    post.Author,
		Verified:  post.Verified,
		Score:     post.Score,
		Title:     post.Title,
	}
	if err := header.RenderToFile(card, headerFile); err != nil {
		return c.fail(m, result, "header", err)
	}
	_ = m.Advance(types.StateHeaderRendered)

	videoFile, err := c.compositor.Render(ctx, types.RenderSpec{
		UnitID:     post.ID,
		AudioFile:  narration.AudioFile,
		Duration:   narration.Duration,
		Captions:   frames,
		HeaderFile: headerFile,
	}, workDir)
	if err != nil {
		return c.fail(m, result, "composition", err)
	}
	_ = m.Advance(types.StateComposited)
	result.VideoFile = videoFile

	if c.tracker != nil {
		if err := c.tracker.MarkProcessed(post.ID, post.Title, videoFile); err != nil {
			log.Warn().Err(err).Str("post_id", post.ID).Msg("could not record processed post")
		}
	}

	c.publish(ctx, post, videoFile)

	_ = m.Advance(types.StateDone)
	result.State = m.State()

	// The work dir only held intermediates; the artifact already moved to
	// the delivery location.
	_ = os.RemoveAll(workDir)

	log.Info().Str("post_id", post.ID).Str("video", videoFile).Msg("unit complete")
	return result
}

// publish hands the artifact to every configured platform. Upload failures
// are recorded but do not fail the unit: the composed video exists and can
// be re-published later.
func (c *Controller) publish(ctx context.Context, post types.Post, videoFile string) {
	meta := upload.BuildMetadata(post, c.cfg.Upload.Tags)
	for _, p := range c.publishers {
		ref, err := p.Publish(ctx, videoFile, meta)
		if c.tracker != nil {
			detail := ref
			if err != nil {
				detail = err.Error()
			}
			if recErr := c.tracker.RecordPublish(post.ID, p.Name(), err == nil, detail); recErr != nil {
				log.Warn().Err(recErr).Str("platform", p.Name()).Msg("could not record publish status")
			}
		}
		if err != nil {
			log.Error().Err(err).Str("post_id", post.ID).Str("platform", p.Name()).Msg("publish failed")
		}
	}
}

func (c *Controller) fail(m *Machine, result types.UnitResult, stage string, err error) types.UnitResult {
	_ = m.Fail()
	result.State = m.State()
	result.Stage = stage
	result.Error = err.Error()
	log.Error().Err(err).Str("post_id", result.PostID).Str("stage", stage).Str("kind", errs.Kind(err)).Msg("unit failed")
	return result
}
