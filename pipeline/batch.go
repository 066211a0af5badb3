package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// BatchReport summarizes one batch run.
type BatchReport struct {
	RunID       string             `json:"run_id"`
	StartedAt   string             `json:"started_at"`
	CompletedAt string             `json:"completed_at"`
	Succeeded   int                `json:"succeeded"`
	Failed      int                `json:"failed"`
	Units       []types.UnitResult `json:"units"`
}

// RunBatch processes the posts strictly one at a time, with a cooling-off
// delay between units so downstream platforms never see a burst of
// uploads. A failed unit is skipped, never requeued within the run.
func (c *Controller) RunBatch(ctx context.Context, runID string, posts []types.Post) BatchReport {
	report := BatchReport{
		RunID:     runID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}

	cooldown := time.Duration(c.cfg.Upload.CooldownSec) * time.Second
	for i, post := range posts {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && cooldown > 0 {
			log.Info().Dur("cooldown", cooldown).Msg("cooling off before next unit")
			select {
			case <-ctx.Done():
			case <-time.After(cooldown):
			}
			if ctx.Err() != nil {
				break
			}
		}

		result := c.ProcessUnit(ctx, post)
		report.Units = append(report.Units, result)
		if result.State == types.StateDone {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	report.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	c.saveReport(report)
	return report
}

func (c *Controller) saveReport(report BatchReport) {
	path := filepath.Join(c.cfg.Paths.Output, "batch_"+report.RunID+".json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("could not marshal batch report")
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not save batch report")
	}
}
