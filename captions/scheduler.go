package captions

import (
	"fmt"
	"math"

	"github.com/Jacktheone617/reddit-story-video-generator/errs"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// Schedule maps the narration timing onto discrete video frames. With
// boundary events present each word's frames follow the engine's offsets;
// without them the narration duration is split evenly across the words.
// The returned frames are contiguous, non-overlapping and cover exactly
// floor(duration*fps) frames.
func Schedule(timing types.Timing, words []string, duration float64, fps int) ([]types.CaptionFrame, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: narration duration %.3fs", errs.ErrInput, duration)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: frame rate %d", errs.ErrInput, fps)
	}

	totalFrames := int(math.Floor(duration * float64(fps)))
	if totalFrames <= 0 {
		return nil, fmt.Errorf("%w: narration too short for a single frame", errs.ErrInput)
	}

	var frames []types.CaptionFrame
	switch t := timing.(type) {
	case types.WithBoundaries:
		if len(t.Events) == 0 {
			frames = estimated(words, totalFrames)
		} else {
			frames = exact(t.Events, totalFrames, fps)
		}
	default:
		// AudioOnly or nil: the engine gave us no timing signal.
		frames = estimated(words, totalFrames)
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no words to schedule", errs.ErrInput)
	}
	if err := Validate(frames, totalFrames); err != nil {
		return nil, err
	}
	return frames, nil
}

// exact derives each word's frame range from its boundary event: the word
// holds the screen from its own start offset until the next word begins,
// and the final word runs to the end of the narration.
func exact(events []types.WordBoundaryEvent, totalFrames, fps int) []types.CaptionFrame {
	// Start offsets snap to the nearest frame boundary. Flooring would pull
	// every word onto the frame before its audible onset whenever the
	// offset falls mid-frame, drifting captions ahead of the voice.
	firsts := make([]int, len(events))
	for i, ev := range events {
		firsts[i] = int(math.Round(ev.Start * float64(fps)))
	}

	// The first word is pulled back to frame 0 so the track covers the
	// narration from its very first frame even when speech starts late.
	firsts[0] = 0

	for i := 1; i < len(firsts); i++ {
		// Malformed input: identical or decreasing start offsets. Keep the
		// word order and let the later word borrow frames from its
		// successor instead of going negative.
		if firsts[i] < firsts[i-1] {
			firsts[i] = firsts[i-1]
		}
		if firsts[i] > totalFrames {
			firsts[i] = totalFrames
		}
	}

	frames := make([]types.CaptionFrame, len(events))
	for i, ev := range events {
		last := totalFrames - 1
		if i < len(events)-1 {
			last = firsts[i+1] - 1
		}
		frames[i] = types.CaptionFrame{
			Word:       ev.Word,
			FirstFrame: firsts[i],
			LastFrame:  last,
		}
	}
	return frames
}

// estimated splits totalFrames evenly across the words. The remainder goes
// to the first words so the final caption never lingers visibly longer.
func estimated(words []string, totalFrames int) []types.CaptionFrame {
	if len(words) == 0 {
		return nil
	}

	base := totalFrames / len(words)
	rem := totalFrames % len(words)

	frames := make([]types.CaptionFrame, len(words))
	next := 0
	for i, w := range words {
		span := base
		if i < rem {
			span++
		}
		frames[i] = types.CaptionFrame{
			Word:       w,
			FirstFrame: next,
			LastFrame:  next + span - 1,
		}
		next += span
	}
	return frames
}

// Validate asserts the caption track invariant: ranges are contiguous,
// never overlap, and together cover frames [0, totalFrames-1]. A violation
// is a defect in the scheduler, not a runtime condition.
func Validate(frames []types.CaptionFrame, totalFrames int) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: empty caption track", errs.ErrInvariant)
	}
	if frames[0].FirstFrame != 0 {
		return fmt.Errorf("%w: track starts at frame %d", errs.ErrInvariant, frames[0].FirstFrame)
	}
	for i, f := range frames {
		// A zero-length span (last == first-1) is legal for words that
		// borrowed all their frames away; anything shorter is not.
		if f.LastFrame < f.FirstFrame-1 {
			return fmt.Errorf("%w: word %q has negative span [%d,%d]", errs.ErrInvariant, f.Word, f.FirstFrame, f.LastFrame)
		}
		if i > 0 && f.FirstFrame != frames[i-1].LastFrame+1 {
			return fmt.Errorf("%w: gap or overlap between %q and %q", errs.ErrInvariant, frames[i-1].Word, f.Word)
		}
	}
	if last := frames[len(frames)-1].LastFrame; last != totalFrames-1 {
		return fmt.Errorf("%w: track ends at frame %d, want %d", errs.ErrInvariant, last, totalFrames-1)
	}
	return nil
}
