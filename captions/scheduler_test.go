package captions

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Jacktheone617/reddit-story-video-generator/errs"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

func TestScheduleEstimatedEvenSplit(t *testing.T) {
	words := []string{"one", "two", "three", "four", "five", "six"}

	frames, err := Schedule(types.AudioOnly{}, words, 3.0, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(frames) != 6 {
		t.Fatalf("expected 6 caption frames, got %d", len(frames))
	}

	for i, f := range frames {
		wantFirst := i * 12
		wantLast := wantFirst + 11
		if f.FirstFrame != wantFirst || f.LastFrame != wantLast {
			t.Errorf("word %d: got [%d,%d], want [%d,%d]", i, f.FirstFrame, f.LastFrame, wantFirst, wantLast)
		}
	}
}

func TestScheduleEstimatedRemainderToFirstWords(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e"}

	// 2.4s at 24fps is 57 frames: 57/5 = 11 rem 2, so the first two
	// words get 12 frames and the rest 11.
	frames, err := Schedule(types.AudioOnly{}, words, 2.4, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	want := []types.CaptionFrame{
		{Word: "a", FirstFrame: 0, LastFrame: 11},
		{Word: "b", FirstFrame: 12, LastFrame: 23},
		{Word: "c", FirstFrame: 24, LastFrame: 34},
		{Word: "d", FirstFrame: 35, LastFrame: 45},
		{Word: "e", FirstFrame: 46, LastFrame: 56},
	}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("got %+v, want %+v", frames, want)
	}
}

func TestScheduleExactBoundaries(t *testing.T) {
	events := []types.WordBoundaryEvent{
		{Word: "Am", Start: 0.0, Duration: 0.4},
		{Word: "I", Start: 0.4, Duration: 0.3},
	}

	frames, err := Schedule(types.WithBoundaries{Events: events}, []string{"Am", "I"}, 3.0, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	want := []types.CaptionFrame{
		{Word: "Am", FirstFrame: 0, LastFrame: 9},
		{Word: "I", FirstFrame: 10, LastFrame: 71},
	}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("got %+v, want %+v", frames, want)
	}
}

func TestScheduleExactLateFirstWord(t *testing.T) {
	// Speech starting late must not leave uncovered frames at the head
	// of the narration.
	events := []types.WordBoundaryEvent{
		{Word: "well", Start: 0.25, Duration: 0.3},
		{Word: "then", Start: 0.55, Duration: 0.3},
	}

	frames, err := Schedule(types.WithBoundaries{Events: events}, nil, 1.0, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if frames[0].FirstFrame != 0 {
		t.Errorf("first word starts at frame %d, want 0", frames[0].FirstFrame)
	}
	if frames[len(frames)-1].LastFrame != 23 {
		t.Errorf("track ends at frame %d, want 23", frames[len(frames)-1].LastFrame)
	}
}

func TestScheduleExactDuplicateStarts(t *testing.T) {
	// Two words reported at the same offset: the later word yields a
	// zero-length span rather than reordering or overlapping.
	events := []types.WordBoundaryEvent{
		{Word: "a", Start: 0.0, Duration: 0.5},
		{Word: "b", Start: 0.5, Duration: 0.0},
		{Word: "c", Start: 0.5, Duration: 0.5},
	}

	frames, err := Schedule(types.WithBoundaries{Events: events}, nil, 1.0, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	want := []types.CaptionFrame{
		{Word: "a", FirstFrame: 0, LastFrame: 11},
		{Word: "b", FirstFrame: 12, LastFrame: 11},
		{Word: "c", FirstFrame: 12, LastFrame: 23},
	}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("got %+v, want %+v", frames, want)
	}
}

func TestScheduleSingleWord(t *testing.T) {
	frames, err := Schedule(types.AudioOnly{}, []string{"hello"}, 2.0, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected 1 caption frame, got %d", len(frames))
	}
	if frames[0].FirstFrame != 0 || frames[0].LastFrame != 47 {
		t.Errorf("got [%d,%d], want [0,47]", frames[0].FirstFrame, frames[0].LastFrame)
	}
}

func TestScheduleRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		duration float64
		fps      int
	}{
		{"zero duration", []string{"a"}, 0, 24},
		{"negative duration", []string{"a"}, -1.5, 24},
		{"zero fps", []string{"a"}, 3.0, 0},
		{"sub-frame duration", []string{"a"}, 0.01, 24},
		{"no words", nil, 3.0, 24},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Schedule(types.AudioOnly{}, tc.words, tc.duration, tc.fps)
			if !errors.Is(err, errs.ErrInput) {
				t.Errorf("expected input error, got %v", err)
			}
		})
	}
}

func TestScheduleDeterministic(t *testing.T) {
	events := []types.WordBoundaryEvent{
		{Word: "the", Start: 0.1, Duration: 0.2},
		{Word: "quick", Start: 0.3, Duration: 0.3},
		{Word: "fox", Start: 0.62, Duration: 0.4},
	}

	first, err := Schedule(types.WithBoundaries{Events: events}, nil, 2.0, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	second, err := Schedule(types.WithBoundaries{Events: events}, nil, 2.0, 24)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different tracks:\n%+v\n%+v", first, second)
	}
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name        string
		frames      []types.CaptionFrame
		totalFrames int
	}{
		{
			"empty track",
			nil,
			24,
		},
		{
			"does not start at zero",
			[]types.CaptionFrame{{Word: "a", FirstFrame: 1, LastFrame: 23}},
			24,
		},
		{
			"gap between words",
			[]types.CaptionFrame{
				{Word: "a", FirstFrame: 0, LastFrame: 10},
				{Word: "b", FirstFrame: 12, LastFrame: 23},
			},
			24,
		},
		{
			"overlapping words",
			[]types.CaptionFrame{
				{Word: "a", FirstFrame: 0, LastFrame: 12},
				{Word: "b", FirstFrame: 12, LastFrame: 23},
			},
			24,
		},
		{
			"ends short",
			[]types.CaptionFrame{{Word: "a", FirstFrame: 0, LastFrame: 20}},
			24,
		},
		{
			"negative span",
			[]types.CaptionFrame{{Word: "a", FirstFrame: 5, LastFrame: 2}},
			24,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.frames, tc.totalFrames)
			if !errors.Is(err, errs.ErrInvariant) {
				t.Errorf("expected invariant error, got %v", err)
			}
		})
	}
}

func TestValidateAcceptsZeroLengthSpan(t *testing.T) {
	frames := []types.CaptionFrame{
		{Word: "a", FirstFrame: 0, LastFrame: 11},
		{Word: "b", FirstFrame: 12, LastFrame: 11},
		{Word: "c", FirstFrame: 12, LastFrame: 23},
	}
	if err := Validate(frames, 24); err != nil {
		t.Errorf("zero-length span rejected: %v", err)
	}
}
