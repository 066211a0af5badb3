package captions

import (
	"strings"
	"testing"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

func TestAssTime(t *testing.T) {
	tests := []struct {
		frame int
		fps   int
		want  string
	}{
		{0, 24, "0:00:00.00"},
		{10, 24, "0:00:00.42"},
		{24, 24, "0:00:01.00"},
		{72, 24, "0:00:03.00"},
		{24 * 3600, 24, "1:00:00.00"},
	}
	for _, tc := range tests {
		if got := assTime(tc.frame, tc.fps); got != tc.want {
			t.Errorf("assTime(%d, %d) = %q, want %q", tc.frame, tc.fps, got, tc.want)
		}
	}
}

func TestWriteASSEvents(t *testing.T) {
	frames := []types.CaptionFrame{
		{Word: "Am", FirstFrame: 0, LastFrame: 9},
		{Word: "I", FirstFrame: 10, LastFrame: 71},
	}

	doc := WriteASS(frames, 24, TrackStyle{})

	if !strings.Contains(doc, "PlayResX: 720") || !strings.Contains(doc, "PlayResY: 1280") {
		t.Errorf("document missing play resolution:\n%s", doc)
	}
	if !strings.Contains(doc, "Dialogue: 0,0:00:00.00,0:00:00.42,Word,,0,0,0,,Am") {
		t.Errorf("missing first dialogue event:\n%s", doc)
	}
	if !strings.Contains(doc, "Dialogue: 0,0:00:00.42,0:00:03.00,Word,,0,0,0,,I") {
		t.Errorf("missing second dialogue event:\n%s", doc)
	}
}

func TestWriteASSSkipsZeroLengthSpans(t *testing.T) {
	frames := []types.CaptionFrame{
		{Word: "a", FirstFrame: 0, LastFrame: 11},
		{Word: "b", FirstFrame: 12, LastFrame: 11},
		{Word: "c", FirstFrame: 12, LastFrame: 23},
	}

	doc := WriteASS(frames, 24, TrackStyle{})

	if got := strings.Count(doc, "Dialogue:"); got != 2 {
		t.Errorf("expected 2 dialogue events, got %d:\n%s", got, doc)
	}
	if strings.Contains(doc, ",b\n") {
		t.Errorf("zero-length word rendered:\n%s", doc)
	}
}

func TestWriteASSEscapesOverrideBraces(t *testing.T) {
	frames := []types.CaptionFrame{
		{Word: "{\\b1}bold", FirstFrame: 0, LastFrame: 23},
	}

	doc := WriteASS(frames, 24, TrackStyle{})

	if strings.Contains(doc, "{\\b1}") {
		t.Errorf("override tag survived escaping:\n%s", doc)
	}
	if !strings.Contains(doc, "(\\\\b1)bold") {
		t.Errorf("expected neutralized braces:\n%s", doc)
	}
}
