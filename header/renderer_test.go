package header

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

func TestGlyphCountMonotonic(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{-50, 1},
		{0, 1},
		{99, 1},
		{100, 2},
		{499, 2},
		{500, 3},
		{1999, 3},
		{2000, 4},
		{9999, 4},
		{10000, 5},
		{250000, 5},
	}
	for _, tc := range tests {
		if got := GlyphCount(tc.score); got != tc.want {
			t.Errorf("GlyphCount(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}

	prev := GlyphCount(-1)
	for score := 0; score <= 20000; score += 50 {
		cur := GlyphCount(score)
		if cur < prev {
			t.Fatalf("glyph count dropped from %d to %d at score %d", prev, cur, score)
		}
		prev = cur
	}
}

func TestRenderDeterministic(t *testing.T) {
	card := types.HeaderCard{
		Subreddit: "r/AskReddit",
		Author:    "u/throwaway_9921",
		Title:     "What is the strangest thing you have found in a house you moved into?",
		Score:     4200,
		Verified:  true,
	}

	encode := func() []byte {
		img, err := Render(card)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("png encode failed: %v", err)
		}
		return buf.Bytes()
	}

	if !bytes.Equal(encode(), encode()) {
		t.Error("identical cards rendered different images")
	}
}

func TestRenderDimensions(t *testing.T) {
	short := types.HeaderCard{Subreddit: "r/tifu", Author: "u/someone", Title: "TIFU", Score: 10}
	long := types.HeaderCard{
		Subreddit: "r/tifu",
		Author:    "u/someone",
		Title:     "TIFU by writing an extremely long title that has to wrap across several lines of the header card before anyone can read the whole thing",
		Score:     10,
	}

	shortImg, err := Render(short)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	longImg, err := Render(long)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if w := shortImg.Bounds().Dx(); w != types.VideoWidth {
		t.Errorf("card width %d, want %d", w, types.VideoWidth)
	}
	if shortImg.Bounds().Dy() >= longImg.Bounds().Dy() {
		t.Errorf("wrapped title did not grow the card: short %d, long %d",
			shortImg.Bounds().Dy(), longImg.Bounds().Dy())
	}
	if longImg.Bounds().Dy() > types.VideoHeight/2 {
		t.Errorf("card taller than the top half of the frame: %d", longImg.Bounds().Dy())
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.png")
	card := types.HeaderCard{Subreddit: "r/AskReddit", Author: "u/poster", Title: "A title", Score: 600}

	if err := RenderToFile(card, path); err != nil {
		t.Fatalf("RenderToFile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a valid png: %v", err)
	}
}

func TestTruncateTitle(t *testing.T) {
	long := make([]rune, 150)
	for i := range long {
		long[i] = 'a'
	}
	got := truncateTitle(string(long), 100)
	if len([]rune(got)) != 103 {
		t.Errorf("truncated length %d, want 103", len([]rune(got)))
	}
	if truncateTitle("short", 100) != "short" {
		t.Errorf("short title modified")
	}
}
