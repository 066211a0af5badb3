package upload

import (
	"strings"
	"testing"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

func TestBuildMetadata(t *testing.T) {
	post := types.Post{
		ID:        "t3_abc",
		Title:     "AITA for leaving the wedding early?",
		Subreddit: "AmItheAsshole",
	}

	meta := BuildMetadata(post, []string{"storytime"})

	if meta.Title != post.Title {
		t.Errorf("title = %q, want %q", meta.Title, post.Title)
	}
	if !strings.Contains(meta.Description, "#Reddit") || !strings.Contains(meta.Description, "#storytime") {
		t.Errorf("description missing hashtags: %q", meta.Description)
	}
	if len(meta.Tags) != 4 {
		t.Errorf("tags = %v, want defaults plus extra", meta.Tags)
	}
}

func TestBuildMetadataTruncatesTitle(t *testing.T) {
	post := types.Post{Title: strings.Repeat("a", 150)}

	meta := BuildMetadata(post, nil)
	if len([]rune(meta.Title)) != 100 {
		t.Errorf("title length %d, want 100", len([]rune(meta.Title)))
	}
}

func TestCaption(t *testing.T) {
	got := Caption("the story", []string{"Reddit", "Ask Reddit"}, 2200)
	want := "the story #Reddit #AskReddit"
	if got != want {
		t.Errorf("Caption = %q, want %q", got, want)
	}
}

func TestCaptionRespectsLimit(t *testing.T) {
	got := Caption(strings.Repeat("x", 3000), []string{"Reddit"}, 2200)
	if len([]rune(got)) != 2200 {
		t.Errorf("caption length %d, want 2200", len([]rune(got)))
	}
}
