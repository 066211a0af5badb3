package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// Metadata is the minimal per-video upload metadata the core hands to
// every platform uploader.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
}

// Publisher uploads one finished video to a single platform.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, videoFile string, meta Metadata) (string, error)
}

// BuildMetadata derives upload metadata from the source post.
func BuildMetadata(post types.Post, extraTags []string) Metadata {
	tags := append([]string{"Reddit", "RedditStories", "AskReddit"}, extraTags...)
	return Metadata{
		Title:       truncate(post.Title, 100),
		Description: Caption(post.Title, tags, 2200),
		Tags:        tags,
	}
}

// Caption builds "title #tag1 #tag2 ..." capped at limit characters.
func Caption(title string, tags []string, limit int) string {
	hashtags := make([]string, 0, len(tags))
	for _, t := range tags {
		hashtags = append(hashtags, "#"+strings.ReplaceAll(t, " ", ""))
	}
	caption := fmt.Sprintf("%s %s", title, strings.Join(hashtags, " "))
	return truncate(caption, limit)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
