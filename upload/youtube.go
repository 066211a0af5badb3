package upload

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/Jacktheone617/reddit-story-video-generator/config"
)

// YouTubeUploader publishes finished videos as Shorts via the Data API v3.
type YouTubeUploader struct {
	cfg *config.Config
}

// NewYouTube creates a new YouTubeUploader
func NewYouTube(cfg *config.Config) *YouTubeUploader {
	return &YouTubeUploader{cfg: cfg}
}

func (u *YouTubeUploader) Name() string { return "youtube" }

// Publish uploads the video with its metadata and returns the watch URL.
func (u *YouTubeUploader) Publish(ctx context.Context, videoFile string, meta Metadata) (string, error) {
	client, err := u.getOAuthClient(ctx)
	if err != nil {
		return "", fmt.Errorf("youtube auth: %w", err)
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", fmt.Errorf("youtube service: %w", err)
	}

	log.Info().Str("stage", "upload").Str("platform", "youtube").Str("title", meta.Title).Msg("uploading video")

	video := &youtube.Video{
		Snippet: videoSnippet(meta, u.cfg.Upload.CategoryID),
		Status: &youtube.VideoStatus{
			PrivacyStatus:           u.cfg.Upload.Visibility,
			SelfDeclaredMadeForKids: u.cfg.Upload.MadeForKids,
		},
	}

	f, err := os.Open(videoFile)
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	call := svc.Videos.Insert([]string{"snippet", "status"}, video)
	call.NotifySubscribers(u.cfg.Upload.NotifySubscribers)
	call.Media(f)

	uploaded, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("youtube upload: %w", err)
	}

	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploaded.Id)
	log.Info().Str("stage", "upload").Str("platform", "youtube").Str("url", videoURL).Msg("upload complete")
	return videoURL, nil
}

// videoSnippet builds the upload snippet. The title stays within the API's
// 100-character limit; the #Shorts marker goes into the description, where
// the feed classifier also picks it up.
func videoSnippet(meta Metadata, categoryID string) *youtube.VideoSnippet {
	return &youtube.VideoSnippet{
		Title:       meta.Title,
		Description: fmt.Sprintf("%s\n\n#Shorts", meta.Description),
		Tags:        meta.Tags,
		CategoryId:  categoryID,
	}
}

// getOAuthClient creates an OAuth2 HTTP client using env credentials
func (u *YouTubeUploader) getOAuthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")

	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}

	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}

	return oauth2.NewClient(ctx, conf.TokenSource(ctx, token)), nil
}
