package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/config"
)

// S3Archiver copies finished artifacts to an S3 bucket for long-term
// storage alongside the platform uploads.
type S3Archiver struct {
	cfg   *config.Config
	s3Svc *s3.S3
}

// NewS3 creates a new S3Archiver
func NewS3(cfg *config.Config) (*S3Archiver, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.Upload.S3Region)})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return &S3Archiver{cfg: cfg, s3Svc: s3.New(sess)}, nil
}

func (a *S3Archiver) Name() string { return "s3" }

// Publish uploads the video file under videos/<basename> and returns the
// object key.
func (a *S3Archiver) Publish(ctx context.Context, videoFile string, meta Metadata) (string, error) {
	file, err := os.Open(videoFile)
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("videos/%s", filepath.Base(videoFile))
	_, err = a.s3Svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.cfg.Upload.S3Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}

	log.Info().Str("stage", "upload").Str("platform", "s3").Str("key", key).Msg("artifact archived")
	return key, nil
}
