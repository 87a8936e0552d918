package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/mnemosyne/pkg/service/media"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the media blob backend
type Storage struct {
	bucket string
}

// Flags returns CLI flags for media storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "media-bucket",
			Usage:       "Cloud Storage bucket for capture media (upload endpoint disabled when empty)",
			Sources:     cli.EnvVars("MNEMOSYNE_MEDIA_BUCKET"),
			Destination: &s.bucket,
		},
	}
}

// Bucket returns the configured bucket name
func (s *Storage) Bucket() string {
	return s.bucket
}

// Configure creates the media client. Returns nil when no bucket is
// configured; the HTTP layer then answers 501 on uploads.
func (s *Storage) Configure(ctx context.Context) (*media.Client, error) {
	if s.bucket == "" {
		return nil, nil
	}

	client, err := media.New(ctx, s.bucket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create media client")
	}

	return client, nil
}
