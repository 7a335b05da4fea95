package source

import (
	"fmt"

	"github.com/newthinker/ichimoku-dashboard/internal/config"
)

// New creates a snapshot source based on configuration.
func New(cfg config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case config.SourceLocalFS:
		return NewLocalFS(cfg.Path), nil
	case config.SourceS3:
		src, err := NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 source: %w", err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown snapshot source type: %s", cfg.Type)
	}
}
