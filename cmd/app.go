package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/dirnav/internal/config"
	"github.com/HaiFongPan/dirnav/internal/listing"
	"github.com/HaiFongPan/dirnav/internal/navigation"
	"github.com/HaiFongPan/dirnav/internal/r2"
	"github.com/HaiFongPan/dirnav/internal/state"
)

func requestTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.General.DefaultTimeout) * time.Second
}

// newController restores the persisted navigation state. inv may be nil.
func newController(cfg *config.Config, inv navigation.Invalidator) *navigation.Controller {
	store := state.OpenFileStore(cfg.StatePath())
	return navigation.NewController(store, cfg.HomePath(), inv)
}

// logInvalidator is the invalidation target of one-shot commands, which
// have no listing to refresh.
var logInvalidator = navigation.InvalidatorFunc(func(path string) {
	logrus.Debugf("navigation: %s invalidated", path)
})

// newService builds the listing backend selected by source.type.
func newService(ctx context.Context, cfg *config.Config) (listing.Service, error) {
	switch cfg.Source.Type {
	case config.SourceLocal:
		return listing.NewLocalService(cfg.Source.Root, cfg.Source.ShowHidden), nil
	case config.SourceHTTP:
		return newHTTPService(cfg), nil
	case config.SourceS3:
		client, err := r2.NewClient(ctx, &cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		return listing.NewS3Service(client.GetS3Client(), client.GetBucketName(), cfg.Source.ShowHidden), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Source.Type)
	}
}

// newDriveLister returns the drive source for local and http sources.
func newDriveLister(cfg *config.Config) (listing.DriveLister, error) {
	switch cfg.Source.Type {
	case config.SourceLocal:
		return listing.NewLocalDrives(false), nil
	case config.SourceHTTP:
		return newHTTPService(cfg), nil
	default:
		return nil, fmt.Errorf("drives are not available for %s sources", cfg.Source.Type)
	}
}

func newHTTPService(cfg *config.Config) *listing.HTTPService {
	return listing.NewHTTPService(cfg.Source.BaseURL, listing.HTTPOptions{
		Timeout:    requestTimeout(cfg),
		MaxRetries: cfg.General.MaxRetries,
	})
}

// sourceTitle describes the source in the browser header.
func sourceTitle(cfg *config.Config) string {
	switch cfg.Source.Type {
	case config.SourceHTTP:
		return cfg.Source.BaseURL
	case config.SourceS3:
		return "s3://" + cfg.S3.BucketName
	default:
		if cfg.Source.Root == "" || cfg.Source.Root == "/" {
			return "local"
		}
		return "local:" + cfg.Source.Root
	}
}
