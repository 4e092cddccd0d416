package r2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/HaiFongPan/dirnav/internal/config"
)

// Client wraps the S3 client for R2 and other S3-compatible stores
type Client struct {
	s3Client *s3.Client
	config   *appconfig.S3Config
}

// NewClient creates a new client from configuration
func NewClient(ctx context.Context, cfg *appconfig.S3Config) (*Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.AccessKeySecret,
			"",
		)),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := Endpoint(cfg)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		// custom endpoints such as MinIO expect path-style addressing
		o.UsePathStyle = cfg.Endpoint != "" && cfg.Endpoint != "auto"
	})

	return &Client{
		s3Client: s3Client,
		config:   cfg,
	}, nil
}

// Endpoint returns the configured endpoint, or the R2 endpoint of the
// account when it is "auto".
func Endpoint(cfg *appconfig.S3Config) string {
	if cfg.Endpoint == "" || cfg.Endpoint == "auto" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}
	return cfg.Endpoint
}

// GetS3Client returns the underlying S3 client
func (c *Client) GetS3Client() *s3.Client {
	return c.s3Client
}

// GetBucketName returns the configured bucket name
func (c *Client) GetBucketName() string {
	return c.config.BucketName
}
