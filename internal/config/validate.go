package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate validates the configuration and returns an error if invalid
func Validate(config *Config) error {
	if err := validateSourceConfig(&config.Source); err != nil {
		return fmt.Errorf("source config validation failed: %w", err)
	}

	if strings.ToLower(config.Source.Type) == SourceS3 {
		if err := validateS3Config(&config.S3); err != nil {
			return fmt.Errorf("s3 config validation failed: %w", err)
		}
	}

	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	if err := validateGeneralConfig(&config.General); err != nil {
		return fmt.Errorf("general config validation failed: %w", err)
	}

	return nil
}

// validateSourceConfig validates the listing source
func validateSourceConfig(config *SourceConfig) error {
	config.Type = strings.ToLower(strings.TrimSpace(config.Type))

	switch config.Type {
	case SourceLocal:
		if strings.TrimSpace(config.Root) == "" {
			return fmt.Errorf("root is required for local sources")
		}
	case SourceHTTP:
		u, err := url.Parse(config.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base_url: %q", config.BaseURL)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("base_url must use http or https, got: %s", u.Scheme)
		}
	case SourceS3:
	default:
		return fmt.Errorf("invalid source type: %s (valid: local, http, s3)", config.Type)
	}

	return nil
}

// validateS3Config validates S3/R2 specific configuration
func validateS3Config(config *S3Config) error {
	if strings.TrimSpace(config.AccessKeyID) == "" {
		return fmt.Errorf("access_key_id is required")
	}

	if strings.TrimSpace(config.AccessKeySecret) == "" {
		return fmt.Errorf("access_key_secret is required")
	}

	if strings.TrimSpace(config.BucketName) == "" {
		return fmt.Errorf("bucket_name is required")
	}

	if (config.Endpoint == "" || config.Endpoint == "auto") && strings.TrimSpace(config.AccountID) == "" {
		return fmt.Errorf("account_id is required when endpoint is auto")
	}

	if !isValidBucketName(config.BucketName) {
		return fmt.Errorf("invalid bucket_name format: %s", config.BucketName)
	}

	return nil
}

// validateServerConfig validates the listing API server configuration
func validateServerConfig(config *ServerConfig) error {
	if strings.TrimSpace(config.Addr) == "" {
		return fmt.Errorf("addr is required")
	}

	if config.ThumbnailSize <= 0 || config.ThumbnailSize > 1024 {
		return fmt.Errorf("thumbnail_size must be between 1 and 1024, got: %d", config.ThumbnailSize)
	}

	return nil
}

// validateLogConfig validates log configuration
func validateLogConfig(config *LogConfig) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	level := strings.ToLower(config.Level)
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error, fatal, panic)", config.Level)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}

	format := strings.ToLower(config.Format)
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", config.Format)
	}

	return nil
}

// validateGeneralConfig validates general configuration
func validateGeneralConfig(config *GeneralConfig) error {
	if config.DefaultTimeout <= 0 {
		return fmt.Errorf("default_timeout must be positive, got: %d", config.DefaultTimeout)
	}

	if config.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative, got: %d", config.MaxRetries)
	}

	return nil
}

// isValidBucketName checks if the bucket name follows basic S3 naming rules
func isValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}

	// Must start and end with letter or number
	if !isAlphaNum(name[0]) || !isAlphaNum(name[len(name)-1]) {
		return false
	}

	for i, char := range name {
		if !isAlphaNum(byte(char)) && char != '-' && char != '.' {
			return false
		}

		// Cannot have consecutive periods or period-dash combinations
		if i > 0 {
			prev := name[i-1]
			if char == '.' && (prev == '.' || prev == '-') {
				return false
			}
			if char == '-' && prev == '.' {
				return false
			}
		}
	}

	return true
}

// isAlphaNum checks if a byte is alphanumeric
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
