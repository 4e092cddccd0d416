package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/HaiFongPan/dirnav/internal/pathutil"
)

// Source types
const (
	SourceLocal = "local"
	SourceHTTP  = "http"
	SourceS3    = "s3"
)

// Config holds the complete application configuration
type Config struct {
	Source     SourceConfig     `mapstructure:"source"`
	S3         S3Config         `mapstructure:"s3"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	General    GeneralConfig    `mapstructure:"general"`
}

// SourceConfig selects where directory listings come from
type SourceConfig struct {
	Type       string `mapstructure:"type"`
	Root       string `mapstructure:"root"`
	BaseURL    string `mapstructure:"base_url"`
	ShowHidden bool   `mapstructure:"show_hidden"`
}

// S3Config holds S3/R2 specific configuration
type S3Config struct {
	AccountID       string `mapstructure:"account_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
}

// NavigationConfig holds navigator settings
type NavigationConfig struct {
	Home      string `mapstructure:"home"`
	Username  string `mapstructure:"username"`
	StateFile string `mapstructure:"state_file"`
}

// ServerConfig holds settings for the listing API server
type ServerConfig struct {
	Addr          string `mapstructure:"addr"`
	ThumbnailSize int    `mapstructure:"thumbnail_size"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GeneralConfig holds general application configuration
type GeneralConfig struct {
	DefaultTimeout int `mapstructure:"default_timeout"`
	MaxRetries     int `mapstructure:"max_retries"`
}

// Load loads configuration from multiple sources with priority:
// 1. Command line flags (highest)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("DIRNAV")
	v.AutomaticEnv()

	v.BindEnv("source.type", "DIRNAV_SOURCE")
	v.BindEnv("source.root", "DIRNAV_SOURCE_ROOT")
	v.BindEnv("source.base_url", "DIRNAV_BASE_URL")
	v.BindEnv("source.show_hidden", "DIRNAV_SHOW_HIDDEN")
	v.BindEnv("s3.account_id", "DIRNAV_S3_ACCOUNT_ID")
	v.BindEnv("s3.access_key_id", "DIRNAV_S3_ACCESS_KEY_ID")
	v.BindEnv("s3.access_key_secret", "DIRNAV_S3_ACCESS_KEY_SECRET")
	v.BindEnv("s3.bucket_name", "DIRNAV_S3_BUCKET_NAME")
	v.BindEnv("s3.endpoint", "DIRNAV_S3_ENDPOINT")
	v.BindEnv("s3.region", "DIRNAV_S3_REGION")
	v.BindEnv("navigation.home", "DIRNAV_HOME")
	v.BindEnv("navigation.username", "DIRNAV_USERNAME")
	v.BindEnv("navigation.state_file", "DIRNAV_STATE_FILE")
	v.BindEnv("server.addr", "DIRNAV_SERVER_ADDR")
	v.BindEnv("log.level", "DIRNAV_LOG_LEVEL")
	v.BindEnv("log.format", "DIRNAV_LOG_FORMAT")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.dirnav")
		v.AddConfigPath("/etc/dirnav/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is not an error - we can use defaults and env vars
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.type", SourceLocal)
	v.SetDefault("source.root", "/")
	v.SetDefault("source.base_url", "http://localhost:8080")
	v.SetDefault("source.show_hidden", false)

	v.SetDefault("s3.endpoint", "auto")
	v.SetDefault("s3.region", "auto")

	v.SetDefault("navigation.home", "")
	v.SetDefault("navigation.username", "")
	v.SetDefault("navigation.state_file", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.thumbnail_size", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("general.default_timeout", 30)
	v.SetDefault("general.max_retries", 3)
}

// HomePath returns the navigator's home. An explicit navigation.home wins,
// then /Users/<username>, then the OS home directory for local sources, and
// finally the root.
func (c *Config) HomePath() string {
	if c.Navigation.Home != "" {
		return pathutil.Normalize(c.Navigation.Home)
	}
	if c.Navigation.Username != "" {
		return pathutil.Join("/Users", c.Navigation.Username)
	}
	if c.Source.Type == SourceLocal {
		if home, err := os.UserHomeDir(); err == nil && c.Source.Root == "/" {
			return pathutil.Normalize(filepath.ToSlash(home))
		}
	}
	return pathutil.Root
}

// StatePath returns the file the navigation state is persisted to.
func (c *Config) StatePath() string {
	if c.Navigation.StateFile != "" {
		return c.Navigation.StateFile
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dirnav", "state.json")
	}
	return filepath.Join(homeDir, ".dirnav", "state.json")
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.toml"
	}
	return filepath.Join(homeDir, ".dirnav", "config.toml")
}
