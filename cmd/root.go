package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/dirnav/internal/config"
	"github.com/HaiFongPan/dirnav/internal/contents"
	"github.com/HaiFongPan/dirnav/internal/events"
	"github.com/HaiFongPan/dirnav/internal/tui"
)

var (
	cfgFile      string
	verbose      bool
	quiet        bool
	homeFlag     string
	sourceFlag   string
	globalConfig *config.Config
)

// logDir receives the log file; the TUI owns the terminal.
var logDir = filepath.Join(os.TempDir(), "dirnav")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dirnav",
	Short: "Browse directory trees with persistent back/forward history",
	Long: `dirnav is a directory navigator for local disks, dirnav listing servers and
S3/R2 buckets. It remembers where you were between runs and keeps a
browser-style back/forward history.

Example usage:
  dirnav                       # Interactive browser
  dirnav cd projects           # Move relative to the current directory
  dirnav back                  # Step back in history
  dirnav ls /var/log --size    # List a directory without moving
  dirnav serve --addr :8080    # Serve the local tree over HTTP`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.dirnav/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "home directory (overrides navigation.home)")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "listing source: local, http or s3 (overrides source.type)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if homeFlag != "" {
		cfg.Navigation.Home = homeFlag
	}
	if sourceFlag != "" {
		cfg.Source.Type = sourceFlag
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	globalConfig = cfg

	setupLogging()
	return nil
}

// setupLogging configures the global logger based on config and flags
func setupLogging() {
	level := globalConfig.Log.Level
	if verbose {
		level = "debug"
	} else if quiet {
		level = "error"
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %s, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		logrus.Warnf("Failed to create log directory %s: %v", logDir, err)
	} else {
		logFile := filepath.Join(logDir, "app.log")
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logrus.Warnf("Failed to open log file %s: %v", logFile, err)
		} else {
			logrus.SetOutput(file)
		}
	}

	if globalConfig.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: quiet,
			FullTimestamp:    verbose,
		})
	}
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return globalConfig
}

// runBrowser launches the interactive browser. The controller invalidates
// through the bus and the browser reloads from its subscription.
func runBrowser(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig()

	service, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	bus := events.NewBus(0)
	defer bus.Close()
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)

	nav := newController(cfg, bus)
	loader := contents.NewLoader(service, requestTimeout(cfg))
	model := tui.NewBrowserModel(ctx, nav, loader, sub, sourceTitle(cfg))

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()

	fetches, shared := loader.Stats()
	logrus.WithFields(logrus.Fields{
		"fetches":        fetches,
		"shared":         shared,
		"dropped_events": bus.Dropped(),
	}).Debug("browser: session finished")
	return err
}
