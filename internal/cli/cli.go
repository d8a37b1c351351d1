// Package cli implements the jyotish command-line interface.
//
// This package provides commands for computing birth charts, dasha period
// trees, and daily panchang almanacs, plus a small HTTP server exposing the
// same pipeline. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - chart: Compute placements and karaka rankings for a birth moment
//   - dasha: Compute Vimshottari or Chara period trees
//   - panchang: Compute the five limbs of the almanac for a day
//   - serve: Run the HTTP API
//   - cache: Manage the ephemeris lookup cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/vedanga/jyotish/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vedanga/jyotish/pkg/buildinfo"
	"github.com/vedanga/jyotish/pkg/cache"
	"github.com/vedanga/jyotish/pkg/integrations/ephapi"
	"github.com/vedanga/jyotish/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "jyotish"

// Execute runs the jyotish CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Jyotish computes sidereal charts, dashas, and panchang",
		Long:         `Jyotish is a CLI for Vedic astrology computation: sidereal placements with nakshatra and house decomposition, Vimshottari and Chara dasha period trees, karaka rankings, and the five-limbed daily panchang.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newChartCmd())
	root.AddCommand(newDashaCmd())
	root.AddCommand(newPanchangCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner builds a pipeline runner from the user's config. The ephemeris
// client caches raw HTTP responses in the configured backend; the lookup
// layer above it is left uncached since the responses already are.
func newRunner(ctx context.Context, cfg *Config, noCache bool) (*pipeline.Runner, error) {
	logger := loggerFromContext(ctx)

	backend, err := newBackend(ctx, cfg, noCache)
	if err != nil {
		logger.Warnf("Cache unavailable, running without: %v", err)
		backend = cache.NewNullCache()
	}

	src := ephapi.NewClient(cfg.Ephemeris.Endpoint, backend, cfg.Cache.TTL())
	return pipeline.NewRunner(src, nil, nil, logger), nil
}

// newBackend constructs the cache backend named in cfg.
func newBackend(ctx context.Context, cfg *Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	case "mongo":
		return cache.NewMongoCache(ctx, cfg.Cache.MongoURI, cfg.Cache.MongoDatabase, cfg.Cache.MongoCollection)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/jyotish/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/jyotish/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
