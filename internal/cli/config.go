package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vedanga/jyotish/pkg/integrations/ephapi"
	"github.com/vedanga/jyotish/pkg/pipeline"
)

// =============================================================================
// Config - User Configuration File
// =============================================================================

// Config is the user configuration loaded from ~/.config/jyotish/config.toml.
// Every field has a sensible default, so a missing file is not an error.
type Config struct {
	Location  LocationConfig  `toml:"location"`
	Ephemeris EphemerisConfig `toml:"ephemeris"`
	Cache     CacheConfig     `toml:"cache"`
	Dasha     DashaConfig     `toml:"dasha"`
}

// LocationConfig holds the default observer location used when a command
// carries no coordinates.
type LocationConfig struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Offset    float64 `toml:"offset"` // UTC offset in hours
}

// EphemerisConfig configures the external ephemeris service.
type EphemerisConfig struct {
	Endpoint string `toml:"endpoint"`
}

// CacheConfig selects the ephemeris cache backend.
//
// Backend is one of "file" (default), "redis", "mongo", or "none".
type CacheConfig struct {
	Backend         string `toml:"backend"`
	TTLDays         int    `toml:"ttl_days"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// TTL converts the configured day count to a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}

// DashaConfig holds dasha computation defaults.
type DashaConfig struct {
	Depth int `toml:"depth"` // nesting depth, 1..4
}

// defaultConfig returns a Config with all defaults applied.
func defaultConfig() *Config {
	return &Config{
		Location: LocationConfig{
			Latitude:  pipeline.DefaultLatitude,
			Longitude: pipeline.DefaultLongitude,
			Offset:    pipeline.DefaultOffset,
		},
		Ephemeris: EphemerisConfig{Endpoint: ephapi.DefaultBaseURL},
		Cache: CacheConfig{
			Backend:         "file",
			TTLDays:         30,
			RedisURL:        "redis://localhost:6379/0",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   appName,
			MongoCollection: "ephemeris",
		},
		Dasha: DashaConfig{Depth: pipeline.DefaultDepth},
	}
}

// loadConfig reads the config file, layering it over the defaults.
// A missing file yields the defaults; a malformed file is an error.
func loadConfig() (*Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath returns the full path of the config file.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
