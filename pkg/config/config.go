// Package config loads tool configuration from a TOML file.
//
// Configuration is optional: every field has a working default, and flags
// override file values. The file is looked up at an explicit path, then at
// $POLYSKEL_CONFIG, then at ~/.config/polyskel/config.toml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/polyskel/pkg/errors"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "POLYSKEL_CONFIG"

// Cache backends.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config holds all tool configuration.
type Config struct {
	Skeleton SkeletonConfig `toml:"skeleton"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
}

// SkeletonConfig controls default computation options.
type SkeletonConfig struct {
	// Strategy is the default skeletonization strategy.
	Strategy string `toml:"strategy"`

	// Tolerance is the node merge tolerance. Zero keeps the built-in default.
	Tolerance float64 `toml:"tolerance"`

	// ClipEndpoints keeps Voronoi edges strictly interior.
	ClipEndpoints bool `toml:"clip_endpoints"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	Dir string `toml:"dir"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// StoreConfig configures skeleton persistence for the server.
type StoreConfig struct {
	// MongoURI enables the MongoDB store when set. Empty keeps documents
	// in memory.
	MongoURI string `toml:"mongo_uri"`

	// Database is the MongoDB database name.
	Database string `toml:"database"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// ShutdownTimeout bounds graceful shutdown, e.g. "10s".
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// duration lets TOML carry Go duration strings.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Skeleton: SkeletonConfig{
			Strategy:      "straight",
			ClipEndpoints: true,
		},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Dir:     defaultCacheDir(),
		},
		Store: StoreConfig{
			Database: "polyskel",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: duration{10 * time.Second},
		},
	}
}

// Load reads configuration from path. An empty path falls back to
// $POLYSKEL_CONFIG and then the per-user default location; a missing file at
// the fallback locations is not an error and yields the defaults. An
// explicitly given path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = defaultConfigPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (use file, redis, or none)", c.Cache.Backend)
	}
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "polyskel", "config.toml")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "polyskel-cache")
	}
	return filepath.Join(dir, "polyskel")
}
