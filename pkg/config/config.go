// Package config loads exprgraph settings from a TOML file.
//
// Lookup order, first match wins:
//
//  1. The path given with --config
//  2. exprgraph.toml in the working directory
//  3. exprgraph/config.toml under the user config directory
//     ($XDG_CONFIG_HOME or ~/.config on Linux)
//
// A missing file is not an error; [Default] values apply. Command line flags
// override whatever the file sets.
//
// Example:
//
//	log_level = "debug"
//
//	[cache]
//	enabled = true
//	backend = "redis"
//	ttl = "72h"
//	redis_addr = "localhost:6379"
//
//	[paths]
//	arcs = "input.txt"
//	operations = "operations.txt"
//	graph = "output.json"
//	output = "output.txt"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/exprgraph/pkg/errors"
)

// FileName is the per-project config file looked up in the working directory.
const FileName = "exprgraph.toml"

const appName = "exprgraph"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the full set of file-backed settings.
type Config struct {
	LogLevel string      `toml:"log_level"`
	Cache    CacheConfig `toml:"cache"`
	Paths    PathsConfig `toml:"paths"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Enabled       bool          `toml:"enabled"`
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	Prefix        string        `toml:"prefix"`
}

// PathsConfig holds the default file names of each stage.
type PathsConfig struct {
	Arcs       string `toml:"arcs"`
	Operations string `toml:"operations"`
	Graph      string `toml:"graph"`
	Output     string `toml:"output"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Enabled: true,
			Backend: BackendFile,
		},
		Paths: PathsConfig{
			Arcs:       "input.txt",
			Operations: "operations.txt",
			Graph:      "output.json",
			Output:     "output.txt",
		},
	}
}

// Load reads the config at path, or searches the default locations when path
// is empty. Keys the file leaves out keep their default values.
//
// Returns FILE_NOT_FOUND when an explicit path does not exist and
// INVALID_FORMAT for TOML syntax errors, unknown keys or invalid values.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = find()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := Parse(data, &cfg); err != nil {
		return Default(), errs.Wrap(errs.GetCode(err), err, "config %s", path)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes TOML data over cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks enumerated values and fills in derived defaults.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "invalid log_level %q (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	switch c.Cache.Backend {
	case BackendFile:
	case BackendRedis:
		if c.Cache.Enabled && c.Cache.RedisAddr == "" {
			return errs.New(errs.ErrCodeInvalidFormat, "cache backend redis requires redis_addr")
		}
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "invalid cache backend %q (must be one of: file, redis)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidFormat, "cache ttl must not be negative")
	}
	return nil
}

// CacheDir returns the configured cache directory or the XDG default
// (~/.cache/exprgraph/).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func find() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, appName, "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
