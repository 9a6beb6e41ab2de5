// Package config loads balancecoach settings from a TOML file and the
// environment.
//
// Lookup order, later wins:
//
//  1. Built-in defaults ([Default]).
//  2. The TOML file ($XDG_CONFIG_HOME/balancecoach/config.toml unless a
//     path is given). A missing default file is not an error.
//  3. Environment variables: BALANCECOACH_API_KEY, then the provider key
//     (ANTHROPIC_API_KEY or GEMINI_API_KEY) when no key is set yet, and
//     BALANCECOACH_REDIS_ADDR.
//
// Example file:
//
//	[board]
//	width = 800
//	height = 600
//	floor = 140
//
//	[feedback]
//	provider = "anthropic"
//	model = "claude-3-5-haiku-latest"
//	timeout = "60s"
//	cache_ttl = "24h"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "2h"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/errors"
)

const appName = "balancecoach"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Board    BoardConfig    `toml:"board"`
	Feedback FeedbackConfig `toml:"feedback"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// BoardConfig sets the board geometry.
type BoardConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Floor  float64 `toml:"floor"`
}

// FeedbackConfig selects and tunes the language model.
type FeedbackConfig struct {
	Provider string   `toml:"provider"`
	Model    string   `toml:"model"`
	APIKey   string   `toml:"api_key"`
	BaseURL  string   `toml:"base_url"`
	Timeout  Duration `toml:"timeout"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// CacheConfig selects the feedback cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Namespace     string `toml:"namespace"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string   `toml:"addr"`
	SessionTTL Duration `toml:"session_ttl"`
}

// Duration is a time.Duration that decodes from strings like "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration: an 800x600 board, Anthropic
// feedback without a key (so feedback falls back), and a file cache.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  composition.DefaultWidth,
			Height: composition.DefaultHeight,
			Floor:  composition.FloorHeight,
		},
		Feedback: FeedbackConfig{
			Provider: "anthropic",
			Timeout:  Duration{60 * time.Second},
			CacheTTL: Duration{24 * time.Hour},
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: Duration{2 * time.Hour},
		},
	}
}

// Load reads the configuration. An empty path means the default location,
// which may be absent. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.ApplyEnv(os.LookupEnv)
			return cfg, cfg.Validate()
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

// ApplyEnv overlays environment variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("BALANCECOACH_API_KEY"); ok && v != "" {
		c.Feedback.APIKey = v
	}
	if c.Feedback.APIKey == "" {
		name := "ANTHROPIC_API_KEY"
		if strings.EqualFold(c.Feedback.Provider, "gemini") {
			name = "GEMINI_API_KEY"
		}
		if v, ok := lookup(name); ok {
			c.Feedback.APIKey = v
		}
	}
	if v, ok := lookup("BALANCECOACH_REDIS_ADDR"); ok && v != "" {
		c.Cache.RedisAddr = v
	}
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c Config) Validate() error {
	if err := errors.ValidateBoard(c.Board.Width, c.Board.Height, c.Board.Floor, composition.GridUnit); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch strings.ToLower(c.Feedback.Provider) {
	case "anthropic", "gemini", "":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown feedback provider %q (want anthropic or gemini)", c.Feedback.Provider)
	}
	if c.Feedback.BaseURL != "" {
		if err := errors.ValidateURL(c.Feedback.BaseURL); err != nil {
			return err
		}
	}
	return nil
}

// BoardGeometry returns the configured board.
func (c Config) BoardGeometry() (composition.Board, error) {
	return composition.NewBoard(c.Board.Width, c.Board.Height, c.Board.Floor)
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/balancecoach/config.toml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the configured cache directory, or the XDG default
// ($XDG_CACHE_HOME/balancecoach, then ~/.cache/balancecoach).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
