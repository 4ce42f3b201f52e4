// Package config loads process configuration from MATCHGAMES_* environment
// variables. Command-line flags override these values in internal/cli.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultAddr = "127.0.0.1:3334"
	DefaultFPS  = 60
	maxFPS      = 240
)

type Config struct {
	// LogPath is where the structured log is appended. Empty discards logs.
	LogPath string `env:"MATCHGAMES_LOG"`
	Format  string `env:"MATCHGAMES_FORMAT" envDefault:"json"`
	Addr    string `env:"MATCHGAMES_ADDR" envDefault:"127.0.0.1:3334"`
	// Seed drives bank shuffles. Zero picks a random seed.
	Seed   uint64 `env:"MATCHGAMES_SEED" envDefault:"0"`
	Glyphs string `env:"MATCHGAMES_GLYPHS" envDefault:"unicode"`
	FPS    int    `env:"MATCHGAMES_FPS" envDefault:"60"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses a fixed environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes values in place and rejects the ones that cannot work.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "", "json":
		c.Format = "json"
	case "edn":
	default:
		return fmt.Errorf("invalid format %q (expected json|edn)", c.Format)
	}
	c.Glyphs = strings.ToLower(strings.TrimSpace(c.Glyphs))
	switch c.Glyphs {
	case "", "unicode", "utf8":
		c.Glyphs = "unicode"
	case "ascii":
	default:
		return fmt.Errorf("invalid glyphs %q (expected unicode|ascii)", c.Glyphs)
	}
	if c.FPS <= 0 || c.FPS > maxFPS {
		return fmt.Errorf("invalid fps %d (expected 1..%d)", c.FPS, maxFPS)
	}
	c.Addr = strings.TrimSpace(c.Addr)
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	c.LogPath = strings.TrimSpace(c.LogPath)
	return nil
}

// FrameInterval is the minimum spacing between drag repaints.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Defaults is the configuration of an empty environment.
func Defaults() Config {
	return Config{
		Format: "json",
		Addr:   DefaultAddr,
		Glyphs: "unicode",
		FPS:    DefaultFPS,
	}
}
