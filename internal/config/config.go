// Package config holds the settings shared by the hotelconfig commands.
// Values come from HOTELCONFIG_* environment variables first and may then be
// overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-hotelconfig/pkg/validation"
)

// Config is the resolved command configuration.
type Config struct {
	OutputDir  string `env:"HOTELCONFIG_OUTPUT_DIR" envDefault:"."`
	Filename   string `env:"HOTELCONFIG_FILENAME" envDefault:"config_hotel.json"`
	Seed       string `env:"HOTELCONFIG_SEED"`
	HTTPAddr   string `env:"HOTELCONFIG_HTTP_ADDR" envDefault:":8080"`
	Duplicates string `env:"HOTELCONFIG_DUPLICATES" envDefault:"reject"`
	Theme      string `env:"HOTELCONFIG_THEME" envDefault:"hotelconfig"`
	Variant    string `env:"HOTELCONFIG_THEME_VARIANT"`
	Debug      bool   `env:"HOTELCONFIG_DEBUG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RegisterFlags binds every field to fs, using the current values as
// defaults so flags override the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.OutputDir, "out", c.OutputDir, "directory receiving downloads")
	fs.StringVar(&c.Filename, "filename", c.Filename, "file name offered for exports")
	fs.StringVar(&c.Seed, "seed", c.Seed, "JSON/YAML seed file or exported document to start from")
	fs.StringVar(&c.HTTPAddr, "addr", c.HTTPAddr, "HTTP listen address")
	fs.StringVar(&c.Duplicates, "duplicates", c.Duplicates, "duplicate partner policy: reject or last-write-wins")
	fs.StringVar(&c.Theme, "theme", c.Theme, "theme name")
	fs.StringVar(&c.Variant, "variant", c.Variant, "theme variant")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

// ParseArgs loads the environment then parses args into the same Config.
func ParseArgs(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	cfg.RegisterFlags(fs)
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// DuplicatePolicy resolves the Duplicates setting.
func (c Config) DuplicatePolicy() (validation.DuplicatePolicy, error) {
	return validation.ParseDuplicatePolicy(c.Duplicates)
}

// Validate checks values that cannot be enforced through struct tags.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Filename) == "" {
		return errors.New("config: filename is required")
	}
	if _, err := c.DuplicatePolicy(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
