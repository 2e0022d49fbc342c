// Package config loads server settings from command-line flags layered over an
// optional YAML file. Explicit flags win over file values, file values win
// over defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/internal/logging"
)

const (
	DefaultAddr  = ":8383"
	DefaultDelay = 2 * time.Second
	DefaultGrace = 5 * time.Second
)

// Config is the resolved server configuration.
type Config struct {
	File       string        `yaml:"-"`
	Addr       string        `yaml:"addr"`
	Delay      time.Duration `yaml:"delay"`
	Grace      time.Duration `yaml:"grace"`
	FieldsFile string        `yaml:"fieldsFile"`
	Log        Log           `yaml:"log"`
	Theme      Theme         `yaml:"theme"`
}

// Log selects the zap level and encoding.
type Log struct {
	Level  string         `yaml:"level"`
	Format logging.Format `yaml:"format"`
}

// Theme selects the go-theme manifest and variant used by the HTML renderer.
type Theme struct {
	Name      string   `yaml:"name"`
	Variant   string   `yaml:"variant"`
	Manifests []string `yaml:"manifests"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:  DefaultAddr,
		Delay: DefaultDelay,
		Grace: DefaultGrace,
		Log: Log{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load parses args. When -config names a file, it is decoded first and the
// flags are applied again on top of it.
func Load(name string, args []string, output io.Writer) (Config, error) {
	cfg := Default()
	if err := parse(name, args, output, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.File == "" {
		return cfg, cfg.Validate()
	}

	fromFile := Default()
	if err := decodeFile(cfg.File, &fromFile); err != nil {
		return Config{}, err
	}
	fromFile.File = cfg.File
	if err := parse(name, args, output, &fromFile); err != nil {
		return Config{}, err
	}
	return fromFile, fromFile.Validate()
}

// parse binds flags with cfg's current values as defaults so that only
// explicitly passed flags change them.
func parse(name string, args []string, output io.Writer, cfg *Config) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	fs.StringVar(&cfg.File, "config", cfg.File, "optional YAML config file")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.DurationVar(&cfg.Delay, "delay", cfg.Delay, "artificial delay applied to API responses")
	fs.DurationVar(&cfg.Grace, "grace", cfg.Grace, "graceful shutdown timeout")
	fs.StringVar(&cfg.FieldsFile, "fields", cfg.FieldsFile, "JSON or YAML field list (defaults to the built-in demo form)")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	fs.Func("log-format", "log encoding (console or json)", func(value string) error {
		cfg.Log.Format = logging.Format(value)
		return nil
	})
	fs.StringVar(&cfg.Theme.Name, "theme", cfg.Theme.Name, "theme name")
	fs.StringVar(&cfg.Theme.Variant, "theme-variant", cfg.Theme.Variant, "theme variant")
	fs.Func("theme-manifest", "YAML theme manifest to register (repeatable)", func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return errors.New("empty manifest path")
		}
		cfg.Theme.Manifests = append(cfg.Theme.Manifests, value)
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("config: unexpected arguments %v", fs.Args())
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return errors.New("config: addr is required")
	case c.Delay < 0:
		return fmt.Errorf("config: delay must not be negative, got %s", c.Delay)
	case c.Grace < 0:
		return fmt.Errorf("config: grace must not be negative, got %s", c.Grace)
	}
	switch c.Log.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}
