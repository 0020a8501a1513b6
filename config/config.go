// Package config loads eepromburn settings from a TOML file.
//
// Every key is optional; keys absent from the file keep their defaults, and
// command-line flags override both.
//
//	port = "/dev/ttyACM0"
//	speed = 115200
//	read_timeout = "1s"
//	response_timeout = "30s"
//	max_resets = 3
//	fix_hangup = true
//	log_level = "debug"
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config holds the burner settings.
type Config struct {
	Port            string
	Speed           int
	ReadTimeout     time.Duration
	ResponseTimeout time.Duration
	MaxResets       int
	Erase           bool
	Verbose         bool
	FixHangup       bool
	LogLevel        string
}

type fileConfig struct {
	Port            string `toml:"port"`
	Speed           int    `toml:"speed"`
	ReadTimeout     string `toml:"read_timeout"`
	ResponseTimeout string `toml:"response_timeout"`
	MaxResets       int    `toml:"max_resets"`
	Erase           bool   `toml:"erase"`
	Verbose         bool   `toml:"verbose"`
	FixHangup       bool   `toml:"fix_hangup"`
	LogLevel        string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:        "/dev/ttyUSB0",
		Speed:       115200,
		ReadTimeout: time.Second,
		FixHangup:   true,
		LogLevel:    "warn",
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("port") {
		if port := strings.TrimSpace(raw.Port); port != "" {
			cfg.Port = port
		}
	}

	if meta.IsDefined("speed") {
		cfg.Speed = raw.Speed
	}

	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}

	if meta.IsDefined("response_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ResponseTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse response_timeout: %w", err)
		}
		cfg.ResponseTimeout = d
	}

	if meta.IsDefined("max_resets") {
		cfg.MaxResets = raw.MaxResets
	}

	if meta.IsDefined("erase") {
		cfg.Erase = raw.Erase
	}

	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	if meta.IsDefined("fix_hangup") {
		cfg.FixHangup = raw.FixHangup
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values the burner cannot use.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %d", c.Speed)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive, got %s", c.ReadTimeout)
	}
	if c.ResponseTimeout < 0 {
		return fmt.Errorf("response_timeout cannot be negative, got %s", c.ResponseTimeout)
	}
	if c.MaxResets < 0 {
		return fmt.Errorf("max_resets cannot be negative, got %d", c.MaxResets)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
