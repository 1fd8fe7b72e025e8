package internals

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config path is given.
const DefaultConfigFile = ".monkey.yaml"

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Prompt       string `yaml:"prompt"`
	FailFast     bool   `yaml:"fail_fast"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	LogLevel     string `yaml:"log_level"`
	Color        string `yaml:"color"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:       ">> ",
		FailFast:     false,
		MaxCallDepth: 10000,
		LogLevel:     "warn",
		Color:        ColorAuto,
	}
}

// LoadConfig reads the YAML config at path. An empty path falls back to
// DefaultConfigFile, which is allowed to be missing.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	file, err := os.Open(abs)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	cfg, err := DecodeConfig(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	return cfg, nil
}

// DecodeConfig decodes a YAML document on top of the defaults. Unknown keys
// are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}

	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never, got %q", c.Color)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
