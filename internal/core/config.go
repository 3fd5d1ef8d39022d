package core

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jo-hoe/gomagick/internal/magick"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort             = 8080
	defaultDatabaseType     = "sqlite"
	defaultConnectionString = ":memory:"
)

// ImageMagick holds the executable paths of the ImageMagick tools
type ImageMagick struct {
	Convert string `yaml:"convert"`
	Montage string `yaml:"montage"`
}

type Database struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

// PresetConfig is a named operation with fixed parameters; requests add the rest
type PresetConfig struct {
	Name      string         `yaml:"name"`
	Operation string         `yaml:"operation"`
	Params    map[string]any `yaml:",inline"`
}

type ServiceConfig struct {
	Port        int            `yaml:"port"`
	LogLevel    string         `yaml:"logLevel"`
	ImageMagick ImageMagick    `yaml:"imagemagick"`
	Database    Database       `yaml:"database"`
	Presets     []PresetConfig `yaml:"presets"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return &config, nil
}

func (c *ServiceConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Database.Type == "" {
		c.Database.Type = defaultDatabaseType
	}
	if c.Database.Type == defaultDatabaseType && c.Database.ConnectionString == "" {
		c.Database.ConnectionString = defaultConnectionString
	}
}

// Validate checks the tool paths, the log level and the presets
func (c *ServiceConfig) Validate() error {
	if strings.TrimSpace(c.ImageMagick.Convert) == "" {
		return fmt.Errorf("imagemagick.convert is required")
	}
	if c.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return fmt.Errorf("invalid logLevel %q: %w", c.LogLevel, err)
		}
	}
	return validatePresets(c.Presets)
}

// SlogLevel returns the configured log level, info when unset
func (c *ServiceConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Tools returns the tool paths in the form the operations expect
func (c *ServiceConfig) Tools() magick.Tools {
	return magick.Tools{
		Convert: c.ImageMagick.Convert,
		Montage: c.ImageMagick.Montage,
	}
}

// validatePresets ensures all presets have a unique name and a known operation
func validatePresets(presets []PresetConfig) error {
	seenNames := make(map[string]bool)

	for i, preset := range presets {
		if preset.Name == "" {
			return fmt.Errorf("preset at index %d has empty name", i)
		}

		if seenNames[preset.Name] {
			return fmt.Errorf("duplicate preset name: %s", preset.Name)
		}
		seenNames[preset.Name] = true

		if !magick.DefaultRegistry.IsRegistered(preset.Operation) {
			return fmt.Errorf("preset %s uses unknown operation %q", preset.Name, preset.Operation)
		}
	}

	return nil
}
