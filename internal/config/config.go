package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcncl/valuefmt/internal/errors"
	"github.com/mcncl/valuefmt/internal/models"
	"gopkg.in/yaml.v3"
)

// Output modes
const (
	OutputModeContent = "content"
	OutputModeJSON    = "json"
)

// Config represents the complete configuration for valuefmt
type Config struct {
	DefaultFormat string            `yaml:"default_format"`
	Labels        map[string]string `yaml:"labels"`
	Input         InputConfig       `yaml:"input"`
	Output        OutputConfig      `yaml:"output"`
	Dev           DevConfig         `yaml:"dev"`

	// resolved from the fields above (not serialized)
	defaultTag models.FormatTag
	labelTags  map[models.FormatTag]string
}

// InputConfig controls how input is read
type InputConfig struct {
	// MaxBytes rejects larger input; 0 means no limit
	MaxBytes int64 `yaml:"max_bytes"`
	// TrimTrailingNewline drops one trailing "\n" or "\r\n", as left by echo
	TrimTrailingNewline bool `yaml:"trim_trailing_newline"`
}

// OutputConfig controls how results are written
type OutputConfig struct {
	Mode            string `yaml:"mode"`
	TrailingNewline bool   `yaml:"trailing_newline"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		DefaultFormat: string(models.FormatRaw),
		Labels:        make(map[string]string),
		Input: InputConfig{
			MaxBytes:            0,
			TrimTrailingNewline: true,
		},
		Output: OutputConfig{
			Mode:            OutputModeContent,
			TrailingNewline: true,
		},
		Dev: DevConfig{
			Debug: false,
		},
		defaultTag: models.FormatRaw,
		labelTags:  make(map[models.FormatTag]string),
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".valuefmt.yml", ".valuefmt.yaml", "valuefmt.yml", "valuefmt.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// resolve normalizes format names and validates the remaining fields
func (c *Config) resolve() error {
	if c.DefaultFormat == "" {
		c.DefaultFormat = string(models.FormatRaw)
	}
	tag, err := models.ParseFormatTag(c.DefaultFormat)
	if err != nil {
		return errors.NewConfigError(fmt.Sprintf("invalid default_format '%s'", c.DefaultFormat), err)
	}
	c.defaultTag = tag
	c.DefaultFormat = string(tag)

	c.labelTags = make(map[models.FormatTag]string, len(c.Labels))
	for name, label := range c.Labels {
		tag, err := models.ParseFormatTag(name)
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("invalid label key '%s'", name), err)
		}
		c.labelTags[tag] = label
	}

	switch c.Output.Mode {
	case "":
		c.Output.Mode = OutputModeContent
	case OutputModeContent, OutputModeJSON:
	default:
		return errors.NewConfigError(fmt.Sprintf("invalid output mode '%s' (want %s or %s)", c.Output.Mode, OutputModeContent, OutputModeJSON), nil)
	}

	if c.Input.MaxBytes < 0 {
		return errors.NewConfigError("input.max_bytes must not be negative", nil)
	}

	return nil
}

// DefaultTag returns the format applied when none is requested
func (c *Config) DefaultTag() models.FormatTag {
	if c.defaultTag == "" {
		return models.FormatRaw
	}
	return c.defaultTag
}

// LabelOverrides returns the configured display names keyed by tag
func (c *Config) LabelOverrides() map[models.FormatTag]string {
	out := make(map[models.FormatTag]string, len(c.labelTags))
	for tag, label := range c.labelTags {
		out[tag] = label
	}
	return out
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty or
// false CLI values leave the file's settings in place.
func LoadConfigWithCLI(configPath, cliFormat string, cliJSON, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliFormat != "" {
		cfg.DefaultFormat = cliFormat
	}
	if cliJSON {
		cfg.Output.Mode = OutputModeJSON
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	return cfg, nil
}
