package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines resource limits for image loading, grid layout defaults and
// interaction parameters.
type Config struct {
	Limits struct {
		MaxFileSizeMB     int `yaml:"max_file_size_mb"`    // Refuse files larger than this (MiB)
		MaxImageDimension int `yaml:"max_image_dimension"` // Refuse images wider or taller than this (px)
	} `yaml:"limits"`
	Grid struct {
		Columns   int `yaml:"columns"`    // Default column count
		MaxImages int `yaml:"max_images"` // Suffix-list cap
	} `yaml:"grid"`
	View struct {
		ZoomStep float64 `yaml:"zoom_step"` // Per-wheel-tick zoom factor
	} `yaml:"view"`
	Settings struct {
		Debug bool `yaml:"debug"` // Enable debug logging
	} `yaml:"settings"`
}

// LoadConfig loads configuration from the default location
// (~/.config/igridvu/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "igridvu", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Limits.MaxFileSizeMB > 0 {
		cfg.Limits.MaxFileSizeMB = tempCfg.Limits.MaxFileSizeMB
	}
	if tempCfg.Limits.MaxImageDimension > 0 {
		cfg.Limits.MaxImageDimension = tempCfg.Limits.MaxImageDimension
	}
	if tempCfg.Grid.Columns > 0 {
		cfg.Grid.Columns = tempCfg.Grid.Columns
	}
	if tempCfg.Grid.MaxImages > 0 {
		cfg.Grid.MaxImages = tempCfg.Grid.MaxImages
	}
	if tempCfg.View.ZoomStep > 0 {
		cfg.View.ZoomStep = tempCfg.View.ZoomStep
	}
	cfg.Settings.Debug = tempCfg.Settings.Debug

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// New returns the default configuration with safe defaults.
func New() *Config {
	cfg := &Config{}
	cfg.Limits.MaxFileSizeMB = 50
	cfg.Limits.MaxImageDimension = 10000
	cfg.Grid.Columns = 4
	cfg.Grid.MaxImages = 30
	cfg.View.ZoomStep = 1.15
	return cfg
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Limits.MaxFileSizeMB <= 0 {
		return fmt.Errorf("limits.max_file_size_mb must be positive, got %d", c.Limits.MaxFileSizeMB)
	}
	if c.Limits.MaxImageDimension <= 0 {
		return fmt.Errorf("limits.max_image_dimension must be positive, got %d", c.Limits.MaxImageDimension)
	}
	if c.Grid.Columns <= 0 {
		return fmt.Errorf("grid.columns must be positive, got %d", c.Grid.Columns)
	}
	if c.Grid.MaxImages <= 0 {
		return fmt.Errorf("grid.max_images must be positive, got %d", c.Grid.MaxImages)
	}
	if c.View.ZoomStep <= 1.0 {
		return fmt.Errorf("view.zoom_step must be greater than 1.0, got %v", c.View.ZoomStep)
	}
	return nil
}

// MaxFileSizeBytes returns the file size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Limits.MaxFileSizeMB) * 1024 * 1024
}

// Save writes the configuration to the default location.
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".config", "igridvu")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	return c.SaveTo(filepath.Join(configDir, "config.yaml"))
}

// SaveTo writes the configuration to a specific file path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
