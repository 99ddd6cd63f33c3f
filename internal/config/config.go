// Package config loads settings for the neuron network from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/iburimskiy/neuron-network/internal/network"
	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Audio pulse
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	PulseGain       = 1.5

	// Slider panel
	SliderX       = 20
	SliderY       = 40
	SliderWidth   = 200
	SliderHeight  = 8
	SliderSpacing = 36
	KnobRadius    = 7

	// Slider ranges
	MaxCount       = 500
	MaxDistance    = 500
	MaxConnections = 20

	// How often frame stats are logged at debug level
	StatsEvery = 300
)

// Config contains all settings.
type Config struct {
	// Network holds the initial simulation parameters.
	Network NetworkConfig `json:"network" yaml:"network"`

	// Window configures the host window.
	Window WindowConfig `json:"window" yaml:"window"`

	// Logging configures operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// NetworkConfig mirrors network.Settings. Values are taken as-is.
type NetworkConfig struct {
	Count          int     `json:"count" yaml:"count"`
	MaxDistance    float64 `json:"max_distance" yaml:"max_distance"`
	MaxConnections int     `json:"max_connections" yaml:"max_connections"`
	Radius         float64 `json:"radius" yaml:"radius"`

	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Shimmer makes point brightness flicker with simplex noise.
	Shimmer bool `json:"shimmer" yaml:"shimmer"`
}

// WindowConfig configures the window.
type WindowConfig struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
	TPS    int    `json:"tps" yaml:"tps"`

	// Controls shows the slider panel on start.
	Controls bool `json:"controls" yaml:"controls"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// Settings converts the network section for the simulation.
func (c NetworkConfig) Settings() network.Settings {
	return network.Settings{
		Count:          c.Count,
		MaxDistance:    c.MaxDistance,
		MaxConnections: c.MaxConnections,
		Radius:         c.Radius,
		Seed:           c.Seed,
		Shimmer:        c.Shimmer,
	}
}

// Default returns a Config with the stock values.
func Default() *Config {
	d := network.DefaultSettings()
	return &Config{
		Network: NetworkConfig{
			Count:          d.Count,
			MaxDistance:    d.MaxDistance,
			MaxConnections: d.MaxConnections,
			Radius:         d.Radius,
		},
		Window: WindowConfig{
			Width:    WindowWidth,
			Height:   WindowHeight,
			Title:    "Neurons",
			TPS:      60,
			Controls: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.neurons/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".neurons", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks the window and logging sections. Network values are taken
// as-is.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Window.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.Window.TPS)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("NEURONS_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Network.Count = n
		}
	}

	if v := os.Getenv("NEURONS_MAX_DISTANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Network.MaxDistance = f
		}
	}

	if v := os.Getenv("NEURONS_MAX_CONNECTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Network.MaxConnections = n
		}
	}

	if v := os.Getenv("NEURONS_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Network.Seed = n
		}
	}

	if v := os.Getenv("NEURONS_SHIMMER"); v != "" {
		config.Network.Shimmer = v == "true" || v == "1"
	}

	if v := os.Getenv("NEURONS_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
