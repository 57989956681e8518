// Package config provides configuration loading and management.
// Precedence, lowest to highest: built-in defaults, YAML file,
// YUVENC_* environment variables, command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/user/yuvenc/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for an encoding run.
type Config struct {
	// Input/Output ("-" selects the standard streams)
	Input  string `yaml:"input" envconfig:"INPUT"`
	Output string `yaml:"output" envconfig:"OUTPUT"`
	Recon  string `yaml:"recon" envconfig:"RECON"`

	// Frame geometry and rate
	Width    int `yaml:"width" envconfig:"WIDTH"`
	Height   int `yaml:"height" envconfig:"HEIGHT"`
	FPSNum   int `yaml:"fps_num" envconfig:"FPS_NUM"`
	FPSDenom int `yaml:"fps_denom" envconfig:"FPS_DENOM"`

	// Stream windowing
	Frames int `yaml:"frames" envconfig:"FRAMES"` // 0 = encode until the source ends
	Seek   int `yaml:"seek" envconfig:"SEEK"`     // frames to skip before encoding

	// Encoder parameters
	QP          int `yaml:"qp" envconfig:"QP"`
	Bitrate     int `yaml:"bitrate" envconfig:"BITRATE"` // bps, 0 = constant QP
	IntraPeriod int `yaml:"intra_period" envconfig:"INTRA_PERIOD"`
	Threads     int `yaml:"threads" envconfig:"THREADS"`

	// Logging
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Input:    "-",
		Output:   "-",
		FPSNum:   25,
		FPSDenom: 1,
		QP:       32,
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("YUVENC", &cfg); err != nil {
		return cfg, fmt.Errorf("load environment config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration before any resource is opened.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: frame size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("config: frame size %dx%d must be even for 4:2:0", c.Width, c.Height)
	}
	if c.Input == "" || c.Output == "" {
		return fmt.Errorf("config: input and output are required")
	}
	if c.Frames < 0 {
		return fmt.Errorf("config: frame limit %d must not be negative", c.Frames)
	}
	if c.Seek < 0 {
		return fmt.Errorf("config: seek %d must not be negative", c.Seek)
	}
	if c.FPSNum <= 0 || c.FPSDenom <= 0 {
		return fmt.Errorf("config: frame rate %d/%d must be positive", c.FPSNum, c.FPSDenom)
	}
	return nil
}

// ToOrchestratorConfig maps the configuration onto the orchestrator.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Input:       c.Input,
		Output:      c.Output,
		Width:       c.Width,
		Height:      c.Height,
		FPSNum:      c.FPSNum,
		FPSDenom:    c.FPSDenom,
		Frames:      c.Frames,
		Seek:        c.Seek,
		QP:          c.QP,
		Bitrate:     c.Bitrate,
		IntraPeriod: c.IntraPeriod,
		Threads:     c.Threads,
	}
}
