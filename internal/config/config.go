// Package config loads touchcube settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/controls"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every tunable of a touchcube run.
type Config struct {
	Seed        uint8         `yaml:"seed"`
	Threshold   int8          `yaml:"threshold"`
	CyclePeriod time.Duration `yaml:"cycle_period"`
	Animation   Animation     `yaml:"animation"`
	Scramble    Scramble      `yaml:"scramble"`
	LogLevel    string        `yaml:"log_level"`
	DBPath      string        `yaml:"db_path,omitempty"`

	// Calibration replaces the default sensor geometry when set.
	Calibration *controls.Calibration `yaml:"calibration,omitempty"`

	// CalibrationFile names a separate YAML file holding the calibration.
	// Relative paths are resolved against the config file's directory.
	CalibrationFile string `yaml:"calibration_file,omitempty"`
}

// Animation holds animation timing.
type Animation struct {
	RotationFrame   time.Duration `yaml:"rotation_frame"`
	VictoryFrame    time.Duration `yaml:"victory_frame"`
	VictoryFrames   int           `yaml:"victory_frames"`
	VictoryFacelets int           `yaml:"victory_facelets"`
}

// Scramble holds the number of turns applied by each reset gesture.
type Scramble struct {
	Easy   int `yaml:"easy"`
	Normal int `yaml:"normal"`
}

// Default returns the built-in configuration.
func Default() *Config {
	t := touchcube.DefaultTiming()
	return &Config{
		Seed:        touchcube.DefaultSeed,
		Threshold:   touchcube.DefaultThreshold,
		CyclePeriod: touchcube.DefaultCyclePeriod,
		Animation: Animation{
			RotationFrame:   t.RotationFrame,
			VictoryFrame:    t.VictoryFrame,
			VictoryFrames:   t.VictoryFrames,
			VictoryFacelets: t.VictoryFacelets,
		},
		Scramble: Scramble{
			Easy:   touchcube.DefaultEasyScramble,
			Normal: touchcube.DefaultNormalScramble,
		},
		LogLevel: "info",
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults; an empty path does too.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.CalibrationFile != "" && cfg.Calibration == nil {
		calPath := cfg.CalibrationFile
		if !filepath.IsAbs(calPath) {
			calPath = filepath.Join(filepath.Dir(path), calPath)
		}
		cal, err := LoadCalibration(calPath)
		if err != nil {
			return nil, err
		}
		cfg.Calibration = &cal
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks ranges. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Threshold < 1 {
		return fmt.Errorf("%w: threshold must be at least 1, got %d", ErrInvalidConfig, c.Threshold)
	}
	if c.CyclePeriod < 0 {
		return fmt.Errorf("%w: cycle_period must not be negative", ErrInvalidConfig)
	}
	if c.Animation.RotationFrame <= 0 || c.Animation.VictoryFrame <= 0 {
		return fmt.Errorf("%w: animation frame delays must be positive", ErrInvalidConfig)
	}
	if c.Animation.VictoryFrames < 0 || c.Animation.VictoryFacelets < 0 {
		return fmt.Errorf("%w: victory counts must not be negative", ErrInvalidConfig)
	}
	if c.Scramble.Easy < 0 || c.Scramble.Normal < 0 {
		return fmt.Errorf("%w: scramble lengths must not be negative", ErrInvalidConfig)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Calibration != nil {
		if err := c.Calibration.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Timing returns the animation timing.
func (c *Config) Timing() touchcube.Timing {
	return touchcube.Timing{
		RotationFrame:   c.Animation.RotationFrame,
		VictoryFrame:    c.Animation.VictoryFrame,
		VictoryFrames:   c.Animation.VictoryFrames,
		VictoryFacelets: c.Animation.VictoryFacelets,
	}
}

// CalibrationOrDefault returns the configured calibration or the default.
func (c *Config) CalibrationOrDefault() controls.Calibration {
	if c.Calibration != nil {
		return *c.Calibration
	}
	return controls.DefaultCalibration()
}

// Options converts the configuration into controller options.
func (c *Config) Options() []touchcube.Option {
	return []touchcube.Option{
		touchcube.WithSeed(c.Seed),
		touchcube.WithThreshold(c.Threshold),
		touchcube.WithTiming(c.Timing()),
		touchcube.WithScrambleLengths(c.Scramble.Easy, c.Scramble.Normal),
		touchcube.WithCyclePeriod(c.CyclePeriod),
		touchcube.WithCalibration(c.CalibrationOrDefault()),
	}
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
