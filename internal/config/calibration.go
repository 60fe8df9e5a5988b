package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/touchcube/internal/controls"
)

// LoadCalibration reads a calibration file. Every table must be present.
func LoadCalibration(path string) (controls.Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return controls.Calibration{}, fmt.Errorf("failed to read calibration: %w", err)
	}
	return ParseCalibration(data)
}

// ParseCalibration decodes and validates a calibration.
func ParseCalibration(data []byte) (controls.Calibration, error) {
	var raw struct {
		Rotations *[6][controls.RotationMapSize]uint8                    `yaml:"rotations"`
		Undo      *[controls.NumVertices][controls.VertexMapSize]uint8 `yaml:"undo"`
		Reset     *[2][controls.ResetMapSize]uint8                      `yaml:"reset"`
		Facelets  *[controls.NumSensors]uint8                           `yaml:"facelets"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return controls.Calibration{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if raw.Rotations == nil || raw.Undo == nil || raw.Reset == nil || raw.Facelets == nil {
		return controls.Calibration{}, fmt.Errorf("%w: calibration needs rotations, undo, reset and facelets", ErrInvalidConfig)
	}

	cal := controls.Calibration{
		Rotations: *raw.Rotations,
		Undo:      *raw.Undo,
		Reset:     *raw.Reset,
		Facelets:  *raw.Facelets,
	}
	if err := cal.Validate(); err != nil {
		return controls.Calibration{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cal, nil
}

// MarshalCalibration encodes a calibration as YAML.
func MarshalCalibration(cal controls.Calibration) ([]byte, error) {
	return yaml.Marshal(cal)
}
