package touchcube

import (
	"github.com/SeamusWaldron/touchcube/internal/anim"
	"github.com/SeamusWaldron/touchcube/internal/controls"
	"github.com/SeamusWaldron/touchcube/internal/cube"
)

// Core types, re-exported so callers do not import internal packages.
type (
	Face        = cube.Face
	Facelet     = cube.Facelet
	Rotation    = cube.Rotation
	Action      = controls.Action
	Readings    = controls.Readings
	Counters    = controls.Counters
	Calibration = controls.Calibration
	Timing      = anim.Timing
)

// Frame is one snapshot of all 54 facelets in LED-chain order.
type Frame = [cube.NumFacelets]Facelet

const (
	NumSensors  = controls.NumSensors
	NumFacelets = cube.NumFacelets
)

// Faces.
const (
	Top    = cube.Top
	Front  = cube.Front
	Right  = cube.Right
	Back   = cube.Back
	Left   = cube.Left
	Bottom = cube.Bottom
)

// Quarter turns.
const (
	U      = cube.TopCW
	F      = cube.FrontCW
	R      = cube.RightCW
	B      = cube.BackCW
	L      = cube.LeftCW
	D      = cube.BottomCW
	UPrime = cube.TopCCW
	FPrime = cube.FrontCCW
	RPrime = cube.RightCCW
	BPrime = cube.BackCCW
	LPrime = cube.LeftCCW
	DPrime = cube.BottomCCW

	NoRotation = cube.None
)

// Gestures.
const (
	ActionNone        = controls.ActionNone
	ActionUndo        = controls.ActionUndo
	ActionResetEasy   = controls.ActionResetEasy
	ActionResetNormal = controls.ActionResetNormal
)

// DefaultCalibration returns the reference sensor geometry.
func DefaultCalibration() Calibration {
	return controls.DefaultCalibration()
}

// DefaultTiming returns the reference animation timing.
func DefaultTiming() Timing {
	return anim.DefaultTiming()
}

// ParseRotations parses space-separated turn notation such as "R U R' U'".
func ParseRotations(s string) ([]Rotation, error) {
	rs, ok := cube.ParseRotations(s)
	if !ok {
		return nil, ErrInvalidNotation
	}
	return rs, nil
}

// FormatRotations is the inverse of ParseRotations.
func FormatRotations(rs []Rotation) string {
	return cube.FormatRotations(rs)
}

// ReadingsOf returns readings with only the given sensors on.
func ReadingsOf(sensors ...uint8) Readings {
	return controls.ReadingsOf(sensors...)
}

// RotationAction returns the gesture that performs r.
func RotationAction(r Rotation) Action {
	return controls.RotationAction(r)
}

// UnpackReadings is the inverse of Readings.Pack.
func UnpackReadings(mask uint32) Readings {
	return controls.UnpackReadings(mask)
}
