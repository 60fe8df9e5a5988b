package touchcube

import (
	"errors"

	"github.com/SeamusWaldron/touchcube/internal/anim"
	"github.com/SeamusWaldron/touchcube/internal/controls"
)

// Sentinel errors for the touchcube package.
var (
	// Configuration errors
	ErrInvalidThreshold   = errors.New("touchcube: threshold must be at least 1")
	ErrInvalidTiming      = errors.New("touchcube: invalid animation timing")
	ErrInvalidScramble    = errors.New("touchcube: scramble length must not be negative")
	ErrInvalidCalibration = controls.ErrInvalidCalibration

	// Parsing errors
	ErrInvalidNotation = errors.New("touchcube: invalid rotation notation")

	// State errors
	ErrBusy = anim.ErrBusy
)
