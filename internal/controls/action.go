// Package controls turns raw finger-sensor samples into gestures.
//
// A Debouncer keeps a signed run-length counter per sensor. A Detector matches
// those counters against the sensor maps of a Calibration to recognise a
// quarter turn, an undo or a reset. History remembers performed turns so they
// can be undone.
package controls

import "github.com/SeamusWaldron/touchcube/internal/cube"

// NumSensors is the number of physical finger sensors.
const NumSensors = 24

// Action is a recognised gesture. Values 0..11 are quarter turns and share
// their encoding with cube.Rotation.
type Action uint8

const (
	ActionNone        Action = Action(cube.None)
	ActionResetEasy   Action = 254
	ActionResetNormal Action = 253
	ActionUndo        Action = 252
)

// RotationAction wraps a rotation as an action.
func RotationAction(r cube.Rotation) Action {
	if !r.Valid() {
		return ActionNone
	}
	return Action(r)
}

// Rotation returns the quarter turn carried by the action, if any.
func (a Action) Rotation() (cube.Rotation, bool) {
	r := cube.Rotation(a)
	return r, r.Valid()
}

// IsRotation reports whether a is one of the 12 quarter turns.
func (a Action) IsRotation() bool {
	return cube.Rotation(a).Valid()
}

// IsReset reports whether a is either reset variant.
func (a Action) IsReset() bool {
	return a == ActionResetEasy || a == ActionResetNormal
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionResetEasy:
		return "reset-easy"
	case ActionResetNormal:
		return "reset-normal"
	case ActionUndo:
		return "undo"
	}
	if r, ok := a.Rotation(); ok {
		return r.String()
	}
	return "unknown"
}

// ParseAction parses the output of Action.String.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "none":
		return ActionNone, true
	case "reset-easy":
		return ActionResetEasy, true
	case "reset-normal":
		return ActionResetNormal, true
	case "undo":
		return ActionUndo, true
	}
	if r, ok := cube.ParseRotation(s); ok {
		return RotationAction(r), true
	}
	return ActionNone, false
}
