package controls

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/touchcube/internal/cube"
)

// ErrInvalidCalibration is returned when a sensor map names a sensor or
// facelet that does not exist.
var ErrInvalidCalibration = errors.New("controls: invalid calibration")

const (
	// NumVertices is the number of cube corners usable for undo.
	NumVertices = 8

	// RotationMapSize is the number of sensors watched per face.
	RotationMapSize = 8

	// VertexMapSize is the number of sensors around one corner.
	VertexMapSize = 3

	// ResetMapSize is the number of sensors of one reset gesture.
	ResetMapSize = 4
)

// Reset map slots.
const (
	ResetEasySlot   = 0
	ResetNormalSlot = 1
)

// Calibration describes where the sensors sit on the cube.
//
// Rotations holds, per face, the eight sensors whose pattern signals a turn
// of that face. Bits four apart are diametrically opposite sensors.
// Undo holds the three sensors around each corner. Reset holds the
// reset-easy and reset-normal sensor sets. Facelets maps each sensor to the
// facelet lit while it is pressed.
type Calibration struct {
	Rotations [cube.NumFaces][RotationMapSize]uint8 `yaml:"rotations"`
	Undo      [NumVertices][VertexMapSize]uint8      `yaml:"undo"`
	Reset     [2][ResetMapSize]uint8                 `yaml:"reset"`
	Facelets  [NumSensors]uint8                      `yaml:"facelets"`
}

// cornerPositions are the positions of a face's corner cells, in sensor order.
var cornerPositions = [4]uint8{0, 2, 6, 8}

// DefaultCalibration returns the reference geometry: one sensor under every
// corner facelet, sensor face*4+k sitting on position cornerPositions[k].
func DefaultCalibration() Calibration {
	return Calibration{
		Rotations: [cube.NumFaces][RotationMapSize]uint8{
			cube.Top:    {4, 6, 8, 10, 12, 14, 16, 18},
			cube.Front:  {20, 22, 9, 8, 3, 1, 18, 19},
			cube.Right:  {22, 23, 13, 12, 2, 3, 6, 7},
			cube.Back:   {23, 21, 17, 16, 0, 2, 10, 11},
			cube.Left:   {21, 20, 5, 4, 1, 0, 14, 15},
			cube.Bottom: {15, 13, 11, 9, 7, 5, 19, 17},
		},
		Undo: [NumVertices][VertexMapSize]uint8{
			{3, 6, 8},    // UFR
			{1, 4, 18},   // UFL
			{2, 10, 12},  // URB
			{0, 14, 16},  // UBL
			{22, 7, 9},   // DFR
			{20, 5, 19},  // DFL
			{23, 11, 13}, // DRB
			{21, 15, 17}, // DBL
		},
		Reset: [2][ResetMapSize]uint8{
			ResetEasySlot:   {0, 1, 2, 3},
			ResetNormalSlot: {20, 21, 22, 23},
		},
		Facelets: defaultFacelets(),
	}
}

func defaultFacelets() [NumSensors]uint8 {
	var out [NumSensors]uint8
	for s := range out {
		face := s / len(cornerPositions)
		k := s % len(cornerPositions)
		out[s] = uint8(face*cube.NumFaceletsPerFace) + cornerPositions[k]
	}
	return out
}

// Validate checks that every entry names an existing sensor or facelet.
func (c Calibration) Validate() error {
	for f, m := range c.Rotations {
		if err := checkSensors(m[:]); err != nil {
			return fmt.Errorf("%w: rotation map %s: %v", ErrInvalidCalibration, cube.Face(f), err)
		}
	}
	for v, m := range c.Undo {
		if err := checkSensors(m[:]); err != nil {
			return fmt.Errorf("%w: undo map %d: %v", ErrInvalidCalibration, v, err)
		}
	}
	for i, m := range c.Reset {
		if err := checkSensors(m[:]); err != nil {
			return fmt.Errorf("%w: reset map %d: %v", ErrInvalidCalibration, i, err)
		}
	}
	for s, f := range c.Facelets {
		if int(f) >= cube.NumFacelets {
			return fmt.Errorf("%w: sensor %d maps to facelet %d", ErrInvalidCalibration, s, f)
		}
	}
	return nil
}

func checkSensors(m []uint8) error {
	seen := make(map[uint8]bool, len(m))
	for _, s := range m {
		if int(s) >= NumSensors {
			return fmt.Errorf("sensor %d out of range", s)
		}
		if seen[s] {
			return fmt.Errorf("sensor %d listed twice", s)
		}
		seen[s] = true
	}
	return nil
}

// GestureSensors returns a set of sensors that, pressed together, produce
// the action. Undo uses the first vertex. ActionNone returns nil.
func (c Calibration) GestureSensors(a Action) []uint8 {
	switch a {
	case ActionUndo:
		return append([]uint8(nil), c.Undo[0][:]...)
	case ActionResetEasy:
		return append([]uint8(nil), c.Reset[ResetEasySlot][:]...)
	case ActionResetNormal:
		return append([]uint8(nil), c.Reset[ResetNormalSlot][:]...)
	}

	r, ok := a.Rotation()
	if !ok {
		return nil
	}
	m := c.Rotations[r.Face()]
	if r.Direction() == cube.CCW {
		return []uint8{m[1], m[5]}
	}
	return []uint8{m[0], m[4]}
}
