package controls

import "github.com/SeamusWaldron/touchcube/internal/cube"

// Accepted rotation patterns. Each sets one pair of diametrically opposite
// sensors of a face's map.
const (
	patternCW1  = 0x11
	patternCW2  = 0x44
	patternCCW1 = 0x22
	patternCCW2 = 0x88
)

// Detector recognises gestures in a snapshot of sensor counters.
//
// Thresholds count consecutive confirmed reads. A low threshold (1) is used
// for previewing a pending turn, a higher one (10-30) for committing.
type Detector struct {
	cal Calibration
}

// NewDetector creates a detector for the given sensor geometry.
func NewDetector(cal Calibration) *Detector {
	return &Detector{cal: cal}
}

// Calibration returns the sensor geometry in use.
func (d *Detector) Calibration() Calibration {
	return d.cal
}

func pressed(c Counters, s uint8, threshold int8) bool {
	return c[s] >= threshold
}

func (d *Detector) allPressed(c Counters, sensors []uint8, threshold int8) bool {
	for _, s := range sensors {
		if !pressed(c, s, threshold) {
			return false
		}
	}
	return true
}

// DetectRotation returns the quarter turn whose pattern matches, or None.
// More than one matching face is ambiguous and also yields None.
func (d *Detector) DetectRotation(c Counters, threshold int8) cube.Rotation {
	found := cube.None
	for _, f := range cube.Faces {
		var bits uint8
		for b, s := range d.cal.Rotations[f] {
			if pressed(c, s, threshold) {
				bits |= 1 << uint(b)
			}
		}

		var r cube.Rotation
		switch bits {
		case patternCW1, patternCW2:
			r = cube.NewRotation(f, cube.CW)
		case patternCCW1, patternCCW2:
			r = cube.NewRotation(f, cube.CCW)
		default:
			continue
		}

		if found != cube.None {
			return cube.None
		}
		found = r
	}
	return found
}

// DetectUndo reports whether all three sensors of any corner are pressed.
func (d *Detector) DetectUndo(c Counters, threshold int8) bool {
	for _, v := range d.cal.Undo {
		if d.allPressed(c, v[:], threshold) {
			return true
		}
	}
	return false
}

// DetectReset returns ActionResetEasy, ActionResetNormal or ActionNone.
func (d *Detector) DetectReset(c Counters, threshold int8) Action {
	if d.allPressed(c, d.cal.Reset[ResetEasySlot][:], threshold) {
		return ActionResetEasy
	}
	if d.allPressed(c, d.cal.Reset[ResetNormalSlot][:], threshold) {
		return ActionResetNormal
	}
	return ActionNone
}

// DetermineAction checks resets first, then undo, then rotations.
func (d *Detector) DetermineAction(c Counters, threshold int8) Action {
	if a := d.DetectReset(c, threshold); a != ActionNone {
		return a
	}
	if d.DetectUndo(c, threshold) {
		return ActionUndo
	}
	return RotationAction(d.DetectRotation(c, threshold))
}

// UpdateBrightness lights the facelet under every pressed sensor plus the
// face a turn is pending on. It reports whether any facelet changed.
func (d *Detector) UpdateBrightness(cb *cube.Cube, c Counters) bool {
	before := cb.Facelets()

	cb.DimAll()
	for s, n := range c {
		if n > 0 {
			cb.Brighten(int(d.cal.Facelets[s]))
		}
	}
	if r := d.DetectRotation(c, 1); r != cube.None {
		cb.BrightenFace(r.Face())
	}

	return cb.Facelets() != before
}
