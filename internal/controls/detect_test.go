package controls

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/touchcube/internal/cube"
)

// press returns counters with the given sensors at n and everything else 0.
func press(n int8, sensors ...uint8) Counters {
	var c Counters
	for _, s := range sensors {
		c[s] = n
	}
	return c
}

func TestEveryGestureIsRecognised(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)

	actions := []Action{ActionUndo, ActionResetEasy, ActionResetNormal}
	for r := cube.Rotation(0); r < cube.NumRotations; r++ {
		actions = append(actions, RotationAction(r))
	}

	for _, a := range actions {
		c := press(10, cal.GestureSensors(a)...)
		if got := d.DetermineAction(c, 10); got != a {
			t.Errorf("%v: DetermineAction = %v", a, got)
		}
	}
}

func TestAlternatePatterns(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)

	for _, f := range cube.Faces {
		m := cal.Rotations[f]
		if got := d.DetectRotation(press(5, m[2], m[6]), 5); got != cube.NewRotation(f, cube.CW) {
			t.Errorf("%v 0x44: got %v", f, got)
		}
		if got := d.DetectRotation(press(5, m[3], m[7]), 5); got != cube.NewRotation(f, cube.CCW) {
			t.Errorf("%v 0x88: got %v", f, got)
		}
	}
}

func TestDetectionThreshold(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)
	sensors := cal.GestureSensors(RotationAction(cube.RightCW))

	if got := d.DetectRotation(press(9, sensors...), 10); got != cube.None {
		t.Errorf("below threshold: got %v", got)
	}
	if got := d.DetectRotation(press(10, sensors...), 10); got != cube.RightCW {
		t.Errorf("at threshold: got %v", got)
	}
	if got := d.DetectRotation(press(-20, sensors...), 1); got != cube.None {
		t.Errorf("released sensors: got %v", got)
	}
}

func TestExtraSensorBreaksPattern(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)
	m := cal.Rotations[cube.Front]

	c := press(10, m[0], m[4], m[1])
	if got := d.DetectRotation(c, 10); got != cube.None {
		t.Errorf("three sensors: got %v", got)
	}
}

func TestAmbiguousRotationIsNone(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)

	top := cal.GestureSensors(RotationAction(cube.TopCW))
	bottom := cal.GestureSensors(RotationAction(cube.BottomCW))
	c := press(10, append(top, bottom...)...)

	if got := d.DetectRotation(c, 10); got != cube.None {
		t.Errorf("two faces pressed: got %v", got)
	}
	if got := d.DetermineAction(c, 10); got != ActionNone {
		t.Errorf("DetermineAction = %v, want none", got)
	}
}

func TestEveryUndoVertex(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)

	for v, sensors := range cal.Undo {
		if !d.DetectUndo(press(3, sensors[:]...), 3) {
			t.Errorf("vertex %d not detected", v)
		}
		if d.DetectUndo(press(3, sensors[:2]...), 3) {
			t.Errorf("vertex %d detected with two sensors", v)
		}
	}
}

func TestResetTakesPriority(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)

	sensors := append(cal.GestureSensors(ActionResetNormal), cal.GestureSensors(ActionUndo)...)
	if got := d.DetermineAction(press(10, sensors...), 10); got != ActionResetNormal {
		t.Errorf("got %v, want reset-normal", got)
	}

	sensors = append(cal.GestureSensors(ActionUndo), cal.GestureSensors(RotationAction(cube.LeftCCW))...)
	if got := d.DetermineAction(press(10, sensors...), 10); got != ActionUndo {
		t.Errorf("got %v, want undo", got)
	}
}

func TestUpdateBrightness(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)
	c := cube.New()

	if d.UpdateBrightness(c, Counters{}) {
		t.Error("nothing pressed on a dim cube should not change anything")
	}

	counters := press(1, cal.GestureSensors(RotationAction(cube.BackCCW))...)
	if !d.UpdateBrightness(c, counters) {
		t.Fatal("pressing should report a change")
	}

	lit := make(map[int]bool)
	for _, i := range cube.TableFor(cube.Back).Affected() {
		lit[int(i)] = true
	}
	for s, n := range counters {
		if n > 0 {
			lit[int(cal.Facelets[s])] = true
		}
	}
	for i := 0; i < cube.NumFacelets; i++ {
		if c.At(i).IsBright() != lit[i] {
			t.Errorf("facelet %d bright = %v, want %v", i, c.At(i).IsBright(), lit[i])
		}
	}

	if d.UpdateBrightness(c, counters) {
		t.Error("same counters should not report a change")
	}

	if !d.UpdateBrightness(c, Counters{}) {
		t.Error("releasing should report a change")
	}
	if !c.IsSolved() {
		t.Error("brightness must not touch colours")
	}
}

func TestPressedSensorLightsItsFacelet(t *testing.T) {
	cal := DefaultCalibration()
	d := NewDetector(cal)

	for s := 0; s < NumSensors; s++ {
		c := cube.New()
		d.UpdateBrightness(c, press(1, uint8(s)))
		if !c.At(int(cal.Facelets[s])).IsBright() {
			t.Errorf("sensor %d did not light facelet %d", s, cal.Facelets[s])
		}
	}
}

// cornerSensor maps a corner facelet back to the sensor sitting on it.
func cornerSensor(t *testing.T, facelet uint8) uint8 {
	t.Helper()
	face := facelet / cube.NumFaceletsPerFace
	pos := facelet % cube.NumFaceletsPerFace
	for k, p := range cornerPositions {
		if p == pos {
			return face*4 + uint8(k)
		}
	}
	t.Fatalf("facelet %d is not a corner", facelet)
	return 0
}

func TestDefaultRotationMapsFollowTables(t *testing.T) {
	cal := DefaultCalibration()
	for _, f := range cube.Faces {
		side := cube.TableFor(f).Side
		var want [RotationMapSize]uint8
		for k := 0; k < 4; k++ {
			want[2*k] = cornerSensor(t, side[3*k])
			want[2*k+1] = cornerSensor(t, side[3*k+2])
		}
		if cal.Rotations[f] != want {
			t.Errorf("%v: map %v, derived %v", f, cal.Rotations[f], want)
		}
	}
}

func TestDefaultUndoMapsCoverEverySensorOnce(t *testing.T) {
	cal := DefaultCalibration()
	seen := make(map[uint8]int)
	for v, sensors := range cal.Undo {
		faces := make(map[uint8]bool)
		for _, s := range sensors {
			seen[s]++
			faces[s/4] = true
		}
		if len(faces) != 3 {
			t.Errorf("vertex %d spans %d faces", v, len(faces))
		}
	}
	for s := uint8(0); s < NumSensors; s++ {
		if seen[s] != 1 {
			t.Errorf("sensor %d used %d times", s, seen[s])
		}
	}
}

func TestCalibrationValidate(t *testing.T) {
	if err := DefaultCalibration().Validate(); err != nil {
		t.Fatalf("default calibration: %v", err)
	}
	cal := DefaultCalibration()

	bad := cal
	bad.Rotations[cube.Left][3] = NumSensors
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("sensor out of range: err = %v", err)
	}

	bad = cal
	bad.Undo[2][1] = bad.Undo[2][0]
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("duplicate sensor: err = %v", err)
	}

	bad = cal
	bad.Facelets[0] = cube.NumFacelets
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("facelet out of range: err = %v", err)
	}
}

func TestGestureSensorsOnReturnedCalibration(t *testing.T) {
	got := DefaultCalibration().GestureSensors(ActionUndo)
	cal := DefaultCalibration()
	if len(got) != 3 || got[0] != cal.Undo[0][0] {
		t.Errorf("GestureSensors(undo) = %v", got)
	}
	if DefaultCalibration().GestureSensors(ActionNone) != nil {
		t.Error("ActionNone should have no sensors")
	}
}

func TestActionStrings(t *testing.T) {
	for _, a := range []Action{ActionNone, ActionUndo, ActionResetEasy, ActionResetNormal, RotationAction(cube.FrontCCW)} {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if RotationAction(cube.None) != ActionNone {
		t.Error("RotationAction(None) should be ActionNone")
	}
	if !ActionResetEasy.IsReset() || ActionUndo.IsReset() {
		t.Error("IsReset")
	}
}
