package touchcube

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/touchcube/internal/anim"
	"github.com/SeamusWaldron/touchcube/internal/controls"
	"github.com/SeamusWaldron/touchcube/internal/cube"
	"github.com/SeamusWaldron/touchcube/internal/rand8"
)

// Outcome reports what one control cycle did.
type Outcome struct {
	// Action is the committed gesture, or ActionNone.
	Action Action

	// Rotation is the turn being animated: the gesture's own turn, or for
	// undo the inverse of the popped turn. NoRotation otherwise.
	Rotation Rotation

	// Scramble holds the turns applied by a reset gesture.
	Scramble []Rotation

	// Changed reports whether the facelets differ from the previous cycle.
	Changed bool
}

// Controller owns the whole cube state: facelets, sensor counters, undo
// history, animation and random source. It is not safe for concurrent use;
// the control loop owns it.
type Controller struct {
	cfg *config
	log logrus.FieldLogger

	cube      *cube.Cube
	rng       *rand8.Rand
	debouncer *controls.Debouncer
	detector  *controls.Detector
	history   *controls.History
	animator  *anim.Animator

	allowTurns   bool
	lastScramble []Rotation
	onAction     func(Outcome)
}

// NewController creates a controller holding a solved, dim cube.
func NewController(opts ...Option) (*Controller, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return newController(cfg), nil
}

func newController(cfg *config) *Controller {
	c := &Controller{
		cfg:        cfg,
		log:        cfg.logger,
		cube:       cube.New(),
		rng:        rand8.New(cfg.seed),
		debouncer:  controls.NewDebouncer(),
		detector:   controls.NewDetector(cfg.calibration),
		history:    controls.NewHistory(),
		allowTurns: true,
	}
	c.animator = anim.New(c.cube, c.rng, cfg.timing)
	return c
}

// OnAction registers a callback fired after every committed gesture.
func (c *Controller) OnAction(cb func(Outcome)) {
	c.onAction = cb
}

// AllowTurns enables or disables turn and undo gestures. Resets are always
// accepted.
func (c *Controller) AllowTurns(allow bool) {
	c.allowTurns = allow
}

// Cycle runs one control cycle for a fresh sensor sample.
//
// Counters are always updated. While an animation runs nothing else happens;
// the caller drives the animation with Next. Otherwise the brightness preview
// is refreshed and a gesture committed if one is recognised.
func (c *Controller) Cycle(r Readings) Outcome {
	c.debouncer.UpdateAll(r)

	out := Outcome{Action: ActionNone, Rotation: NoRotation}
	if !c.animator.IsIdle() {
		return out
	}

	counters := c.debouncer.Counters()
	out.Changed = c.detector.UpdateBrightness(c.cube, counters)

	a := c.detector.DetermineAction(counters, c.cfg.threshold)
	if a == ActionNone {
		return out
	}
	if !a.IsReset() && !c.allowTurns {
		return out
	}

	c.commit(a, &out)
	return out
}

func (c *Controller) commit(a Action, out *Outcome) {
	switch {
	case a == ActionUndo:
		popped := c.history.Pop()
		if popped == cube.None {
			c.log.Debug("undo with empty history")
			break
		}
		out.Rotation = popped.Inverse()
		c.arm(out.Rotation)

	case a.IsReset():
		n := c.cfg.normalScramble
		if a == ActionResetEasy {
			n = c.cfg.easyScramble
		}
		out.Scramble = c.Scramble(n)

	default:
		r, _ := a.Rotation()
		c.history.Push(r)
		out.Rotation = r
		c.arm(r)
	}

	out.Action = a
	out.Changed = true
	c.debouncer.Reset()

	c.log.WithFields(logrus.Fields{
		"action":   a.String(),
		"rotation": out.Rotation.String(),
	}).Debug("gesture committed")

	if c.onAction != nil {
		c.onAction(*out)
	}
}

// Next steps the running animation and returns the delay before the next
// call. Zero means the controller is idle.
func (c *Controller) Next() time.Duration {
	return c.animator.Next()
}

// arm starts the turn animation for a committed gesture. Cycle only commits
// while idle, so a failure means the animator was armed behind its back.
func (c *Controller) arm(r Rotation) {
	if err := c.animator.ArmRotation(r); err != nil {
		c.log.WithError(err).WithField("rotation", r.String()).Warn("turn animation not started")
	}
}

// IsIdle reports whether no animation is running.
func (c *Controller) IsIdle() bool {
	return c.animator.IsIdle()
}

// ArmVictory starts the victory animation.
func (c *Controller) ArmVictory() error {
	return c.animator.ArmVictory()
}

// Rotate animates a turn as if its gesture had been committed.
func (c *Controller) Rotate(r Rotation) error {
	if err := c.animator.ArmRotation(r); err != nil {
		return err
	}
	if r.Valid() {
		c.history.Push(r)
	}
	return nil
}

// Apply performs turns immediately, without animation, and records them in
// the undo history. Invalid rotations are skipped.
func (c *Controller) Apply(rs ...Rotation) {
	for _, r := range rs {
		if !r.Valid() {
			continue
		}
		c.cube.Rotate(r)
		c.history.Push(r)
	}
}

// Reset solves and dims the cube and forgets history and sensor state.
// A running animation is abandoned.
func (c *Controller) Reset() {
	c.cube.Reset()
	c.history.Clear()
	c.debouncer.Reset()
	c.animator = anim.New(c.cube, c.rng, c.cfg.timing)
}

// Scramble resets the controller, then applies n random turns without
// animation. It returns the turns applied.
func (c *Controller) Scramble(n int) []Rotation {
	c.Reset()
	rs := c.cube.Scramble(n, c.rng)
	c.lastScramble = rs
	c.log.WithField("turns", cube.FormatRotations(rs)).Info("cube scrambled")
	return rs
}

// LastScramble returns the turns applied by the most recent scramble.
func (c *Controller) LastScramble() []Rotation {
	return append([]Rotation(nil), c.lastScramble...)
}

// ScrambleEasy scrambles with the reset-easy length.
func (c *Controller) ScrambleEasy() []Rotation {
	return c.Scramble(c.cfg.easyScramble)
}

// ScrambleNormal scrambles with the reset-normal length.
func (c *Controller) ScrambleNormal() []Rotation {
	return c.Scramble(c.cfg.normalScramble)
}

// IsSolved reports whether every face shows a single colour.
func (c *Controller) IsSolved() bool {
	return c.cube.IsSolved()
}

// Facelets returns a snapshot of the 54 facelets.
func (c *Controller) Facelets() Frame {
	return c.cube.Facelets()
}

// Counters returns a snapshot of the sensor counters.
func (c *Controller) Counters() Counters {
	return c.debouncer.Counters()
}

// History returns the undo history, most recent first.
func (c *Controller) History() []Rotation {
	e := c.history.Entries()
	return append([]Rotation(nil), e[:c.history.Len()]...)
}

// Calibration returns the sensor geometry in use.
func (c *Controller) Calibration() Calibration {
	return c.detector.Calibration()
}

// Seed returns the seed the random source started from.
func (c *Controller) Seed() uint8 {
	return c.cfg.seed
}

// String renders the cube as an unfolded net.
func (c *Controller) String() string {
	return c.cube.String()
}
