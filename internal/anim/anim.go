// Package anim drives multi-frame cube animations without blocking.
//
// An Animator is armed with a turn or the victory sequence, then stepped by
// calling Next. Each call mutates the cube for one frame and returns how long
// the caller should wait before calling again. Zero means the animation is
// over and the animator is idle.
package anim

import (
	"errors"
	"time"

	"github.com/SeamusWaldron/touchcube/internal/cube"
)

// ErrBusy is returned when arming an animator that is still running.
var ErrBusy = errors.New("anim: animation in progress")

// State is the step an animator will perform on the next call to Next.
type State uint8

const (
	Idle State = iota
	Rotating
	Victory
	Finishing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rotating:
		return "rotating"
	case Victory:
		return "victory"
	case Finishing:
		return "finishing"
	default:
		return "unknown"
	}
}

// rotationFrames is the number of frames of a quarter turn: side+front,
// side, side+front.
const rotationFrames = 3

// Timing configures frame delays and the victory sequence.
type Timing struct {
	RotationFrame   time.Duration
	VictoryFrame    time.Duration
	VictoryFrames   int
	VictoryFacelets int
}

// DefaultTiming returns the reference animation timing.
func DefaultTiming() Timing {
	return Timing{
		RotationFrame:   150 * time.Millisecond,
		VictoryFrame:    400 * time.Millisecond,
		VictoryFrames:   15,
		VictoryFacelets: 25,
	}
}

// Animator steps animations on a cube. It is not safe for concurrent use.
type Animator struct {
	cube   *cube.Cube
	rng    cube.Source
	timing Timing

	state    State
	rotation cube.Rotation
	step     int
}

// New creates an idle animator for c. rng supplies victory sparkles.
func New(c *cube.Cube, rng cube.Source, timing Timing) *Animator {
	return &Animator{
		cube:     c,
		rng:      rng,
		timing:   timing,
		rotation: cube.None,
	}
}

// State returns the current state.
func (a *Animator) State() State {
	return a.state
}

// IsIdle reports whether no animation is running.
func (a *Animator) IsIdle() bool {
	return a.state == Idle
}

// Rotation returns the turn being animated, or cube.None.
func (a *Animator) Rotation() cube.Rotation {
	if a.state != Rotating {
		return cube.None
	}
	return a.rotation
}

// ArmRotation starts animating a quarter turn: the board is dimmed and the
// turning face lit. An invalid rotation is ignored.
func (a *Animator) ArmRotation(r cube.Rotation) error {
	if !a.IsIdle() {
		return ErrBusy
	}
	if !r.Valid() {
		return nil
	}
	a.cube.DimAll()
	a.cube.BrightenFace(r.Face())
	a.state = Rotating
	a.rotation = r
	a.step = 0
	return nil
}

// ArmVictory starts the victory sequence.
func (a *Animator) ArmVictory() error {
	if !a.IsIdle() {
		return ErrBusy
	}
	a.state = Victory
	a.step = 0
	return nil
}

// Next performs one frame and returns the delay before the next call.
func (a *Animator) Next() time.Duration {
	switch a.state {
	case Rotating:
		return a.nextRotation()
	case Victory:
		return a.nextVictory()
	case Finishing:
		a.cube.DimAll()
		a.state = Idle
		a.rotation = cube.None
		a.step = 0
		return 0
	default:
		return 0
	}
}

func (a *Animator) nextRotation() time.Duration {
	a.cube.RotateSideStep(a.rotation)
	if a.step != 1 {
		a.cube.RotateFrontStep(a.rotation)
	}

	a.step++
	if a.step == rotationFrames {
		a.state = Finishing
	}
	return a.timing.RotationFrame
}

func (a *Animator) nextVictory() time.Duration {
	if a.step >= a.timing.VictoryFrames {
		a.state = Finishing
		return a.Next()
	}

	a.cube.DimAll()
	for i := 0; i < a.timing.VictoryFacelets; i++ {
		a.cube.Brighten(int(a.rng.Range(0, cube.NumFacelets-1)))
	}

	a.step++
	if a.step == a.timing.VictoryFrames {
		a.state = Finishing
	}
	return a.timing.VictoryFrame
}
