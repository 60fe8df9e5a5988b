package touchcube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Phase is a stage of a game.
type Phase int

const (
	PhaseScrambling Phase = iota
	PhasePlaying
	PhaseVictory
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseScrambling:
		return "scrambling"
	case PhasePlaying:
		return "playing"
	case PhaseVictory:
		return "victory"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// SensorReader supplies one sample of every sensor per read cycle.
type SensorReader interface {
	Read(ctx context.Context) (Readings, error)
}

// Display shows a frame of facelets.
type Display interface {
	Show(frame Frame) error
}

// ReaderFunc adapts a function to SensorReader.
type ReaderFunc func(ctx context.Context) (Readings, error)

// Read calls f(ctx).
func (f ReaderFunc) Read(ctx context.Context) (Readings, error) {
	return f(ctx)
}

// Game sequences a full play: scramble at boot, play until solved, run the
// victory animation, then wait for a reset gesture to start again.
type Game struct {
	ctl   *Controller
	cfg   *config
	log   logrus.FieldLogger
	phase Phase

	onPhaseChange func(Phase)
}

// NewGame creates a game in the scrambling phase.
func NewGame(opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Game{
		ctl:   newController(cfg),
		cfg:   cfg,
		log:   cfg.logger,
		phase: PhaseScrambling,
	}, nil
}

// Controller returns the controller the game drives.
func (g *Game) Controller() *Controller {
	return g.ctl
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// OnPhaseChange registers a callback fired on every phase transition.
func (g *Game) OnPhaseChange(cb func(Phase)) {
	g.onPhaseChange = cb
}

func (g *Game) setPhase(p Phase) {
	if p == g.phase {
		return
	}
	g.log.WithFields(logrus.Fields{
		"from": g.phase.String(),
		"to":   p.String(),
	}).Info("phase changed")
	g.phase = p
	g.ctl.AllowTurns(p == PhasePlaying)
	if g.onPhaseChange != nil {
		g.onPhaseChange(p)
	}
}

// Step runs one control cycle and returns how long to wait before the next.
// It never blocks.
func (g *Game) Step(r Readings) time.Duration {
	if g.phase == PhaseScrambling {
		g.ctl.ScrambleNormal()
		g.setPhase(PhasePlaying)
		return g.cfg.cyclePeriod
	}

	out := g.ctl.Cycle(r)

	if !g.ctl.IsIdle() {
		if d := g.ctl.Next(); d > 0 {
			return d
		}
	}

	switch g.phase {
	case PhasePlaying:
		if g.ctl.IsSolved() {
			if err := g.ctl.ArmVictory(); err == nil {
				g.setPhase(PhaseVictory)
				if d := g.ctl.Next(); d > 0 {
					return d
				}
			}
			g.setPhase(PhaseWon)
		}
	case PhaseVictory:
		g.setPhase(PhaseWon)
	case PhaseWon:
		if out.Action.IsReset() {
			g.setPhase(PhasePlaying)
		}
	}

	return g.cfg.cyclePeriod
}

// Run reads sensors, steps the game and refreshes the display until ctx is
// cancelled or the reader is exhausted. Reaching the end of the reader
// (io.EOF) is not an error.
func (g *Game) Run(ctx context.Context, reader SensorReader, display Display) error {
	var shown Frame
	first := true

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		r, err := reader.Read(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read sensors: %w", err)
		}

		delay := g.Step(r)

		if frame := g.ctl.Facelets(); first || frame != shown {
			if err := display.Show(frame); err != nil {
				return fmt.Errorf("failed to refresh display: %w", err)
			}
			shown = frame
			first = false
		}

		timer.Reset(delay)
	}
}
