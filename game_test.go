package touchcube

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

func fastOptions(extra ...Option) []Option {
	opts := []Option{
		WithThreshold(2),
		WithRotationDelay(time.Microsecond),
		WithVictory(time.Microsecond, 3, 5),
		WithCyclePeriod(0),
	}
	return append(opts, extra...)
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(fastOptions(opts...)...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// stepUntilIdle steps with no sensors pressed until the controller is idle.
func stepUntilIdle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; !g.Controller().IsIdle(); i++ {
		if i > 100 {
			t.Fatal("animation did not terminate")
		}
		g.Step(Readings{})
	}
}

func press(g *Game, a Action, cycles int) {
	r := gesture(g.Controller(), a)
	for i := 0; i < cycles; i++ {
		g.Step(r)
	}
}

func TestGameBootScrambles(t *testing.T) {
	g := newTestGame(t)
	if g.Phase() != PhaseScrambling {
		t.Fatalf("phase = %v", g.Phase())
	}

	if d := g.Step(Readings{}); d != 0 {
		t.Errorf("delay = %v, want cycle period 0", d)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v", g.Phase())
	}
	if n := len(g.Controller().LastScramble()); n != DefaultNormalScramble {
		t.Errorf("scramble length = %d", n)
	}
	if g.Controller().IsSolved() {
		t.Error("cube should be scrambled")
	}
}

func TestGamePlayToVictory(t *testing.T) {
	g := newTestGame(t, WithScrambleLengths(1, 2))
	var phases []Phase
	g.OnPhaseChange(func(p Phase) { phases = append(phases, p) })

	g.Step(Readings{})
	scramble := g.Controller().LastScramble()
	if len(scramble) != 2 {
		t.Fatalf("scramble = %v", scramble)
	}

	for i := len(scramble) - 1; i >= 0; i-- {
		press(g, RotationAction(scramble[i].Inverse()), 2)
		stepUntilIdle(t, g)
	}

	// Solving arms the victory animation, which runs to completion.
	if g.Phase() != PhaseWon {
		t.Fatalf("phase = %v, want won", g.Phase())
	}
	if !g.Controller().IsSolved() {
		t.Log(g.Controller().String())
		t.Fatal("cube should be solved")
	}

	// Turns are ignored once won.
	press(g, RotationAction(F), 3)
	stepUntilIdle(t, g)
	if !g.Controller().IsSolved() || len(g.Controller().History()) != 2 {
		t.Error("turn accepted after winning")
	}

	press(g, ActionResetEasy, 2)
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", g.Phase())
	}
	if n := len(g.Controller().LastScramble()); n != 1 {
		t.Errorf("easy scramble length = %d", n)
	}

	want := []Phase{PhasePlaying, PhaseVictory, PhaseWon, PhasePlaying}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v", phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d = %v, want %v", i, phases[i], want[i])
		}
	}
}

func TestGameResetWhilePlaying(t *testing.T) {
	g := newTestGame(t, WithScrambleLengths(4, 6))
	g.Step(Readings{})

	press(g, ActionResetEasy, 2)
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v", g.Phase())
	}
	if n := len(g.Controller().LastScramble()); n != 4 {
		t.Errorf("scramble length = %d", n)
	}
}

type scriptReader struct {
	script []Readings
	reads  int
}

func (s *scriptReader) Read(ctx context.Context) (Readings, error) {
	if err := ctx.Err(); err != nil {
		return Readings{}, err
	}
	if s.reads >= len(s.script) {
		return Readings{}, io.EOF
	}
	r := s.script[s.reads]
	s.reads++
	return r, nil
}

type recordingDisplay struct {
	frames []Frame
	err    error
}

func (d *recordingDisplay) Show(f Frame) error {
	d.frames = append(d.frames, f)
	return d.err
}

func TestGameRunUntilEOF(t *testing.T) {
	g := newTestGame(t, WithScrambleLengths(1, 1))
	cal := DefaultCalibration()
	turn := ReadingsOf(cal.GestureSensors(RotationAction(R))...)

	reader := &scriptReader{script: []Readings{{}, turn, turn, {}, {}, {}, {}, {}}}
	display := &recordingDisplay{}

	if err := g.Run(context.Background(), reader, display); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reader.reads != len(reader.script) {
		t.Errorf("reads = %d", reader.reads)
	}
	if len(display.frames) < 2 {
		t.Errorf("display refreshed %d times", len(display.frames))
	}
	last := display.frames[len(display.frames)-1]
	if last != g.Controller().Facelets() {
		t.Error("last frame shown is stale")
	}
	if h := g.Controller().History(); len(h) != 1 || h[0] != R {
		t.Errorf("history = %v", h)
	}
}

func TestGameRunCancelled(t *testing.T) {
	g := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reads := 0
	reader := ReaderFunc(func(ctx context.Context) (Readings, error) {
		reads++
		if reads == 5 {
			cancel()
		}
		if err := ctx.Err(); err != nil {
			return Readings{}, err
		}
		return Readings{}, nil
	})

	err := g.Run(ctx, reader, &recordingDisplay{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestGameRunDisplayError(t *testing.T) {
	g := newTestGame(t)
	boom := errors.New("strip unplugged")
	err := g.Run(context.Background(), &scriptReader{script: []Readings{{}}}, &recordingDisplay{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}
