package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/display"
	"github.com/SeamusWaldron/touchcube/internal/recorder"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play on a virtual cube in the terminal",
	Long: `Run the full game loop with the keyboard standing in for the finger sensors.

Each key holds the sensors of one gesture long enough for it to be recognised,
so debouncing, animation and victory behave exactly as on the hardware.

Keys:
  u f r b l d    turn a face clockwise
  U F R B L D    turn a face counter-clockwise
  z              undo the last turn
  e / n          easy / normal reset
  q              quit`,
	RunE: runSimulate,
}

var (
	simulateRecord  bool
	simulateNotes   string
	simulatePlain   bool
	simulateLogFile string
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().BoolVar(&simulateRecord, "record", false, "Record the session to the database")
	simulateCmd.Flags().StringVar(&simulateNotes, "notes", "", "Notes stored with a recorded session")
	simulateCmd.Flags().BoolVar(&simulatePlain, "plain", false, "Draw facelets as letters instead of colours")
	simulateCmd.Flags().StringVar(&simulateLogFile, "log-file", "", "Write logs to this file")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	phaseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	moveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// keyGestures maps keys to the gesture they perform.
var keyGestures = map[string]touchcube.Action{
	"u": touchcube.RotationAction(touchcube.U),
	"f": touchcube.RotationAction(touchcube.F),
	"r": touchcube.RotationAction(touchcube.R),
	"b": touchcube.RotationAction(touchcube.B),
	"l": touchcube.RotationAction(touchcube.L),
	"d": touchcube.RotationAction(touchcube.D),
	"U": touchcube.RotationAction(touchcube.UPrime),
	"F": touchcube.RotationAction(touchcube.FPrime),
	"R": touchcube.RotationAction(touchcube.RPrime),
	"B": touchcube.RotationAction(touchcube.BPrime),
	"L": touchcube.RotationAction(touchcube.LPrime),
	"D": touchcube.RotationAction(touchcube.DPrime),
	"z": touchcube.ActionUndo,
	"e": touchcube.ActionResetEasy,
	"n": touchcube.ActionResetNormal,
}

// keyReader is a SensorReader fed by key presses. A press holds the
// gesture's sensors for a fixed number of reads.
type keyReader struct {
	held touchcube.Readings
	left int
}

func (k *keyReader) press(r touchcube.Readings, reads int) {
	k.held = r
	k.left = reads
}

func (k *keyReader) Read(ctx context.Context) (touchcube.Readings, error) {
	if err := ctx.Err(); err != nil {
		return touchcube.Readings{}, err
	}
	if k.left == 0 {
		return touchcube.Readings{}, nil
	}
	k.left--
	return k.held, nil
}

type stepMsg time.Time

type simulateModel struct {
	game    *touchcube.Game
	keys    *keyReader
	reader  touchcube.SensorReader
	session *recorder.Session
	cal     touchcube.Calibration
	hold    int
	plain   bool

	actions []string
	reads   int
	err     error
	quit    bool
}

func newSimulateModel(cfg *config.Config, log logrus.FieldLogger, session *recorder.Session, keys *keyReader) (*simulateModel, error) {
	game, err := touchcube.NewGame(append(cfg.Options(), touchcube.WithLogger(log))...)
	if err != nil {
		return nil, err
	}

	m := &simulateModel{
		game:    game,
		keys:    keys,
		reader:  keys,
		session: session,
		cal:     cfg.CalibrationOrDefault(),
		hold:    int(cfg.Threshold) + int(cfg.Threshold)/2,
		plain:   simulatePlain,
	}
	if session != nil {
		m.reader = session
	}

	game.Controller().OnAction(func(o touchcube.Outcome) {
		if session != nil {
			session.RecordAction(o)
		}
		text := o.Action.String()
		if o.Action == touchcube.ActionUndo {
			text += " (" + o.Rotation.String() + ")"
		}
		m.actions = append(m.actions, text)
	})
	game.OnPhaseChange(func(p touchcube.Phase) {
		if session != nil {
			session.RecordPhase(p)
		}
	})

	return m, nil
}

func (m *simulateModel) Init() tea.Cmd {
	return m.next(0)
}

func (m *simulateModel) next(d time.Duration) tea.Cmd {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return stepMsg(t)
	})
}

func (m *simulateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
		if a, ok := keyGestures[key]; ok {
			m.keys.press(touchcube.ReadingsOf(m.cal.GestureSensors(a)...), m.hold)
		}

	case stepMsg:
		r, err := m.reader.Read(context.Background())
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.reads++
		return m, m.next(m.game.Step(r))
	}

	return m, nil
}

func (m *simulateModel) View() string {
	if m.quit {
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("touchcube"))
	if m.session != nil {
		b.WriteString(statusStyle.Render("  [REC " + shortID(m.session.SessionID()) + "]"))
	}
	b.WriteString("\n\n")

	frame := m.game.Controller().Facelets()
	if m.plain {
		b.WriteString(display.RenderPlain(frame))
	} else {
		b.WriteString(display.Render(frame))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Phase: %s", phaseStyle.Render(m.game.Phase().String())))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  reads: %d", m.reads)))
	b.WriteString("\n")

	if hist := m.game.Controller().History(); len(hist) > 0 {
		b.WriteString("Undo stack: ")
		b.WriteString(moveStyle.Render(touchcube.FormatRotations(hist)))
		b.WriteString("\n")
	}

	if len(m.actions) > 0 {
		start := 0
		b.WriteString("Gestures: ")
		if len(m.actions) > 12 {
			start = len(m.actions) - 12
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(strings.Join(m.actions[start:], " ")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ufrbld=turn  shift=reverse  z=undo  e/n=reset  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	log.SetOutput(io.Discard)
	if simulateLogFile != "" {
		f, err := os.OpenFile(simulateLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	keys := &keyReader{}

	var (
		db      *storage.DB
		session *recorder.Session
	)
	if simulateRecord {
		db, err = openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		session = recorder.NewSession(db, keys, log)
		if _, err := session.Start(cfg, simulateNotes); err != nil {
			return err
		}
	}

	model, err := newSimulateModel(cfg, log, session, keys)
	if err != nil {
		if session != nil {
			session.End()
		}
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("simulator error: %w", err)
	}

	if session != nil {
		if err := session.End(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded session %s: %d frames, %d gestures\n",
			session.SessionID(), session.FrameCount(), session.ActionCount())
	}

	return model.err
}
