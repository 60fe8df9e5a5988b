package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

// ReplayedAction is one gesture committed during a replay.
type ReplayedAction struct {
	FrameIndex int
	Action     string
	Rotation   string
	Scramble   string
}

// Mismatch describes a divergence between the recording and the replay.
type Mismatch struct {
	Index    int
	Recorded *ReplayedAction
	Replayed *ReplayedAction
}

func (m Mismatch) String() string {
	describe := func(a *ReplayedAction) string {
		if a == nil {
			return "nothing"
		}
		return fmt.Sprintf("%s (%s) at frame %d", a.Action, a.Rotation, a.FrameIndex)
	}
	return fmt.Sprintf("action %d: recorded %s, replayed %s", m.Index, describe(m.Recorded), describe(m.Replayed))
}

// Report is the result of replaying a session.
type Report struct {
	SessionID  string
	Frames     int
	Actions    []ReplayedAction
	Recorded   int
	FinalPhase touchcube.Phase
	Solved     bool
	Final      touchcube.Frame
	Mismatches []Mismatch
}

// OK reports whether the replay matched the recording.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Replay feeds a session's frames through a fresh game, one step per frame,
// and compares the committed gestures with the recorded ones. It does not
// sleep between frames.
func Replay(ctx context.Context, db *storage.DB, sessionID string, base *config.Config, log logrus.FieldLogger) (*Report, error) {
	player, err := NewPlayer(db, sessionID)
	if err != nil {
		return nil, err
	}

	if base == nil {
		base = config.Default()
	}
	cfg, err := player.Config(base)
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	if log != nil {
		opts = append(opts, touchcube.WithLogger(log))
	}
	game, err := touchcube.NewGame(opts...)
	if err != nil {
		return nil, err
	}

	report := &Report{SessionID: sessionID}

	game.Controller().OnAction(func(o touchcube.Outcome) {
		a := ReplayedAction{
			FrameIndex: player.Position() - 1,
			Action:     o.Action.String(),
			Rotation:   o.Rotation.String(),
		}
		if len(o.Scramble) > 0 {
			a.Scramble = touchcube.FormatRotations(o.Scramble)
		}
		report.Actions = append(report.Actions, a)
	})

	for {
		r, err := player.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		game.Step(r)
		report.Frames++
	}

	recorded, err := storage.NewActionRepository(db).GetBySession(sessionID)
	if err != nil {
		return nil, err
	}
	report.Recorded = len(recorded)
	report.Mismatches = compare(recorded, report.Actions)
	report.FinalPhase = game.Phase()
	report.Solved = game.Controller().IsSolved()
	report.Final = game.Controller().Facelets()

	if log != nil {
		log.WithFields(logrus.Fields{
			"session":    sessionID,
			"frames":     report.Frames,
			"actions":    len(report.Actions),
			"mismatches": len(report.Mismatches),
		}).Info("replay finished")
	}

	return report, nil
}

func compare(recorded []storage.ActionRecord, replayed []ReplayedAction) []Mismatch {
	var out []Mismatch
	n := max(len(recorded), len(replayed))
	for i := 0; i < n; i++ {
		var rec, rep *ReplayedAction
		if i < len(recorded) {
			r := recorded[i]
			rec = &ReplayedAction{FrameIndex: r.FrameIndex, Action: r.Action, Rotation: r.Rotation}
			if r.Scramble != nil {
				rec.Scramble = *r.Scramble
			}
		}
		if i < len(replayed) {
			r := replayed[i]
			rep = &r
		}
		if rec == nil || rep == nil || *rec != *rep {
			out = append(out, Mismatch{Index: i, Recorded: rec, Replayed: rep})
		}
	}
	return out
}
