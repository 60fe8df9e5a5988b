// Package recorder records play sessions to the database and replays them.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

// Errors returned by Session.
var (
	ErrRecording    = errors.New("recorder: session already in progress")
	ErrNotRecording = errors.New("recorder: no session in progress")
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// frameBatch is the number of frames buffered before they are written.
const frameBatch = 64

// Session records every sensor sample, committed gesture and phase change
// of a game. It wraps the game's SensorReader.
type Session struct {
	db     *storage.DB
	reader touchcube.SensorReader
	log    logrus.FieldLogger

	mu         sync.Mutex
	state      SessionState
	sessionID  string
	startTime  time.Time
	frameIndex int
	pending    []storage.Frame
	actions    int
	lastErr    error

	sessionRepo *storage.SessionRepository
	frameRepo   *storage.FrameRepository
	actionRepo  *storage.ActionRepository
	phaseRepo   *storage.PhaseRepository
}

// NewSession creates a recorder reading from reader.
func NewSession(db *storage.DB, reader touchcube.SensorReader, log logrus.FieldLogger) *Session {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Session{
		db:          db,
		reader:      reader,
		log:         log,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		frameRepo:   storage.NewFrameRepository(db),
		actionRepo:  storage.NewActionRepository(db),
		phaseRepo:   storage.NewPhaseRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// FrameCount returns the number of frames read so far.
func (s *Session) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameIndex
}

// ActionCount returns the number of gestures recorded so far.
func (s *Session) ActionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actions
}

// Err returns the first storage error hit by a callback, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Start creates a session row holding the settings needed to replay it.
func (s *Session) Start(cfg *config.Config, notes string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrRecording
	}

	row := &storage.Session{
		Seed:            int(cfg.Seed),
		Threshold:       int(cfg.Threshold),
		EasyScramble:    cfg.Scramble.Easy,
		NormalScramble:  cfg.Scramble.Normal,
		VictoryFrames:   cfg.Animation.VictoryFrames,
		VictoryFacelets: cfg.Animation.VictoryFacelets,
	}
	if notes != "" {
		row.Notes = &notes
	}
	if cfg.Calibration != nil {
		data, err := config.MarshalCalibration(*cfg.Calibration)
		if err != nil {
			return "", fmt.Errorf("failed to encode calibration: %w", err)
		}
		text := string(data)
		row.CalibrationYAML = &text
	}

	sessionID, err := s.sessionRepo.Create(row)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = sessionID
	s.startTime = time.Now()
	s.frameIndex = 0
	s.actions = 0
	s.pending = s.pending[:0]
	s.lastErr = nil
	s.state = StateRecording

	s.log.WithField("session", sessionID).Info("recording started")
	return sessionID, nil
}

// Attach registers the session's callbacks on a game.
func (s *Session) Attach(g *touchcube.Game) {
	g.Controller().OnAction(s.RecordAction)
	g.OnPhaseChange(s.RecordPhase)
}

// Read reads the wrapped reader and records the sample.
func (s *Session) Read(ctx context.Context) (touchcube.Readings, error) {
	r, err := s.reader.Read(ctx)
	if err != nil {
		return r, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return r, nil
	}

	s.pending = append(s.pending, storage.Frame{
		SessionID:  s.sessionID,
		FrameIndex: s.frameIndex,
		TsMs:       time.Since(s.startTime).Milliseconds(),
		Mask:       r.Pack(),
	})
	s.frameIndex++

	if len(s.pending) >= frameBatch {
		if err := s.flushLocked(); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (s *Session) flushLocked() error {
	if err := s.frameRepo.CreateBatch(s.pending); err != nil {
		return fmt.Errorf("failed to store frames: %w", err)
	}
	s.pending = s.pending[:0]
	return nil
}

// currentFrame is the index of the frame being processed.
func (s *Session) currentFrame() int {
	if s.frameIndex == 0 {
		return 0
	}
	return s.frameIndex - 1
}

// RecordAction stores a committed gesture.
func (s *Session) RecordAction(o touchcube.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return
	}

	rec := storage.ActionRecord{
		SessionID:  s.sessionID,
		FrameIndex: s.currentFrame(),
		TsMs:       time.Since(s.startTime).Milliseconds(),
		Action:     o.Action.String(),
		Rotation:   o.Rotation.String(),
	}
	if len(o.Scramble) > 0 {
		text := touchcube.FormatRotations(o.Scramble)
		rec.Scramble = &text
	}

	if _, err := s.actionRepo.Create(rec); err != nil {
		s.fail(err)
		return
	}
	s.actions++
}

// RecordPhase stores a phase transition.
func (s *Session) RecordPhase(p touchcube.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return
	}

	_, err := s.phaseRepo.CreatePhaseMark(storage.PhaseMark{
		SessionID:  s.sessionID,
		FrameIndex: s.currentFrame(),
		TsMs:       time.Since(s.startTime).Milliseconds(),
		PhaseKey:   p.String(),
	})
	if err != nil {
		s.fail(err)
	}
}

func (s *Session) fail(err error) {
	s.log.WithError(err).Warn("failed to record")
	if s.lastErr == nil {
		s.lastErr = err
	}
}

// End flushes buffered frames and closes the session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if err := s.flushLocked(); err != nil {
		return err
	}
	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded
	s.log.WithFields(logrus.Fields{
		"session": s.sessionID,
		"frames":  s.frameIndex,
		"actions": s.actions,
	}).Info("recording ended")

	return s.lastErr
}
