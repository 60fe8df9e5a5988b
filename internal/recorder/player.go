package recorder

import (
	"context"
	"fmt"
	"io"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

// Player is a SensorReader that plays back the frames of a recorded session.
type Player struct {
	session *storage.Session
	frames  []storage.Frame
	pos     int
}

// NewPlayer loads a session and its frames.
func NewPlayer(db *storage.DB, sessionID string) (*Player, error) {
	session, err := storage.NewSessionRepository(db).Get(sessionID)
	if err != nil {
		return nil, err
	}

	frames, err := storage.NewFrameRepository(db).GetBySession(sessionID)
	if err != nil {
		return nil, err
	}

	return &Player{session: session, frames: frames}, nil
}

// Session returns the recorded session.
func (p *Player) Session() *storage.Session {
	return p.session
}

// Len returns the number of recorded frames.
func (p *Player) Len() int {
	return len(p.frames)
}

// Position returns the index of the next frame to be read.
func (p *Player) Position() int {
	return p.pos
}

// Rewind restarts playback from the first frame.
func (p *Player) Rewind() {
	p.pos = 0
}

// Read returns the next recorded frame, or io.EOF once all have been read.
func (p *Player) Read(ctx context.Context) (touchcube.Readings, error) {
	if err := ctx.Err(); err != nil {
		return touchcube.Readings{}, err
	}
	if p.pos >= len(p.frames) {
		return touchcube.Readings{}, io.EOF
	}
	f := p.frames[p.pos]
	p.pos++
	return touchcube.UnpackReadings(f.Mask), nil
}

// Config rebuilds the configuration the session was recorded with. Frame
// delays are not stored; base supplies them along with the other fields a
// session does not record.
func (p *Player) Config(base *config.Config) (*config.Config, error) {
	cfg := *base
	if base.Calibration != nil {
		cal := *base.Calibration
		cfg.Calibration = &cal
	}

	s := p.session
	cfg.Seed = uint8(s.Seed)
	cfg.Threshold = int8(s.Threshold)
	cfg.Scramble.Easy = s.EasyScramble
	cfg.Scramble.Normal = s.NormalScramble
	cfg.Animation.VictoryFrames = s.VictoryFrames
	cfg.Animation.VictoryFacelets = s.VictoryFacelets
	cfg.Calibration = nil

	if s.CalibrationYAML != nil {
		cal, err := config.ParseCalibration([]byte(*s.CalibrationYAML))
		if err != nil {
			return nil, fmt.Errorf("failed to decode session calibration: %w", err)
		}
		cfg.Calibration = &cal
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
