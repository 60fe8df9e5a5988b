package storage

import "fmt"

// PhaseMark records a game phase transition during a session.
type PhaseMark struct {
	PhaseMarkID int64
	SessionID   string
	FrameIndex  int
	TsMs        int64
	PhaseKey    string
}

// PhaseSegment is a derived span between two phase marks.
type PhaseSegment struct {
	PhaseKey   string
	StartTsMs  int64
	EndTsMs    int64
	DurationMs int64
	Frames     int
}

// PhaseRepository provides CRUD operations for phase marks.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// CreatePhaseMark creates a phase mark and returns its ID.
func (r *PhaseRepository) CreatePhaseMark(m PhaseMark) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO phase_marks (session_id, frame_index, ts_ms, phase_key)
		VALUES (?, ?, ?, ?)
	`, m.SessionID, m.FrameIndex, m.TsMs, m.PhaseKey)

	if err != nil {
		return 0, fmt.Errorf("failed to create phase mark: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get phase mark ID: %w", err)
	}

	return id, nil
}

// GetPhaseMarks retrieves all phase marks of a session in order.
func (r *PhaseRepository) GetPhaseMarks(sessionID string) ([]PhaseMark, error) {
	rows, err := r.db.Query(`
		SELECT phase_mark_id, session_id, frame_index, ts_ms, phase_key
		FROM phase_marks
		WHERE session_id = ?
		ORDER BY frame_index, phase_mark_id
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get phase marks: %w", err)
	}
	defer rows.Close()

	var marks []PhaseMark
	for rows.Next() {
		var m PhaseMark
		if err := rows.Scan(&m.PhaseMarkID, &m.SessionID, &m.FrameIndex, &m.TsMs, &m.PhaseKey); err != nil {
			return nil, fmt.Errorf("failed to scan phase mark: %w", err)
		}
		marks = append(marks, m)
	}

	return marks, rows.Err()
}

// Segments derives phase spans from the marks of a session. The last phase
// runs until endTsMs / endFrame.
func (r *PhaseRepository) Segments(sessionID string, endTsMs int64, endFrame int) ([]PhaseSegment, error) {
	marks, err := r.GetPhaseMarks(sessionID)
	if err != nil {
		return nil, err
	}
	return buildSegments(marks, endTsMs, endFrame), nil
}

func buildSegments(marks []PhaseMark, endTsMs int64, endFrame int) []PhaseSegment {
	segments := make([]PhaseSegment, 0, len(marks))
	for i, m := range marks {
		endTs, endIdx := endTsMs, endFrame
		if i+1 < len(marks) {
			endTs, endIdx = marks[i+1].TsMs, marks[i+1].FrameIndex
		}
		segments = append(segments, PhaseSegment{
			PhaseKey:   m.PhaseKey,
			StartTsMs:  m.TsMs,
			EndTsMs:    endTs,
			DurationMs: endTs - m.TsMs,
			Frames:     endIdx - m.FrameIndex,
		})
	}
	return segments
}
