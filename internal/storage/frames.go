package storage

import (
	"database/sql"
	"fmt"
)

// Frame is one recorded sensor sample. Mask packs the 24 sensor readings,
// sensor 0 in bit 0.
type Frame struct {
	FrameID    int64
	SessionID  string
	FrameIndex int
	TsMs       int64
	Mask       uint32
}

// FrameRepository provides CRUD operations for sensor frames.
type FrameRepository struct {
	db *DB
}

// NewFrameRepository creates a new frame repository.
func NewFrameRepository(db *DB) *FrameRepository {
	return &FrameRepository{db: db}
}

// Create stores a single frame.
func (r *FrameRepository) Create(f Frame) error {
	_, err := r.db.Exec(`
		INSERT INTO frames (session_id, frame_index, ts_ms, mask)
		VALUES (?, ?, ?, ?)
	`, f.SessionID, f.FrameIndex, f.TsMs, int64(f.Mask))

	if err != nil {
		return fmt.Errorf("failed to create frame: %w", err)
	}
	return nil
}

// CreateBatch stores several frames in a single transaction.
func (r *FrameRepository) CreateBatch(frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO frames (session_id, frame_index, ts_ms, mask)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare frame insert: %w", err)
		}
		defer stmt.Close()

		for _, f := range frames {
			if _, err := stmt.Exec(f.SessionID, f.FrameIndex, f.TsMs, int64(f.Mask)); err != nil {
				return fmt.Errorf("failed to create frame %d: %w", f.FrameIndex, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all frames of a session in order.
func (r *FrameRepository) GetBySession(sessionID string) ([]Frame, error) {
	rows, err := r.db.Query(`
		SELECT frame_id, session_id, frame_index, ts_ms, mask
		FROM frames
		WHERE session_id = ?
		ORDER BY frame_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var mask int64
		if err := rows.Scan(&f.FrameID, &f.SessionID, &f.FrameIndex, &f.TsMs, &mask); err != nil {
			return nil, fmt.Errorf("failed to scan frame: %w", err)
		}
		f.Mask = uint32(mask)
		frames = append(frames, f)
	}

	return frames, rows.Err()
}

// Count returns the number of frames of a session.
func (r *FrameRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM frames WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count frames: %w", err)
	}
	return count, nil
}
