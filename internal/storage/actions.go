package storage

import "fmt"

// ActionRecord is a committed gesture. Action and Rotation hold their text
// notation; Scramble is set for reset gestures.
type ActionRecord struct {
	ActionID   int64
	SessionID  string
	FrameIndex int
	TsMs       int64
	Action     string
	Rotation   string
	Scramble   *string
}

// ActionRepository provides CRUD operations for committed gestures.
type ActionRepository struct {
	db *DB
}

// NewActionRepository creates a new action repository.
func NewActionRepository(db *DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// Create stores an action and returns its ID.
func (r *ActionRepository) Create(a ActionRecord) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO actions (session_id, frame_index, ts_ms, action, rotation, scramble)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.SessionID, a.FrameIndex, a.TsMs, a.Action, a.Rotation, a.Scramble)

	if err != nil {
		return 0, fmt.Errorf("failed to create action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get action ID: %w", err)
	}

	return id, nil
}

// GetBySession retrieves all actions of a session in order.
func (r *ActionRepository) GetBySession(sessionID string) ([]ActionRecord, error) {
	rows, err := r.db.Query(`
		SELECT action_id, session_id, frame_index, ts_ms, action, rotation, scramble
		FROM actions
		WHERE session_id = ?
		ORDER BY frame_index, action_id
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get actions: %w", err)
	}
	defer rows.Close()

	var actions []ActionRecord
	for rows.Next() {
		var a ActionRecord
		err := rows.Scan(&a.ActionID, &a.SessionID, &a.FrameIndex, &a.TsMs, &a.Action, &a.Rotation, &a.Scramble)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		actions = append(actions, a)
	}

	return actions, rows.Err()
}

// Count returns the number of actions of a session.
func (r *ActionRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM actions WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}

// CountByAction returns how often each gesture was committed in a session.
func (r *ActionRepository) CountByAction(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT action, COUNT(*)
		FROM actions
		WHERE session_id = ?
		GROUP BY action
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count actions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("failed to scan action count: %w", err)
		}
		counts[action] = n
	}

	return counts, rows.Err()
}
