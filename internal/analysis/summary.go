// Package analysis derives statistics from recorded sessions.
package analysis

import (
	"time"

	"github.com/SeamusWaldron/touchcube/internal/controls"
	"github.com/SeamusWaldron/touchcube/internal/cube"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

// PauseThresholdMs is the gap between turns counted as a pause.
const PauseThresholdMs = 1500

// SessionSummary contains statistics for a single recorded session.
type SessionSummary struct {
	SessionID          string       `json:"session_id"`
	StartedAt          string       `json:"started_at"`
	EndedAt            string       `json:"ended_at,omitempty"`
	DurationMs         int64        `json:"duration_ms"`
	Frames             int          `json:"frames"`
	Gestures           int          `json:"gestures"`
	Turns              int          `json:"turns"`
	Undos              int          `json:"undos"`
	Resets             int          `json:"resets"`
	UndoRate           float64      `json:"undo_rate"`
	TPSOverall         float64      `json:"tps_overall"`
	Solves             int          `json:"solves"`
	BestSolveMs        int64        `json:"best_solve_ms,omitempty"`
	PhaseStats         []PhaseStats `json:"phase_stats,omitempty"`
	LongestPauseMs     int64        `json:"longest_pause_ms"`
	PauseCountOver1500 int          `json:"pause_count_over_1500ms"`
	AvgTurnGapMs       float64      `json:"avg_turn_gap_ms"`
	Profile            *TurnProfile `json:"profile,omitempty"`
}

// PhaseStats contains statistics for one phase segment.
type PhaseStats struct {
	PhaseKey   string  `json:"phase_key"`
	StartTsMs  int64   `json:"start_ts_ms"`
	EndTsMs    int64   `json:"end_ts_ms"`
	DurationMs int64   `json:"duration_ms"`
	Frames     int     `json:"frames"`
	TurnCount  int     `json:"turn_count"`
	TPS        float64 `json:"tps"`
}

// Turn is a committed face turn gesture.
type Turn struct {
	Rotation   cube.Rotation
	FrameIndex int
	TsMs       int64
}

// PauseInfo represents a pause between turns.
type PauseInfo struct {
	AfterTurnIndex int   `json:"after_turn_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// Turns extracts the face turn gestures from recorded actions. Undo and
// reset gestures are skipped.
func Turns(actions []storage.ActionRecord) []Turn {
	var turns []Turn
	for _, a := range actions {
		act, ok := controls.ParseAction(a.Action)
		if !ok {
			continue
		}
		if r, ok := act.Rotation(); ok {
			turns = append(turns, Turn{Rotation: r, FrameIndex: a.FrameIndex, TsMs: a.TsMs})
		}
	}
	return turns
}

// AnalyzePauses finds all gaps of at least thresholdMs between turns.
func AnalyzePauses(turns []Turn, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(turns); i++ {
		gap := turns[i].TsMs - turns[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterTurnIndex: i - 1,
				DurationMs:     gap,
				TsMs:           turns[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second over durationMs.
func CalculateTPS(turns int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(turns) / (float64(durationMs) / 1000.0)
}

// CalculateAvgTurnGap calculates the average time between turns.
func CalculateAvgTurnGap(turns []Turn) float64 {
	if len(turns) < 2 {
		return 0
	}

	totalGap := turns[len(turns)-1].TsMs - turns[0].TsMs
	return float64(totalGap) / float64(len(turns)-1)
}

// FindLongestPause finds the longest gap between turns.
func FindLongestPause(turns []Turn) int64 {
	var longest int64

	for i := 1; i < len(turns); i++ {
		gap := turns[i].TsMs - turns[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// CountPausesOver counts gaps strictly longer than thresholdMs.
func CountPausesOver(turns []Turn, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(turns); i++ {
		gap := turns[i].TsMs - turns[i-1].TsMs
		if gap > thresholdMs {
			count++
		}
	}
	return count
}

// TurnProfile records which faces and directions were turned.
type TurnProfile struct {
	FaceCounts      map[string]int `json:"face_counts"`
	DirectionCounts map[string]int `json:"direction_counts"`
	MostUsedFace    string         `json:"most_used_face,omitempty"`
	FacePairs       map[string]int `json:"face_pairs"` // e.g. "RU" -> count
}

// AnalyzeTurnProfile counts turns per face, per direction and per
// consecutive face pair.
func AnalyzeTurnProfile(turns []Turn) *TurnProfile {
	profile := &TurnProfile{
		FaceCounts:      make(map[string]int),
		DirectionCounts: make(map[string]int),
		FacePairs:       make(map[string]int),
	}

	for i, t := range turns {
		profile.FaceCounts[t.Rotation.Face().String()]++
		profile.DirectionCounts[t.Rotation.Direction().String()]++

		if i > 0 {
			pair := turns[i-1].Rotation.Face().String() + t.Rotation.Face().String()
			profile.FacePairs[pair]++
		}
	}

	// Walk faces in table order so ties resolve the same way every time.
	best := 0
	for _, f := range cube.Faces {
		if n := profile.FaceCounts[f.String()]; n > best {
			best = n
			profile.MostUsedFace = f.String()
		}
	}

	return profile
}

// Summarize builds the summary of a session from its recorded rows.
func Summarize(s *storage.Session, frames int, actions []storage.ActionRecord, segments []storage.PhaseSegment) *SessionSummary {
	turns := Turns(actions)

	sum := &SessionSummary{
		SessionID:          s.SessionID,
		StartedAt:          s.StartedAt.Format(time.RFC3339),
		Frames:             frames,
		Gestures:           len(actions),
		Turns:              len(turns),
		LongestPauseMs:     FindLongestPause(turns),
		PauseCountOver1500: CountPausesOver(turns, PauseThresholdMs),
		AvgTurnGapMs:       CalculateAvgTurnGap(turns),
	}
	if s.EndedAt != nil {
		sum.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	sum.DurationMs = s.Duration().Milliseconds()
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		sum.DurationMs = max(sum.DurationMs, last.EndTsMs)
	}

	for _, a := range actions {
		act, ok := controls.ParseAction(a.Action)
		if !ok {
			continue
		}
		switch {
		case act == controls.ActionUndo:
			sum.Undos++
		case act.IsReset():
			sum.Resets++
		}
	}
	if sum.Turns > 0 {
		sum.UndoRate = float64(sum.Undos) / float64(sum.Turns)
	}

	var playingMs int64
	for i, seg := range segments {
		n := countTurnsBetween(turns, seg.StartTsMs, seg.EndTsMs, i == len(segments)-1)
		sum.PhaseStats = append(sum.PhaseStats, PhaseStats{
			PhaseKey:   seg.PhaseKey,
			StartTsMs:  seg.StartTsMs,
			EndTsMs:    seg.EndTsMs,
			DurationMs: seg.DurationMs,
			Frames:     seg.Frames,
			TurnCount:  n,
			TPS:        CalculateTPS(n, seg.DurationMs),
		})

		if seg.PhaseKey != "playing" {
			continue
		}
		playingMs += seg.DurationMs
		// A playing span followed by victory is a solve.
		if i+1 < len(segments) && segments[i+1].PhaseKey == "victory" {
			sum.Solves++
			if sum.BestSolveMs == 0 || seg.DurationMs < sum.BestSolveMs {
				sum.BestSolveMs = seg.DurationMs
			}
		}
	}

	if playingMs > 0 {
		sum.TPSOverall = CalculateTPS(len(turns), playingMs)
	} else {
		sum.TPSOverall = CalculateTPS(len(turns), sum.DurationMs)
	}
	if len(turns) > 0 {
		sum.Profile = AnalyzeTurnProfile(turns)
	}

	return sum
}

// countTurnsBetween counts turns in [start, end), or [start, end] for the
// last segment.
func countTurnsBetween(turns []Turn, start, end int64, closed bool) int {
	n := 0
	for _, t := range turns {
		if t.TsMs < start {
			continue
		}
		if t.TsMs < end || (closed && t.TsMs == end) {
			n++
		}
	}
	return n
}
