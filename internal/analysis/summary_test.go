package analysis

import (
	"testing"
	"time"

	"github.com/SeamusWaldron/touchcube/internal/cube"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

func action(ts int64, name string) storage.ActionRecord {
	return storage.ActionRecord{TsMs: ts, Action: name, Rotation: name}
}

func TestTurnsSkipsOtherGestures(t *testing.T) {
	actions := []storage.ActionRecord{
		action(100, "R"),
		action(200, "undo"),
		action(300, "U'"),
		action(400, "reset-easy"),
		action(500, "bogus"),
	}

	turns := Turns(actions)
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Rotation != cube.RightCW || turns[1].Rotation != cube.TopCCW {
		t.Errorf("turns = %v", turns)
	}
}

func TestPauses(t *testing.T) {
	turns := []Turn{
		{Rotation: cube.RightCW, TsMs: 0},
		{Rotation: cube.TopCW, TsMs: 500},
		{Rotation: cube.FrontCW, TsMs: 2500},
		{Rotation: cube.LeftCW, TsMs: 4000},
	}

	if got := FindLongestPause(turns); got != 2000 {
		t.Errorf("FindLongestPause = %d, want 2000", got)
	}
	// 1500 is a pause for AnalyzePauses but not over the threshold.
	if got := CountPausesOver(turns, 1500); got != 1 {
		t.Errorf("CountPausesOver = %d, want 1", got)
	}
	pauses := AnalyzePauses(turns, 1500)
	if len(pauses) != 2 || pauses[0].AfterTurnIndex != 1 || pauses[1].DurationMs != 1500 {
		t.Errorf("AnalyzePauses = %+v", pauses)
	}
	if got := CalculateAvgTurnGap(turns); got < 1333 || got > 1334 {
		t.Errorf("CalculateAvgTurnGap = %v", got)
	}
	if got := CalculateTPS(4, 2000); got != 2 {
		t.Errorf("CalculateTPS = %v, want 2", got)
	}
	if got := CalculateTPS(4, 0); got != 0 {
		t.Errorf("CalculateTPS with no duration = %v", got)
	}
}

func TestTurnProfile(t *testing.T) {
	turns := []Turn{
		{Rotation: cube.RightCW},
		{Rotation: cube.TopCW},
		{Rotation: cube.RightCCW},
		{Rotation: cube.TopCCW},
		{Rotation: cube.RightCW},
	}

	p := AnalyzeTurnProfile(turns)
	if p.FaceCounts["R"] != 3 || p.FaceCounts["U"] != 2 {
		t.Errorf("FaceCounts = %v", p.FaceCounts)
	}
	if p.DirectionCounts["CW"] != 3 || p.DirectionCounts["CCW"] != 2 {
		t.Errorf("DirectionCounts = %v", p.DirectionCounts)
	}
	if p.MostUsedFace != "R" {
		t.Errorf("MostUsedFace = %q", p.MostUsedFace)
	}
	if p.FacePairs["RU"] != 2 || p.FacePairs["UR"] != 2 {
		t.Errorf("FacePairs = %v", p.FacePairs)
	}
}

func TestSummarize(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	end := start.Add(10 * time.Second)
	s := &storage.Session{SessionID: "abc", StartedAt: start, EndedAt: &end}

	actions := []storage.ActionRecord{
		action(1000, "R"),
		action(2000, "U"),
		action(3000, "undo"),
		action(4000, "U'"),
		action(6000, "R'"),
		action(8000, "reset-normal"),
	}
	segments := []storage.PhaseSegment{
		{PhaseKey: "playing", StartTsMs: 0, EndTsMs: 7000, DurationMs: 7000, Frames: 700},
		{PhaseKey: "victory", StartTsMs: 7000, EndTsMs: 7500, DurationMs: 500, Frames: 50},
		{PhaseKey: "won", StartTsMs: 7500, EndTsMs: 8000, DurationMs: 500, Frames: 50},
		{PhaseKey: "playing", StartTsMs: 8000, EndTsMs: 9000, DurationMs: 1000, Frames: 100},
	}

	sum := Summarize(s, 900, actions, segments)

	if sum.DurationMs != 10000 {
		t.Errorf("DurationMs = %d", sum.DurationMs)
	}
	if sum.Gestures != 6 || sum.Turns != 4 || sum.Undos != 1 || sum.Resets != 1 {
		t.Errorf("counts = %d/%d/%d/%d", sum.Gestures, sum.Turns, sum.Undos, sum.Resets)
	}
	if sum.UndoRate != 0.25 {
		t.Errorf("UndoRate = %v", sum.UndoRate)
	}
	if sum.Solves != 1 || sum.BestSolveMs != 7000 {
		t.Errorf("solves = %d best %d", sum.Solves, sum.BestSolveMs)
	}
	if sum.TPSOverall != 0.5 {
		t.Errorf("TPSOverall = %v, want 0.5 over 8s of play", sum.TPSOverall)
	}
	if len(sum.PhaseStats) != 4 || sum.PhaseStats[0].TurnCount != 4 || sum.PhaseStats[3].TurnCount != 0 {
		t.Errorf("PhaseStats = %+v", sum.PhaseStats)
	}
	if sum.LongestPauseMs != 2000 || sum.PauseCountOver1500 != 2 {
		t.Errorf("pauses = %d/%d", sum.LongestPauseMs, sum.PauseCountOver1500)
	}
	// R and U tie; U comes first.
	if sum.Profile == nil || sum.Profile.MostUsedFace != "U" {
		t.Errorf("Profile = %+v", sum.Profile)
	}
	if sum.EndedAt == "" {
		t.Error("EndedAt not set")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := &storage.Session{SessionID: "empty", StartedAt: time.Now()}
	sum := Summarize(s, 0, nil, nil)
	if sum.Turns != 0 || sum.TPSOverall != 0 || sum.Profile != nil || sum.EndedAt != "" {
		t.Errorf("summary = %+v", sum)
	}
}
