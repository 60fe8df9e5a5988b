package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube/internal/analysis"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id|last>",
	Short: "Show a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a recorded session and everything recorded with it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsLimit int

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Maximum number of sessions to list")
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(sessionsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded. Record one with: touchcube simulate --record")
		return nil
	}

	frames := storage.NewFrameRepository(db)
	actions := storage.NewActionRepository(db)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tFRAMES\tGESTURES\tSEED")
	for _, s := range sessions {
		nFrames, err := frames.Count(s.SessionID)
		if err != nil {
			return err
		}
		nActions, err := actions.Count(s.SessionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			s.SessionID,
			humanize.Time(s.StartedAt),
			formatDuration(&s),
			humanize.Comma(int64(nFrames)),
			nActions,
			s.Seed,
		)
	}
	return w.Flush()
}

func formatDuration(s *storage.Session) string {
	if s.EndedAt == nil {
		return "open"
	}
	return s.Duration().Round(100 * time.Millisecond).String()
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// loadSummary reads everything recorded for s and summarizes it.
func loadSummary(db *storage.DB, s *storage.Session) (*analysis.SessionSummary, error) {
	frames, err := storage.NewFrameRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get frames: %w", err)
	}
	actions, err := storage.NewActionRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gestures: %w", err)
	}

	var endTs int64
	if len(frames) > 0 {
		endTs = frames[len(frames)-1].TsMs
	}
	segments, err := storage.NewPhaseRepository(db).Segments(s.SessionID, endTs, len(frames))
	if err != nil {
		return nil, fmt.Errorf("failed to get phases: %w", err)
	}

	return analysis.Summarize(s, len(frames), actions, segments), nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessionID, err := resolveSessionID(db, args[0])
	if err != nil {
		return err
	}
	s, err := storage.NewSessionRepository(db).Get(sessionID)
	if err != nil {
		return err
	}

	counts, err := storage.NewActionRepository(db).CountByAction(sessionID)
	if err != nil {
		return err
	}
	sum, err := loadSummary(db, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session:   %s\n", s.SessionID)
	fmt.Fprintf(out, "Started:   %s (%s)\n", s.StartedAt.Local().Format(time.RFC3339), humanize.Time(s.StartedAt))
	fmt.Fprintf(out, "Duration:  %s\n", formatDuration(s))
	fmt.Fprintf(out, "Frames:    %s\n", humanize.Comma(int64(sum.Frames)))
	fmt.Fprintf(out, "Settings:  seed %d, threshold %d, scrambles %d/%d\n",
		s.Seed, s.Threshold, s.EasyScramble, s.NormalScramble)
	if s.CalibrationYAML != nil {
		fmt.Fprintln(out, "Calibration: custom")
	}
	if s.Notes != nil {
		fmt.Fprintf(out, "Notes:     %s\n", *s.Notes)
	}

	if len(counts) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Gestures:")
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %-14s %d\n", k, counts[k])
		}
	}

	if sum.Turns > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Stats:")
		fmt.Fprintf(out, "  Turns:         %d (%.2f TPS)\n", sum.Turns, sum.TPSOverall)
		fmt.Fprintf(out, "  Undo rate:     %.0f%%\n", sum.UndoRate*100)
		fmt.Fprintf(out, "  Longest pause: %s\n", msDuration(sum.LongestPauseMs))
		fmt.Fprintf(out, "  Pauses > %s:  %d\n", msDuration(analysis.PauseThresholdMs), sum.PauseCountOver1500)
		if sum.Profile != nil {
			fmt.Fprintf(out, "  Busiest face:  %s\n", sum.Profile.MostUsedFace)
		}
		if sum.Solves > 0 {
			fmt.Fprintf(out, "  Solves:        %d (best %s)\n", sum.Solves, msDuration(sum.BestSolveMs))
		}
	}

	if len(sum.PhaseStats) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Phases:")
		for _, ps := range sum.PhaseStats {
			fmt.Fprintf(out, "  %-12s %10s %8s frames %4d turns\n",
				ps.PhaseKey, msDuration(ps.DurationMs), humanize.Comma(int64(ps.Frames)), ps.TurnCount)
		}
	}

	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewSessionRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
	return nil
}
