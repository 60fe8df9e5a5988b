package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/display"
	"github.com/SeamusWaldron/touchcube/internal/recorder"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-id|last>",
	Short: "Replay a recorded session",
	Long: `Feed the recorded sensor frames of a session back through the game.

By default the replay is drawn in the terminal at the configured pace.
With --check nothing is drawn: every frame is stepped immediately and the
gestures the replay commits are compared with the ones that were recorded.

Usage:
  touchcube replay last
  touchcube replay <session-id> --check`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replayCheck bool
	replayPlain bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayCheck, "check", false, "Verify the recording instead of drawing it")
	replayCmd.Flags().BoolVar(&replayPlain, "plain", false, "Draw facelets as letters instead of colours")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessionID, err := resolveSessionID(db, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if replayCheck {
		return checkReplay(ctx, cmd, db, cfg, sessionID)
	}

	player, err := recorder.NewPlayer(db, sessionID)
	if err != nil {
		return err
	}
	sessionCfg, err := player.Config(cfg)
	if err != nil {
		return err
	}

	game, err := touchcube.NewGame(append(sessionCfg.Options(), touchcube.WithLogger(log))...)
	if err != nil {
		return err
	}

	term := display.NewTerminal(cmd.OutOrStdout()).Redraw()
	if replayPlain {
		term.Plain()
	}

	if err := game.Run(ctx, player, term); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nReplayed %d frames, final phase %s\n", player.Position(), game.Phase())
	return nil
}

func checkReplay(ctx context.Context, cmd *cobra.Command, db *storage.DB, cfg *config.Config, sessionID string) error {
	report, err := recorder.Replay(ctx, db, sessionID, cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session:  %s\n", report.SessionID)
	fmt.Fprintf(out, "Frames:   %d\n", report.Frames)
	fmt.Fprintf(out, "Gestures: %d replayed, %d recorded\n", len(report.Actions), report.Recorded)
	fmt.Fprintf(out, "Phase:    %s (solved: %v)\n", report.FinalPhase, report.Solved)
	fmt.Fprintln(out)
	fmt.Fprintln(out, display.RenderPlain(report.Final))
	fmt.Fprintln(out)

	if report.OK() {
		fmt.Fprintln(out, "Replay matches the recording.")
		return nil
	}

	for _, m := range report.Mismatches {
		fmt.Fprintf(out, "  %s\n", m)
	}
	return fmt.Errorf("replay diverged in %d gesture(s)", len(report.Mismatches))
}
