package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube/internal/storage"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session data",
	Long:  `Export recorded session data in various formats.`,
}

var exportGesturesCmd = &cobra.Command{
	Use:   "gestures <session-id|last>",
	Short: "Export the gestures of a session",
	Long: `Export the committed gestures of a session as text or JSON.

The text format lists the turns as notation, one line per gesture that is
not a turn. The JSON format includes frame indices and scrambles.

Examples:
  touchcube export gestures last
  touchcube export gestures <session-id> --format json -o gestures.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExportGestures,
}

var exportFramesCmd = &cobra.Command{
	Use:   "frames <session-id|last>",
	Short: "Export the raw sensor frames of a session",
	Long: `Export every recorded sensor frame as JSON. Each mask holds one bit per
sensor, sensor 0 in the lowest bit.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportFrames,
}

var exportSummaryCmd = &cobra.Command{
	Use:   "summary <session-id|last>",
	Short: "Export the statistics of a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExportSummary,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportGesturesCmd)
	exportCmd.AddCommand(exportFramesCmd)
	exportCmd.AddCommand(exportSummaryCmd)
	exportCmd.PersistentFlags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExportGestures(cmd *cobra.Command, args []string) error {
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

	actions, err := storage.NewActionRepository(db).GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get gestures: %w", err)
	}
	if len(actions) == 0 {
		return fmt.Errorf("no gestures found for session %s", sessionID)
	}

	var output string

	switch strings.ToLower(exportFormat) {
	case "txt":
		var lines, turns []string
		flush := func() {
			if len(turns) > 0 {
				lines = append(lines, strings.Join(turns, " "))
				turns = nil
			}
		}
		for _, a := range actions {
			if a.Action == a.Rotation {
				turns = append(turns, a.Action)
				continue
			}
			flush()
			line := a.Action
			if a.Scramble != nil {
				line += ": " + *a.Scramble
			} else if a.Rotation != "-" {
				line += ": " + a.Rotation
			}
			lines = append(lines, line)
		}
		flush()
		output = strings.Join(lines, "\n")

	case "json":
		type gestureJSON struct {
			FrameIndex int    `json:"frame_index"`
			TsMs       int64  `json:"ts_ms"`
			Action     string `json:"action"`
			Rotation   string `json:"rotation,omitempty"`
			Scramble   string `json:"scramble,omitempty"`
		}

		out := make([]gestureJSON, 0, len(actions))
		for _, a := range actions {
			g := gestureJSON{FrameIndex: a.FrameIndex, TsMs: a.TsMs, Action: a.Action}
			if a.Rotation != "-" {
				g.Rotation = a.Rotation
			}
			if a.Scramble != nil {
				g.Scramble = *a.Scramble
			}
			out = append(out, g)
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		output = string(data)

	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
	}

	return writeExport(cmd, output, fmt.Sprintf("%d gestures", len(actions)))
}

func runExportFrames(cmd *cobra.Command, args []string) error {
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

	frames, err := storage.NewFrameRepository(db).GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get frames: %w", err)
	}

	type frameJSON struct {
		FrameIndex int    `json:"frame_index"`
		TsMs       int64  `json:"ts_ms"`
		Mask       uint32 `json:"mask"`
	}
	out := make([]frameJSON, len(frames))
	for i, f := range frames {
		out[i] = frameJSON{FrameIndex: f.FrameIndex, TsMs: f.TsMs, Mask: f.Mask}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeExport(cmd, string(data), fmt.Sprintf("%d frames", len(frames)))
}

func runExportSummary(cmd *cobra.Command, args []string) error {
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
	sum, err := loadSummary(db, s)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeExport(cmd, string(data), "summary")
}

func writeExport(cmd *cobra.Command, output, what string) error {
	if exportOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", what, exportOutput)
	return nil
}
