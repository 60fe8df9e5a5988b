package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and recording information",
	Long:  `Display the effective configuration, the database in use and the most recent recorded session.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "touchcube status")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Config:       %s\n", configPath)
	fmt.Fprintf(out, "Seed:         %d\n", cfg.Seed)
	fmt.Fprintf(out, "Threshold:    %d reads\n", cfg.Threshold)
	fmt.Fprintf(out, "Cycle:        %s\n", cfg.CyclePeriod)
	fmt.Fprintf(out, "Rotation:     %s per frame\n", cfg.Animation.RotationFrame)
	fmt.Fprintf(out, "Victory:      %d frames of %s, %d facelets\n",
		cfg.Animation.VictoryFrames, cfg.Animation.VictoryFrame, cfg.Animation.VictoryFacelets)
	fmt.Fprintf(out, "Scrambles:    easy %d, normal %d\n", cfg.Scramble.Easy, cfg.Scramble.Normal)
	fmt.Fprintf(out, "Calibration:  %s\n", calibrationSource(cfg))
	fmt.Fprintln(out)

	path := cfg.DBPath
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Fprintf(out, "Database:     %s\n", path)

	db, err := openDB(cfg)
	if err != nil {
		fmt.Fprintf(out, "  unavailable: %v\n", err)
		return nil
	}
	defer db.Close()

	schema, err := db.CurrentVersion()
	if err == nil {
		fmt.Fprintf(out, "Schema:       v%d\n", schema)
	}

	sessions, err := storage.NewSessionRepository(db).List(0)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Sessions:     %d\n", len(sessions))
	if len(sessions) > 0 {
		last := sessions[0]
		fmt.Fprintf(out, "Last session: %s (%s)\n", last.SessionID, humanize.Time(last.StartedAt))
	}

	return nil
}

func calibrationSource(cfg *config.Config) string {
	switch {
	case cfg.CalibrationFile != "":
		return cfg.CalibrationFile
	case cfg.Calibration != nil:
		return "inline"
	default:
		return "default"
	}
}
