package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/config"
	"github.com/SeamusWaldron/touchcube/internal/controls"
	"github.com/SeamusWaldron/touchcube/internal/cube"
)

var calibrationCmd = &cobra.Command{
	Use:   "calibration",
	Short: "Print the sensor calibration in use",
	Long: `Print the effective sensor calibration as YAML. The output can be saved
and referenced from the config file with calibration_file.`,
	RunE: runCalibrationDump,
}

var calibrationCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a calibration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalibrationCheck,
}

var calibrationGesturesCmd = &cobra.Command{
	Use:   "gestures",
	Short: "List the sensors each gesture presses",
	RunE:  runCalibrationGestures,
}

func init() {
	rootCmd.AddCommand(calibrationCmd)
	calibrationCmd.AddCommand(calibrationCheckCmd)
	calibrationCmd.AddCommand(calibrationGesturesCmd)
}

func runCalibrationDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.MarshalCalibration(cfg.CalibrationOrDefault())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runCalibrationCheck(cmd *cobra.Command, args []string) error {
	cal, err := config.LoadCalibration(args[0])
	if err != nil {
		return err
	}

	// Every gesture must be recognised as itself and nothing else.
	det := controls.NewDetector(cal)
	var bad []string
	for _, a := range allGestures() {
		c := countersFor(cal.GestureSensors(a))
		if got := det.DetermineAction(c, 1); got != a {
			bad = append(bad, fmt.Sprintf("%s detected as %s", a, got))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%s: ambiguous gestures: %s", args[0], strings.Join(bad, ", "))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	return nil
}

func runCalibrationGestures(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cal := cfg.CalibrationOrDefault()

	out := cmd.OutOrStdout()
	for _, a := range allGestures() {
		sensors := cal.GestureSensors(a)
		parts := make([]string, len(sensors))
		for i, s := range sensors {
			parts[i] = fmt.Sprintf("%d (cell %d)", s, cal.Facelets[s])
		}
		fmt.Fprintf(out, "%-13s %s\n", a, strings.Join(parts, ", "))
	}
	return nil
}

func allGestures() []touchcube.Action {
	out := make([]touchcube.Action, 0, cube.NumRotations+3)
	for r := cube.Rotation(0); r < cube.NumRotations; r++ {
		out = append(out, touchcube.RotationAction(r))
	}
	return append(out, touchcube.ActionUndo, touchcube.ActionResetEasy, touchcube.ActionResetNormal)
}

func countersFor(sensors []uint8) touchcube.Counters {
	var c touchcube.Counters
	for i := range c {
		c[i] = -1
	}
	for _, s := range sensors {
		c[s] = 1
	}
	return c
}
