package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/display"
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble [turns]",
	Short: "Print a scramble and the cube it produces",
	Long: `Scramble a solved cube with the configured random source and print the
turns and the resulting net. The same seed always gives the same scramble.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScramble,
}

var (
	scrambleSeed  uint8
	scramblePlain bool
	scrambleApply string
)

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().Uint8Var(&scrambleSeed, "seed", 0, "Seed the random source (default: from config)")
	scrambleCmd.Flags().BoolVar(&scramblePlain, "plain", false, "Draw facelets as letters instead of colours")
	scrambleCmd.Flags().StringVar(&scrambleApply, "apply", "", "Apply these turns instead of a random scramble")
}

func runScramble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n := cfg.Scramble.Normal
	if len(args) == 1 {
		n, err = strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid turn count %q", args[0])
		}
	}

	opts := cfg.Options()
	if cmd.Flags().Changed("seed") {
		opts = append(opts, touchcube.WithSeed(scrambleSeed))
	}
	c, err := touchcube.NewController(opts...)
	if err != nil {
		return err
	}

	var turns []touchcube.Rotation
	if scrambleApply != "" {
		turns, err = touchcube.ParseRotations(scrambleApply)
		if err != nil {
			return fmt.Errorf("%w: %q", err, scrambleApply)
		}
		c.Apply(turns...)
	} else {
		turns = c.Scramble(n)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed:  %d\n", c.Seed())
	fmt.Fprintf(out, "Turns: %s\n\n", touchcube.FormatRotations(turns))
	if scramblePlain {
		fmt.Fprintln(out, display.RenderPlain(c.Facelets()))
	} else {
		fmt.Fprintln(out, display.Render(c.Facelets()))
	}
	fmt.Fprintf(out, "\nSolved: %v\n", c.IsSolved())
	return nil
}
