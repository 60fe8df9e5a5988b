package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/touchcube/internal/cube"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the facelet permutation tables",
	Long: `Print, for every face, the neighbour cells (side), the face's own ring
(front) and its centre (fixed) that a quarter turn cycles. A clockwise
turn shifts side by three and front by two.`,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACE\tSIDE\tFRONT\tFIXED")
	for _, f := range cube.Faces {
		t := cube.TableFor(f)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", f, joinCells(t.Side[:]), joinCells(t.Front[:]), t.Fixed)
	}
	return w.Flush()
}

func joinCells(cells []uint8) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%2d", c)
	}
	return strings.Join(parts, " ")
}
