// Command touchcube runs, records and replays the touch-sensor cube game.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/SeamusWaldron/touchcube/internal/cli"
)

func main() {
	if err := fang.Execute(context.Background(), cli.Root()); err != nil {
		os.Exit(1)
	}
}
