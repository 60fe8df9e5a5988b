// Package display renders facelet frames to a terminal or an LED strip.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/touchcube"
	"github.com/SeamusWaldron/touchcube/internal/cube"
)

// netRows lists the faces of each band of the unfolded cube, left to right.
var netRows = [][]cube.Face{
	{cube.Top},
	{cube.Left, cube.Front, cube.Right, cube.Back},
	{cube.Bottom},
}

var (
	cellCache = map[touchcube.Facelet]lipgloss.Style{}
	cacheMu   sync.Mutex
)

func cellStyle(f touchcube.Facelet) lipgloss.Style {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cellCache[f]; ok {
		return s
	}

	c := f.RGB()
	s := lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))).
		Foreground(lipgloss.Color("0"))
	if f.IsBright() {
		s = s.Bold(true)
	}
	cellCache[f] = s
	return s
}

// Cell renders one facelet as a two-column coloured block. Bright facelets
// are marked with an asterisk.
func Cell(f touchcube.Facelet) string {
	text := "  "
	if f.IsBright() {
		text = " *"
	}
	return cellStyle(f).Render(text)
}

// RenderFace renders the nine cells of a face, one row per line.
func RenderFace(frame touchcube.Frame, face cube.Face, cell func(touchcube.Facelet) string) string {
	lines := make([]string, 3)
	for row := 0; row < 3; row++ {
		var b strings.Builder
		for col := 0; col < 3; col++ {
			b.WriteString(cell(frame[cube.Position(face, row, col)]))
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Render draws the frame as an unfolded cube in colour.
func Render(frame touchcube.Frame) string {
	return renderNet(frame, Cell, 6)
}

// RenderPlain draws the frame with colour letters and no escape codes.
// Bright facelets are shown in lower case.
func RenderPlain(frame touchcube.Frame) string {
	return renderNet(frame, plainCell, 3)
}

func plainCell(f touchcube.Facelet) string {
	l := f.Letter()
	if f.IsBright() {
		l = strings.ToLower(l)
	}
	return l
}

func renderNet(frame touchcube.Frame, cell func(touchcube.Facelet) string, faceWidth int) string {
	pad := lipgloss.NewStyle().PaddingLeft(faceWidth + 1)
	gap := lipgloss.NewStyle().PaddingRight(1)

	bands := make([]string, 0, len(netRows))
	for _, faces := range netRows {
		blocks := make([]string, len(faces))
		for i, f := range faces {
			blocks[i] = gap.Render(RenderFace(frame, f, cell))
		}
		band := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
		if len(faces) == 1 {
			band = pad.Render(band)
		}
		bands = append(bands, band)
	}
	return lipgloss.JoinVertical(lipgloss.Left, bands...)
}

// Terminal is a Display that prints every frame it is shown.
type Terminal struct {
	w     io.Writer
	plain bool
	clear bool
}

// NewTerminal returns a colour terminal display writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Plain switches to letter output.
func (t *Terminal) Plain() *Terminal {
	t.plain = true
	return t
}

// Redraw makes every frame overwrite the previous one.
func (t *Terminal) Redraw() *Terminal {
	t.clear = true
	return t
}

// Show implements touchcube.Display.
func (t *Terminal) Show(frame touchcube.Frame) error {
	out := Render(frame)
	if t.plain {
		out = RenderPlain(frame)
	}
	if t.clear {
		out = "\033[H\033[2J" + out
	}
	_, err := fmt.Fprintln(t.w, out)
	return err
}
