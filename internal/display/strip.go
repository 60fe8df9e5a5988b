package display

import (
	"image/color"

	"github.com/SeamusWaldron/touchcube"
)

// ColorWriter pushes a buffer of colours down an LED chain. The ws2812
// driver's Device satisfies it.
type ColorWriter interface {
	WriteColors(buf []color.RGBA) error
}

// Strip is a Display driving a chain of 54 addressable LEDs wired in facelet
// order.
type Strip struct {
	w   ColorWriter
	buf [touchcube.NumFacelets]color.RGBA
}

// NewStrip returns a strip display writing to w.
func NewStrip(w ColorWriter) *Strip {
	return &Strip{w: w}
}

// Colors converts a frame into LED colours.
func Colors(frame touchcube.Frame, buf []color.RGBA) {
	for i, f := range frame {
		if i >= len(buf) {
			return
		}
		buf[i] = f.RGB()
	}
}

// Show implements touchcube.Display.
func (s *Strip) Show(frame touchcube.Frame) error {
	Colors(frame, s.buf[:])
	return s.w.WriteColors(s.buf[:])
}
