// Package cube holds the 54-facelet state of the cube and the permutation
// primitives that turn its faces.
package cube

import (
	"fmt"
	"strings"
)

// Cube is the facelet store, addressed in LED-chain order:
// index = face*9 + position, faces ordered Top, Front, Right, Back, Left,
// Bottom.
type Cube struct {
	facelets [NumFacelets]Facelet
}

// New creates a solved cube.
func New() *Cube {
	c := &Cube{}
	c.Reset()
	return c
}

// Reset assigns the six solved colours, nine cells each, in face order.
// Bright flags are cleared.
func (c *Cube) Reset() {
	for _, face := range Faces {
		color := face.SolvedColor()
		base := int(face) * NumFaceletsPerFace
		for i := 0; i < NumFaceletsPerFace; i++ {
			c.facelets[base+i] = color
		}
	}
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Facelets returns a copy of all 54 packed values in LED-chain order.
func (c *Cube) Facelets() [NumFacelets]Facelet {
	return c.facelets
}

// At returns the packed value of cell i.
func (c *Cube) At(i int) Facelet {
	return c.facelets[i]
}

// Equal reports whether both cubes hold the same packed values.
func (c *Cube) Equal(other *Cube) bool {
	return c.facelets == other.facelets
}

// SameColors reports whether both cubes hold the same colours, ignoring
// Bright flags.
func (c *Cube) SameColors(other *Cube) bool {
	for i := range c.facelets {
		if c.facelets[i].Color() != other.facelets[i].Color() {
			return false
		}
	}
	return true
}

// IsSolved returns true if every cell shows its face's solved colour.
func (c *Cube) IsSolved() bool {
	for _, face := range Faces {
		expected := face.SolvedColor()
		base := int(face) * NumFaceletsPerFace
		for i := 0; i < NumFaceletsPerFace; i++ {
			if c.facelets[base+i].Color() != expected {
				return false
			}
		}
	}
	return true
}

// Brighten sets the Bright flag of cell i.
func (c *Cube) Brighten(i int) {
	c.facelets[i] |= Bright
}

// BrightenFace sets the Bright flag on every cell a turn of f touches: the
// side list, the front ring and the centre. Colours are untouched.
func (c *Cube) BrightenFace(f Face) {
	if !f.Valid() {
		return
	}
	for _, i := range tables[f].Affected() {
		c.facelets[i] |= Bright
	}
}

// DimAll clears every Bright flag.
func (c *Cube) DimAll() {
	for i := range c.facelets {
		c.facelets[i] &^= Bright
	}
}

// RotateSideStep shifts the side list of r's face by one position.
func (c *Cube) RotateSideStep(r Rotation) {
	if !r.Valid() {
		return
	}
	t := &tables[r.Face()]
	if r.Direction() == CCW {
		c.cycleBackward(t.Side[:])
	} else {
		c.cycleForward(t.Side[:])
	}
}

// RotateFrontStep shifts the front ring of r's face by one position.
func (c *Cube) RotateFrontStep(r Rotation) {
	if !r.Valid() {
		return
	}
	t := &tables[r.Face()]
	if r.Direction() == CCW {
		c.cycleBackward(t.Front[:])
	} else {
		c.cycleForward(t.Front[:])
	}
}

// Rotate applies a quarter turn: three side steps, then two front steps.
// Each step is also an animation frame, so the turn is never done as a single
// shift.
func (c *Cube) Rotate(r Rotation) {
	if !r.Valid() {
		return
	}
	c.RotateSideStep(r)
	c.RotateSideStep(r)
	c.RotateSideStep(r)
	c.RotateFrontStep(r)
	c.RotateFrontStep(r)
}

// RotateAll applies a sequence of quarter turns.
func (c *Cube) RotateAll(rs []Rotation) {
	for _, r := range rs {
		c.Rotate(r)
	}
}

// cycleForward moves every value one position towards the head of indices;
// the head value wraps to the tail.
func (c *Cube) cycleForward(indices []uint8) {
	last := len(indices) - 1
	saved := c.facelets[indices[0]]
	for i := 0; i < last; i++ {
		c.facelets[indices[i]] = c.facelets[indices[i+1]]
	}
	c.facelets[indices[last]] = saved
}

// cycleBackward is cycleForward over the reversed list.
func (c *Cube) cycleBackward(indices []uint8) {
	last := len(indices) - 1
	saved := c.facelets[indices[last]]
	for i := last; i > 0; i-- {
		c.facelets[indices[i]] = c.facelets[indices[i-1]]
	}
	c.facelets[indices[0]] = saved
}

// String returns the unfolded net:
//
//	      U
//	L F R B
//	      D
func (c *Cube) String() string {
	var b strings.Builder

	writeRow := func(face Face, row int) {
		for col := 0; col < 3; col++ {
			fmt.Fprintf(&b, "%-3s", c.facelets[Position(face, row, col)].String())
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString(strings.Repeat(" ", 9))
		writeRow(Top, row)
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		for _, face := range []Face{Left, Front, Right, Back} {
			writeRow(face, row)
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		b.WriteString(strings.Repeat(" ", 9))
		writeRow(Bottom, row)
		b.WriteString("\n")
	}

	return b.String()
}

// Debug returns a simple debug string.
func (c *Cube) Debug() string {
	return fmt.Sprintf("Solved: %v", c.IsSolved())
}
