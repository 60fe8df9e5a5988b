package cube

import "strings"

// Face identifies one of the six faces, in LED-chain order.
type Face uint8

const (
	Top    Face = 0
	Front  Face = 1
	Right  Face = 2
	Back   Face = 3
	Left   Face = 4
	Bottom Face = 5
)

// Faces lists all faces in LED-chain order.
var Faces = [NumFaces]Face{Top, Front, Right, Back, Left, Bottom}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f < NumFaces
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	switch f {
	case Top, Bottom:
		return Bottom - f
	default:
		// Front, Right, Back, Left form a ring of four.
		return (f-Front+2)%4 + Front
	}
}

// SolvedColor returns the colour a face shows after Reset.
func (f Face) SolvedColor() Facelet {
	return Facelet(f) + White
}

func (f Face) String() string {
	switch f {
	case Top:
		return "U"
	case Front:
		return "F"
	case Right:
		return "R"
	case Back:
		return "B"
	case Left:
		return "L"
	case Bottom:
		return "D"
	default:
		return "?"
	}
}

// Direction is the sense of a quarter turn.
type Direction uint8

const (
	CW  Direction = 0
	CCW Direction = 1
)

func (d Direction) String() string {
	if d == CCW {
		return "CCW"
	}
	return "CW"
}

// Rotation is a face plus a direction, packed as face + 6*direction.
type Rotation uint8

const (
	// ccwOffset is added to a face to get its counter-clockwise rotation.
	ccwOffset = 6

	// NumRotations is the number of valid rotations.
	NumRotations = 12

	// None is the "no rotation" sentinel.
	None Rotation = 255
)

// Clockwise rotations share their value with the face.
const (
	TopCW    Rotation = Rotation(Top)
	FrontCW  Rotation = Rotation(Front)
	RightCW  Rotation = Rotation(Right)
	BackCW   Rotation = Rotation(Back)
	LeftCW   Rotation = Rotation(Left)
	BottomCW Rotation = Rotation(Bottom)

	TopCCW    Rotation = TopCW + ccwOffset
	FrontCCW  Rotation = FrontCW + ccwOffset
	RightCCW  Rotation = RightCW + ccwOffset
	BackCCW   Rotation = BackCW + ccwOffset
	LeftCCW   Rotation = LeftCW + ccwOffset
	BottomCCW Rotation = BottomCW + ccwOffset
)

// NewRotation packs a face and direction.
func NewRotation(f Face, d Direction) Rotation {
	if !f.Valid() {
		return None
	}
	if d == CCW {
		return Rotation(f) + ccwOffset
	}
	return Rotation(f)
}

// Valid reports whether r is one of the 12 quarter turns.
func (r Rotation) Valid() bool {
	return r < NumRotations
}

// Face strips the direction.
func (r Rotation) Face() Face {
	if r >= ccwOffset {
		return Face(r - ccwOffset)
	}
	return Face(r)
}

// Direction returns CW or CCW.
func (r Rotation) Direction() Direction {
	if r >= ccwOffset {
		return CCW
	}
	return CW
}

// Inverse returns the same face turned the other way. None stays None.
func (r Rotation) Inverse() Rotation {
	switch {
	case !r.Valid():
		return None
	case r >= ccwOffset:
		return r - ccwOffset
	default:
		return r + ccwOffset
	}
}

// String returns standard notation: U, U', F, F', ...
func (r Rotation) String() string {
	if !r.Valid() {
		return "-"
	}
	if r.Direction() == CCW {
		return r.Face().String() + "'"
	}
	return r.Face().String()
}

// ParseRotation parses standard notation (U, U', r, ...).
func ParseRotation(s string) (Rotation, bool) {
	if len(s) == 0 || len(s) > 2 {
		return None, false
	}

	var f Face
	switch s[0] {
	case 'U', 'u':
		f = Top
	case 'F', 'f':
		f = Front
	case 'R', 'r':
		f = Right
	case 'B', 'b':
		f = Back
	case 'L', 'l':
		f = Left
	case 'D', 'd':
		f = Bottom
	default:
		return None, false
	}

	if len(s) == 1 {
		return NewRotation(f, CW), true
	}
	if s[1] == '\'' || s[1] == '`' {
		return NewRotation(f, CCW), true
	}
	return None, false
}

// FormatRotations formats rotations as space-separated notation.
func FormatRotations(rs []Rotation) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// ParseRotations parses space-separated notation.
func ParseRotations(s string) ([]Rotation, bool) {
	fields := strings.Fields(s)
	rs := make([]Rotation, 0, len(fields))
	for _, f := range fields {
		r, ok := ParseRotation(f)
		if !ok {
			return nil, false
		}
		rs = append(rs, r)
	}
	return rs, true
}
