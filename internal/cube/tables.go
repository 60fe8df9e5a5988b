package cube

const (
	NumFaces           = 6
	NumFaceletsPerFace = 9
	NumFacelets        = NumFaces * NumFaceletsPerFace

	// NumSideFacelets is the number of cells on the four neighbouring faces
	// moved by a turn.
	NumSideFacelets = 12

	// NumFrontFacelets is the turning face's outer ring, centre excluded.
	NumFrontFacelets = 8

	// NumAffectedFacelets counts every cell a turn touches, centre included.
	NumAffectedFacelets = NumSideFacelets + NumFrontFacelets + 1
)

// Table describes the cells a turn of one face touches.
//
// Side is the cyclic sequence of neighbour cells, three per neighbour face.
// Front is the face's own outer ring. Fixed is its centre, which never moves.
// Clockwise steps walk both lists forward; counter-clockwise walks backward.
type Table struct {
	Side  [NumSideFacelets]uint8
	Front [NumFrontFacelets]uint8
	Fixed uint8
}

// Within each face the LED chain runs in columns: positions 0, 3, 6 sit on
// the edge towards the top (for Top itself, towards Back), and positions 0, 1,
// 2 on the edge towards the face on the left when looking at it.
var tables = [NumFaces]Table{
	Top: {
		Side:  [12]uint8{9, 12, 15, 18, 21, 24, 27, 30, 33, 36, 39, 42},
		Front: [8]uint8{2, 5, 8, 7, 6, 3, 0, 1},
		Fixed: 4,
	},
	Front: {
		Side:  [12]uint8{45, 48, 51, 20, 19, 18, 8, 5, 2, 42, 43, 44},
		Front: [8]uint8{11, 14, 17, 16, 15, 12, 9, 10},
		Fixed: 13,
	},
	Right: {
		Side:  [12]uint8{51, 52, 53, 29, 28, 27, 6, 7, 8, 15, 16, 17},
		Front: [8]uint8{20, 23, 26, 25, 24, 21, 18, 19},
		Fixed: 22,
	},
	Back: {
		Side:  [12]uint8{53, 50, 47, 38, 37, 36, 0, 3, 6, 24, 25, 26},
		Front: [8]uint8{29, 32, 35, 34, 33, 30, 27, 28},
		Fixed: 31,
	},
	Left: {
		Side:  [12]uint8{47, 46, 45, 11, 10, 9, 2, 1, 0, 33, 34, 35},
		Front: [8]uint8{38, 41, 44, 43, 42, 39, 36, 37},
		Fixed: 40,
	},
	Bottom: {
		Side:  [12]uint8{35, 32, 29, 26, 23, 20, 17, 14, 11, 44, 41, 38},
		Front: [8]uint8{47, 50, 53, 52, 51, 48, 45, 46},
		Fixed: 49,
	},
}

// TableFor returns the permutation table of a face. The direction of a
// rotation is ignored.
func TableFor(f Face) Table {
	return tables[f]
}

// Affected returns every cell a turn of f touches: side, front, then centre.
func (t Table) Affected() [NumAffectedFacelets]uint8 {
	var out [NumAffectedFacelets]uint8
	n := copy(out[:], t.Side[:])
	n += copy(out[n:], t.Front[:])
	out[n] = t.Fixed
	return out
}

// Position maps a row and column of the unfolded net (row 0 at the top, as
// seen from outside the cube) to a cell of face f.
func Position(f Face, row, col int) int {
	return int(f)*NumFaceletsPerFace + col*3 + row
}
