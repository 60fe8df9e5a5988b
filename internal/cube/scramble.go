package cube

// Source draws uniform values in [low, high]. *rand8.Rand satisfies it.
type Source interface {
	Range(low, high uint8) uint8
}

// Scramble applies n random quarter turns and returns them in order.
//
// The first turn is uniform over all 12 rotations. Every later turn is uniform
// over the 10 rotations of the other five faces, so a turn never undoes the
// one before it.
func (c *Cube) Scramble(n int, src Source) []Rotation {
	if n <= 0 {
		return nil
	}

	applied := make([]Rotation, 0, n)
	prev := None

	for i := 0; i < n; i++ {
		var r Rotation
		if prev == None {
			r = Rotation(src.Range(0, NumRotations-1))
		} else {
			r = pickExcludingFace(src.Range(0, NumRotations-3), prev.Face())
		}

		c.Rotate(r)
		applied = append(applied, r)
		prev = r
	}

	return applied
}

// pickExcludingFace maps k in [0, 9] onto the 10 rotations whose face is not
// excluded, in increasing Rotation order.
func pickExcludingFace(k uint8, excluded Face) Rotation {
	for r := Rotation(0); r < NumRotations; r++ {
		if r.Face() == excluded {
			continue
		}
		if k == 0 {
			return r
		}
		k--
	}
	return None
}
