// Package rand8 provides the 8-bit pseudo-random source used for scrambling
// and animation.
//
// The generator is an 8-bit Galois linear-feedback shift register. It is tiny,
// fully deterministic for a given seed, and has a period of 255.
package rand8

import "fmt"

const (
	// DefaultSeed replaces a zero seed. An LFSR stuck at zero never leaves it.
	DefaultSeed uint8 = 42

	// MaxValue is the largest value Next can return.
	MaxValue uint8 = 254

	// polynomial taps: x^8 + x^6 + x^5 + x^4 + 1
	polynomial uint8 = 0xB8
)

// Rand is an 8-bit Galois LFSR. The zero value is not usable; use New.
type Rand struct {
	state uint8
}

// New returns a generator seeded with seed.
func New(seed uint8) *Rand {
	r := &Rand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state. A zero seed is replaced by DefaultSeed.
func (r *Rand) Seed(seed uint8) {
	if seed == 0 {
		seed = DefaultSeed
	}
	r.state = seed
}

// State returns the raw register value (never 0).
func (r *Rand) State() uint8 {
	return r.state
}

// Next advances the register and returns a value in [0, MaxValue].
func (r *Rand) Next() uint8 {
	carry := r.state & 1
	r.state >>= 1
	if carry != 0 {
		r.state ^= polynomial
	}

	// The register is never 0, so shift [1, 255] down to [0, 254].
	return r.state - 1
}

// Range returns a value uniformly distributed in [low, high].
//
// Draws are reduced modulo (high-low+1) by repeated subtraction. A draw that
// lands in the trailing partial band would bias the result towards low values,
// so it is thrown away and a new draw is taken.
//
// Range panics unless low < high <= MaxValue.
func (r *Rand) Range(low, high uint8) uint8 {
	if low >= high || high > MaxValue {
		panic(fmt.Sprintf("rand8: invalid range [%d, %d]", low, high))
	}

	span := int(high) - int(low) + 1

	for {
		v := int(r.Next())
		remaining := int(MaxValue) + 1

		for {
			if v < span {
				if remaining >= span {
					return low + uint8(v)
				}
				// Trailing band is short. Start over.
				break
			}
			v -= span
			remaining -= span
		}
	}
}
