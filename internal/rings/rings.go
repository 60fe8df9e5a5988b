// Package rings scans the capacitive finger rings through a shift register
// and an 8-bit analog input.
//
// A single 1 is clocked through the shift register so that exactly one ring
// is powered at a time. Rings are read in pairs; each pair keeps its last four
// samples in one byte (low nibble for the first ring, high nibble for the
// second) and a ring counts as touched if any of those samples crossed the
// threshold.
package rings

import (
	"context"
	"time"

	"github.com/SeamusWaldron/touchcube"
)

const (
	// DefaultThreshold is the analog level above which a sample is a touch.
	DefaultThreshold uint8 = 32

	// DefaultSettle is the wait between selecting a ring and sampling it.
	DefaultSettle = time.Millisecond

	numPairs = touchcube.NumSensors / 2

	firstRing  = 1 << 0
	secondRing = 1 << 4
	historyLo  = 0x0F
	historyHi  = 0xF0
)

// Bus is the hardware behind the rings.
type Bus interface {
	// Shift clocks the selection register by one position, feeding in at its
	// serial input, and latches the result.
	Shift(in bool)

	// Sample converts the level of the selected ring.
	Sample() uint8
}

// Scanner reads every ring once per call to Read. It satisfies
// touchcube.SensorReader.
type Scanner struct {
	bus       Bus
	threshold uint8
	settle    time.Duration
	sleep     func(time.Duration)

	history [numPairs]uint8
	serial  bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithThreshold sets the analog touch threshold.
func WithThreshold(level uint8) Option {
	return func(s *Scanner) {
		s.threshold = level
	}
}

// WithSettle sets the delay between selecting a ring and sampling it.
func WithSettle(d time.Duration) Option {
	return func(s *Scanner) {
		s.settle = d
	}
}

// New returns a scanner on bus.
func New(bus Bus, opts ...Option) *Scanner {
	s := &Scanner{
		bus:       bus,
		threshold: DefaultThreshold,
		settle:    DefaultSettle,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset forgets the sample history.
func (s *Scanner) Reset() {
	s.history = [numPairs]uint8{}
}

// Read samples every ring and returns the filtered state.
func (s *Scanner) Read(ctx context.Context) (touchcube.Readings, error) {
	if err := ctx.Err(); err != nil {
		return touchcube.Readings{}, err
	}

	s.scan()
	return s.readings(), nil
}

func (s *Scanner) scan() {
	s.serial = true

	for i := range s.history {
		s.history[i] <<= 1
		s.history[i] &^= secondRing
		s.history[i] |= s.readPair()
	}

	// Push the 1 out so no ring stays selected longer than the others.
	s.bus.Shift(false)
}

func (s *Scanner) readPair() uint8 {
	var v uint8
	if s.readOnce() {
		v |= firstRing
	}
	if s.readOnce() {
		v |= secondRing
	}
	return v
}

func (s *Scanner) readOnce() bool {
	s.bus.Shift(s.serial)
	s.serial = false

	if s.settle > 0 {
		s.sleep(s.settle)
	}
	return s.bus.Sample() > s.threshold
}

func (s *Scanner) readings() touchcube.Readings {
	var r touchcube.Readings
	for i, h := range s.history {
		r[2*i] = h&historyLo != 0
		r[2*i+1] = h&historyHi != 0
	}
	return r
}
