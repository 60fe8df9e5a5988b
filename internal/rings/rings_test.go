package rings

import (
	"context"
	"testing"
	"time"

	"github.com/SeamusWaldron/touchcube"
)

// fakeBus models the shift register: the ring under the 1 is selected.
type fakeBus struct {
	levels [touchcube.NumSensors]uint8
	pos    int
	shifts int
}

func newFakeBus() *fakeBus {
	return &fakeBus{pos: -1}
}

func (b *fakeBus) Shift(in bool) {
	b.shifts++
	switch {
	case in:
		b.pos = 0
	case b.pos >= 0:
		b.pos++
	}
}

func (b *fakeBus) Sample() uint8 {
	if b.pos < 0 || b.pos >= len(b.levels) {
		return 0
	}
	return b.levels[b.pos]
}

func read(t *testing.T, s *Scanner) touchcube.Readings {
	t.Helper()
	r, err := s.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestScanOrder(t *testing.T) {
	for _, ring := range []int{0, 1, 5, 22, 23} {
		bus := newFakeBus()
		bus.levels[ring] = 200
		s := New(bus, WithSettle(0))

		r := read(t, s)
		if r != touchcube.ReadingsOf(uint8(ring)) {
			t.Errorf("ring %d: got %v", ring, r)
		}
		if bus.shifts != touchcube.NumSensors+1 {
			t.Errorf("shifts = %d", bus.shifts)
		}
	}
}

func TestFilterHoldsFourSamples(t *testing.T) {
	for _, ring := range []int{6, 7} {
		bus := newFakeBus()
		s := New(bus, WithSettle(0))

		bus.levels[ring] = 100
		if !read(t, s)[ring] {
			t.Fatalf("ring %d: touch not seen", ring)
		}
		bus.levels[ring] = 0

		for i := 0; i < 3; i++ {
			if !read(t, s)[ring] {
				t.Errorf("ring %d: released after %d reads", ring, i+1)
			}
		}
		if read(t, s)[ring] {
			t.Errorf("ring %d: still touched after four empty samples", ring)
		}
	}
}

func TestFilterKeepsPairsApart(t *testing.T) {
	bus := newFakeBus()
	s := New(bus, WithSettle(0))

	bus.levels[2] = 100
	for i := 0; i < 6; i++ {
		r := read(t, s)
		if r[3] {
			t.Fatalf("read %d: ring 2 leaked into ring 3", i)
		}
	}
}

func TestThreshold(t *testing.T) {
	bus := newFakeBus()
	bus.levels[4] = 50
	bus.levels[9] = 51

	s := New(bus, WithSettle(0), WithThreshold(50))
	r := read(t, s)
	if r[4] || !r[9] {
		t.Errorf("got %v", r)
	}
}

func TestResetAndSettle(t *testing.T) {
	bus := newFakeBus()
	bus.levels[10] = 255

	var slept time.Duration
	s := New(bus)
	s.sleep = func(d time.Duration) { slept += d }

	read(t, s)
	if slept != touchcube.NumSensors*DefaultSettle {
		t.Errorf("slept %v", slept)
	}

	s.Reset()
	bus.levels[10] = 0
	if r := read(t, s); r != (touchcube.Readings{}) {
		t.Errorf("history survived Reset: %v", r)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Read(ctx); err == nil {
		t.Error("expected a context error")
	}
}
