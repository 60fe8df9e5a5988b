package rand8

import "testing"

func TestZeroSeedIsReplaced(t *testing.T) {
	r := New(0)
	if r.State() != DefaultSeed {
		t.Errorf("expected state %d after zero seed, got %d", DefaultSeed, r.State())
	}
}

func TestNextPeriodIs255(t *testing.T) {
	r := New(1)
	seen := make(map[uint8]bool)
	for i := 0; i < 255; i++ {
		v := r.Next()
		if v > MaxValue {
			t.Fatalf("Next returned %d, above %d", v, MaxValue)
		}
		if seen[v] {
			t.Fatalf("value %d repeated after %d draws", v, i)
		}
		seen[v] = true
	}
	if len(seen) != 255 {
		t.Errorf("expected 255 distinct values, got %d", len(seen))
	}

	// The sequence wraps after a full period.
	first := New(1).Next()
	if got := r.Next(); got != first {
		t.Errorf("expected sequence to restart with %d, got %d", first, got)
	}
}

func TestNextIsDeterministic(t *testing.T) {
	a := New(99)
	b := New(99)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("generators with equal seeds diverged at draw %d", i)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	cases := []struct {
		low, high uint8
	}{
		{0, 1},
		{0, 11},
		{0, 53},
		{3, 9},
		{100, 101},
		{0, 254},
		{253, 254},
	}

	for _, tc := range cases {
		r := New(7)
		for i := 0; i < 10000; i++ {
			v := r.Range(tc.low, tc.high)
			if v < tc.low || v > tc.high {
				t.Fatalf("Range(%d, %d) returned %d", tc.low, tc.high, v)
			}
		}
	}
}

func TestRangeCoversBothValues(t *testing.T) {
	r := New(5)
	counts := [2]int{}
	for i := 0; i < 1000; i++ {
		counts[r.Range(0, 1)]++
	}
	if counts[0] == 0 || counts[1] == 0 {
		t.Errorf("expected both values to appear, got %v", counts)
	}
}

func TestRangeDiscardsBiasedBand(t *testing.T) {
	// With a span of 100 over raw values 0..254, raw draws 200..254 fall in
	// the short trailing band and must be skipped.
	r := New(1)
	raw := New(1)
	for i := 0; i < 5000; i++ {
		var want uint8
		for {
			v := raw.Next()
			if v < 200 {
				want = v % 100
				break
			}
		}
		if got := r.Range(0, 99); got != want {
			t.Fatalf("draw %d: Range(0, 99) = %d, want %d", i, got, want)
		}
	}
}

func TestRangeOffsetsByLow(t *testing.T) {
	r := New(77)
	raw := New(77)
	for i := 0; i < 1000; i++ {
		var want uint8
		for {
			v := raw.Next()
			if v < 250 {
				want = 10 + v%10
				break
			}
		}
		if got := r.Range(10, 19); got != want {
			t.Fatalf("draw %d: Range(10, 19) = %d, want %d", i, got, want)
		}
	}
}

func TestRangePanicsOnInvalidArguments(t *testing.T) {
	cases := []struct {
		low, high uint8
	}{
		{5, 5},
		{6, 5},
		{0, 255},
	}
	for _, tc := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Range(%d, %d) should panic", tc.low, tc.high)
				}
			}()
			New(1).Range(tc.low, tc.high)
		}()
	}
}
