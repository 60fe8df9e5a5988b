package controls

import "math"

// Readings holds one "finger present" sample per sensor.
type Readings [NumSensors]bool

// Counters holds the run-length counter of every sensor. A positive value N
// means "on for the last N reads", a negative value -N "off for the last N
// reads".
type Counters [NumSensors]int8

// Debouncer tracks how long each sensor has held its current state.
type Debouncer struct {
	counters Counters
}

// NewDebouncer creates a debouncer with every counter at zero.
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Update feeds one sample of sensor i. Counters saturate instead of wrapping.
func (d *Debouncer) Update(i int, on bool) {
	c := d.counters[i]
	if on {
		switch {
		case c <= 0:
			c = 1
		case c < math.MaxInt8:
			c++
		}
	} else {
		switch {
		case c >= 0:
			c = -1
		case c > math.MinInt8:
			c--
		}
	}
	d.counters[i] = c
}

// UpdateAll feeds one sample of every sensor. Call it once per read cycle,
// whether or not a gesture is pending.
func (d *Debouncer) UpdateAll(r Readings) {
	for i, on := range r {
		d.Update(i, on)
	}
}

// Reset zeroes every counter, so the next gesture needs a fresh press.
func (d *Debouncer) Reset() {
	d.counters = Counters{}
}

// Counter returns the counter of sensor i.
func (d *Debouncer) Counter(i int) int8 {
	return d.counters[i]
}

// Counters returns a snapshot of every counter.
func (d *Debouncer) Counters() Counters {
	return d.counters
}

// Pack returns the readings as a 24-bit mask, sensor 0 in bit 0.
func (r Readings) Pack() uint32 {
	var mask uint32
	for i, on := range r {
		if on {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// UnpackReadings is the inverse of Readings.Pack.
func UnpackReadings(mask uint32) Readings {
	var r Readings
	for i := range r {
		r[i] = mask&(1<<uint(i)) != 0
	}
	return r
}

// ReadingsOf returns readings with only the given sensors on.
func ReadingsOf(sensors ...uint8) Readings {
	var r Readings
	for _, s := range sensors {
		if int(s) < NumSensors {
			r[s] = true
		}
	}
	return r
}
