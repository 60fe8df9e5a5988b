package touchcube

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/touchcube/internal/anim"
	"github.com/SeamusWaldron/touchcube/internal/controls"
)

// Option configures a Controller or Game.
type Option func(*config)

type config struct {
	seed           uint8
	threshold      int8
	timing         anim.Timing
	easyScramble   int
	normalScramble int
	cyclePeriod    time.Duration
	calibration    controls.Calibration
	logger         logrus.FieldLogger
}

// Default values.
const (
	DefaultSeed           = 42
	DefaultThreshold      = 10
	DefaultEasyScramble   = 3
	DefaultNormalScramble = 30
	DefaultCyclePeriod    = 25 * time.Millisecond
)

func defaultConfig() *config {
	return &config{
		seed:           DefaultSeed,
		threshold:      DefaultThreshold,
		timing:         anim.DefaultTiming(),
		easyScramble:   DefaultEasyScramble,
		normalScramble: DefaultNormalScramble,
		cyclePeriod:    DefaultCyclePeriod,
		calibration:    controls.DefaultCalibration(),
		logger:         discardLogger(),
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (c *config) validate() error {
	if c.threshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, c.threshold)
	}
	if c.timing.RotationFrame <= 0 || c.timing.VictoryFrame <= 0 {
		return fmt.Errorf("%w: frame delays must be positive", ErrInvalidTiming)
	}
	if c.timing.VictoryFrames < 0 || c.timing.VictoryFacelets < 0 {
		return fmt.Errorf("%w: victory counts must not be negative", ErrInvalidTiming)
	}
	if c.easyScramble < 0 || c.normalScramble < 0 {
		return ErrInvalidScramble
	}
	if c.cyclePeriod < 0 {
		return fmt.Errorf("%w: cycle period %v", ErrInvalidTiming, c.cyclePeriod)
	}
	return c.calibration.Validate()
}

// WithSeed seeds the random source used for scrambles and victory sparkles.
// Zero is replaced by 42.
func WithSeed(seed uint8) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithThreshold sets how many consecutive confirmed reads commit a gesture.
// The brightness preview always uses a threshold of 1.
func WithThreshold(reads int8) Option {
	return func(c *config) {
		c.threshold = reads
	}
}

// WithRotationDelay sets the delay between the frames of a turn animation.
func WithRotationDelay(d time.Duration) Option {
	return func(c *config) {
		c.timing.RotationFrame = d
	}
}

// WithVictory configures the victory animation: frame delay, number of
// frames and number of random facelets lit per frame.
func WithVictory(delay time.Duration, frames, facelets int) Option {
	return func(c *config) {
		c.timing.VictoryFrame = delay
		c.timing.VictoryFrames = frames
		c.timing.VictoryFacelets = facelets
	}
}

// WithTiming replaces all animation timing at once.
func WithTiming(t Timing) Option {
	return func(c *config) {
		c.timing = t
	}
}

// WithScrambleLengths sets the number of turns applied by reset-easy and
// reset-normal. The normal length is also used at boot.
func WithScrambleLengths(easy, normal int) Option {
	return func(c *config) {
		c.easyScramble = easy
		c.normalScramble = normal
	}
}

// WithCyclePeriod sets the delay a Game waits between idle control cycles.
func WithCyclePeriod(d time.Duration) Option {
	return func(c *config) {
		c.cyclePeriod = d
	}
}

// WithCalibration replaces the sensor geometry.
func WithCalibration(cal Calibration) Option {
	return func(c *config) {
		c.calibration = cal
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
