package keyboard

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinKeys = 12
	MaxKeys = 61

	DefaultKeyCount       = 24
	DefaultBaseNote uint8 = 60

	// Raw slider ranges accepted by the black key setters
	maxRawBlackKeyWidth  = 8
	maxRawBlackKeyHeight = 10

	ratioStep = 0.05
)

var (
	// ErrNoWhiteKeys is returned when a configuration would divide the
	// widget width by zero white keys.
	ErrNoWhiteKeys = errors.New("configuration has no white keys")

	// ErrInvalidSize is returned for non-positive layout dimensions
	ErrInvalidSize = errors.New("widget size must be positive")
)

// Config holds the geometry-affecting settings of a keyboard.
// BlackKeyWidth is a fraction of the white key width, BlackKeyHeight a
// fraction of the widget height.
type Config struct {
	KeyCount       int
	BaseNote       uint8
	BlackKeyWidth  float32
	BlackKeyHeight float32
	ShowLabels     bool
}

// DefaultConfig returns the 24 key, middle C layout
func DefaultConfig() Config {
	return Config{
		KeyCount:       DefaultKeyCount,
		BaseNote:       DefaultBaseNote,
		BlackKeyWidth:  0.80,
		BlackKeyHeight: 0.60,
		ShowLabels:     true,
	}
}

// ClampKeyCount limits n to [MinKeys, MaxKeys]
func ClampKeyCount(n int) int {
	return clamp(n, MinKeys, MaxKeys)
}

// SnapBlackKeyWidth converts a raw slider value in [0, 8] into a width
// fraction in [0.50, 0.90] using 0.05 steps.
func SnapBlackKeyWidth(raw float64) float32 {
	v := clamp(raw, 0, maxRawBlackKeyWidth)
	return float32((math.Round(v) + 10) * ratioStep)
}

// SnapBlackKeyHeight converts a raw slider value in [0, 10] into a height
// fraction in [0.25, 0.75] using 0.05 steps.
func SnapBlackKeyHeight(raw float64) float32 {
	v := clamp(raw, 0, maxRawBlackKeyHeight)
	return float32((math.Round(v) + 5) * ratioStep)
}

// Normalize returns a copy with every field pulled into its valid range.
// Fractions are clamped to their bounds and rounded to the 0.05 step.
func (c Config) Normalize() Config {
	c.KeyCount = ClampKeyCount(c.KeyCount)
	c.BlackKeyWidth = SnapBlackKeyWidth(float64(c.BlackKeyWidth)/ratioStep - 10)
	c.BlackKeyHeight = SnapBlackKeyHeight(float64(c.BlackKeyHeight)/ratioStep - 5)
	return c
}

// Validate checks the preconditions of ComputeLayout
func (c Config) Validate() error {
	if WhiteKeyCount(c.KeyCount) == 0 {
		return fmt.Errorf("%d keys: %w", c.KeyCount, ErrNoWhiteKeys)
	}
	return nil
}

func clamp[T int | float32 | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
