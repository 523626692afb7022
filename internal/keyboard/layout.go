package keyboard

import (
	"fmt"
)

// Kind distinguishes white keys from black keys
type Kind uint8

const (
	White Kind = iota
	Black
)

func (k Kind) String() string {
	if k == Black {
		return "black"
	}
	return "white"
}

// whitePattern marks the white positions of one octave starting at C
var whitePattern = [12]bool{true, false, true, false, true, true, false, true, false, true, false, true}

// KindOf classifies a key position using the repeating 12-key piano pattern
func KindOf(index int) Kind {
	if whitePattern[((index%12)+12)%12] {
		return White
	}
	return Black
}

// Rect is an axis-aligned rectangle in widget-local coordinates
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the rectangle.
// Left and top edges are inclusive, right and bottom edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Key is a single laid-out piano key
type Key struct {
	Index        int
	Note         int // BaseNote + Index
	Kind         Kind
	Bounds       Rect
	CornerRadius float32
	Down         bool
}

// cornerRadiusScale multiplies the black key width ratio into the corner
// radius shared by every key. The ratio is used, not the black key width in
// points, so the default 0.80 gives a radius of 6.4 at any widget size.
const cornerRadiusScale = 8.0

// seam insets keep a one unit gap between neighbouring white keys
const (
	seamOffset = 0.5
	seamHeight = 1
)

// WhiteKeyCount returns the number of white keys among the first n positions
func WhiteKeyCount(n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if KindOf(i) == White {
			count++
		}
	}
	return count
}

// ComputeLayout builds the key collection for a widget of the given size.
// Keys are returned ordered by index; every call allocates a fresh slice
// with all keys up.
func ComputeLayout(width, height float32, cfg Config) ([]Key, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("layout %gx%g: %w", width, height, ErrInvalidSize)
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	whiteKeyWidth := width / float32(WhiteKeyCount(cfg.KeyCount))
	blackKeyWidth := whiteKeyWidth * cfg.BlackKeyWidth
	blackKeyHeight := height * cfg.BlackKeyHeight
	radius := cfg.BlackKeyWidth * cornerRadiusScale

	keys := make([]Key, cfg.KeyCount)
	for i := range keys {
		keys[i] = Key{
			Index:        i,
			Note:         i + int(cfg.BaseNote),
			Kind:         KindOf(i),
			CornerRadius: radius,
		}
	}

	// White keys tile the full width
	x := float32(0)
	for i := range keys {
		if keys[i].Kind != White {
			continue
		}
		keys[i].Bounds = Rect{X: x + seamOffset, Y: 0, W: whiteKeyWidth, H: height - seamHeight}
		x += whiteKeyWidth
	}

	// Black keys sit centred on the boundary left of the next white key
	x = 0
	for i := range keys {
		if keys[i].Kind == White {
			x += whiteKeyWidth
			continue
		}
		keys[i].Bounds = Rect{X: x - blackKeyWidth/2, Y: 0, W: blackKeyWidth, H: blackKeyHeight}
	}

	return keys, nil
}
