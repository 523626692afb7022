package keyboard

// PointerID identifies one contact point for its whole lifetime
type PointerID string

// Point is a position in widget-local coordinates
type Point struct {
	X, Y float32
}

// Pointer is a contact point and its current position
type Pointer struct {
	ID  PointerID
	Pos Point
}

// PointerSet maps each active pointer to its last known position
type PointerSet map[PointerID]Point

// EventType tells a key press from a key release
type EventType uint8

const (
	KeyDown EventType = iota
	KeyUp
)

func (t EventType) String() string {
	if t == KeyUp {
		return "up"
	}
	return "down"
}

// Event is a single key transition
type Event struct {
	Type  EventType
	Index int
}

// NoKey is returned by HitTest when a point misses every key
const NoKey = -1

// HitTest returns the index of the key under p, or NoKey.
// Black keys are drawn above white keys, so a black hit always wins over
// a white hit at the same point.
func HitTest(keys []Key, p Point) int {
	hit := NoKey
	for i := range keys {
		if !keys[i].Bounds.Contains(p) {
			continue
		}
		if keys[i].Kind == Black {
			return i
		}
		if hit == NoKey {
			hit = i
		}
	}
	return hit
}

// Resolve computes which keys the pointers cover and the transitions
// relative to prev. Events are ordered by ascending key index. A nil or
// short prev is treated as all keys up.
func Resolve(pointers PointerSet, keys []Key, prev []bool) ([]bool, []Event) {
	down := make([]bool, len(keys))
	for _, p := range pointers {
		if i := HitTest(keys, p); i != NoKey {
			down[i] = true
		}
	}

	var events []Event
	for i := range down {
		was := i < len(prev) && prev[i]
		if was == down[i] {
			continue
		}
		if down[i] {
			events = append(events, Event{Type: KeyDown, Index: i})
		} else {
			events = append(events, Event{Type: KeyUp, Index: i})
		}
	}
	return down, events
}
