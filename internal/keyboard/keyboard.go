package keyboard

import (
	"log"
	"math"
)

// Listener receives key transitions produced by pointer input.
// Indices are key positions, not note numbers.
type Listener interface {
	KeyDown(index uint8)
	KeyUp(index uint8)
}

// Resetter is implemented by listeners that hold per-key state of their
// own. Reset is called before a relayout discards keys that are still down;
// no KeyUp is emitted for those keys.
type Resetter interface {
	Reset()
}

// ListenerFuncs adapts a pair of functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnKeyDown func(index uint8)
	OnKeyUp   func(index uint8)
}

func (f ListenerFuncs) KeyDown(index uint8) {
	if f.OnKeyDown != nil {
		f.OnKeyDown(index)
	}
}

func (f ListenerFuncs) KeyUp(index uint8) {
	if f.OnKeyUp != nil {
		f.OnKeyUp(index)
	}
}

// Keyboard owns the key collection of one widget and the pointers
// currently touching it. It is not safe for concurrent use; all calls are
// expected on the UI goroutine.
type Keyboard struct {
	cfg           Config
	width, height float32

	keys     []Key
	pointers PointerSet

	listener Listener
	redraw   func()
}

// New creates a keyboard with cfg normalized. No keys exist until the
// first Resize.
func New(cfg Config) *Keyboard {
	return &Keyboard{
		cfg:      cfg.Normalize(),
		pointers: make(PointerSet),
	}
}

// SetListener installs the key transition listener; nil disables callbacks.
// The keyboard does not own the listener.
func (kb *Keyboard) SetListener(l Listener) {
	kb.listener = l
}

// SetRedrawFunc installs the function called when the visual state changes
func (kb *Keyboard) SetRedrawFunc(fn func()) {
	kb.redraw = fn
}

// Config returns the normalized configuration
func (kb *Keyboard) Config() Config {
	return kb.cfg
}

// Keys returns a copy of the current key collection
func (kb *Keyboard) Keys() []Key {
	out := make([]Key, len(kb.keys))
	copy(out, kb.keys)
	return out
}

// WhiteKeyCount returns the number of white keys in the current layout
func (kb *Keyboard) WhiteKeyCount() int {
	return WhiteKeyCount(kb.cfg.KeyCount)
}

// Resize records a new widget size and lays the keys out again
func (kb *Keyboard) Resize(width, height float32) {
	kb.width, kb.height = width, height
	kb.Relayout()
}

// SetKeyCount clamps n to [MinKeys, MaxKeys] and lays the keys out again
func (kb *Keyboard) SetKeyCount(n int) {
	kb.cfg.KeyCount = ClampKeyCount(n)
	kb.Relayout()
}

// SetBaseNote changes the note number of key 0 and lays the keys out again
func (kb *Keyboard) SetBaseNote(note uint8) {
	kb.cfg.BaseNote = note
	kb.Relayout()
}

// ShiftOctave moves the base note by n octaves. Shifts that would leave
// the note number range are ignored and reported as false.
func (kb *Keyboard) ShiftOctave(n int) bool {
	note := int(kb.cfg.BaseNote) + n*12
	if note < 0 || note > math.MaxUint8 {
		return false
	}
	kb.SetBaseNote(uint8(note))
	return true
}

// SetBlackKeyWidth snaps a raw value in [0, 8] to a width fraction.
// It does not lay the keys out again; call Relayout to apply it.
func (kb *Keyboard) SetBlackKeyWidth(raw float64) {
	kb.cfg.BlackKeyWidth = SnapBlackKeyWidth(raw)
}

// SetBlackKeyHeight snaps a raw value in [0, 10] to a height fraction and
// lays the keys out again.
func (kb *Keyboard) SetBlackKeyHeight(raw float64) {
	kb.cfg.BlackKeyHeight = SnapBlackKeyHeight(raw)
	kb.Relayout()
}

// ToggleLabels flips label visibility and lays the keys out again
func (kb *Keyboard) ToggleLabels() {
	kb.cfg.ShowLabels = !kb.cfg.ShowLabels
	kb.Relayout()
}

// Relayout rebuilds the key collection from the current size and config.
// Previous keys, their down state and all tracked pointers are discarded.
func (kb *Keyboard) Relayout() {
	if r, ok := kb.listener.(Resetter); ok {
		r.Reset()
	}
	kb.pointers = make(PointerSet)
	kb.keys = nil

	if kb.width > 0 && kb.height > 0 {
		keys, err := ComputeLayout(kb.width, kb.height, kb.cfg)
		if err != nil {
			log.Printf("Failed to lay out keyboard: %v", err)
		} else {
			kb.keys = keys
		}
	}
	kb.requestRedraw()
}

// PointerBegin starts tracking new pointers and resolves key state
func (kb *Keyboard) PointerBegin(pointers ...Pointer) {
	kb.track(pointers)
	kb.update()
}

// PointerMove records new positions for pointers and resolves key state
func (kb *Keyboard) PointerMove(pointers ...Pointer) {
	kb.track(pointers)
	kb.update()
}

// PointerEnd stops tracking the given pointers and resolves key state
func (kb *Keyboard) PointerEnd(pointers ...Pointer) {
	kb.untrack(pointers)
	kb.update()
}

// PointerCancel behaves like PointerEnd for interrupted gestures
func (kb *Keyboard) PointerCancel(pointers ...Pointer) {
	kb.untrack(pointers)
	kb.update()
}

// ActivePointers returns the number of tracked pointers
func (kb *Keyboard) ActivePointers() int {
	return len(kb.pointers)
}

func (kb *Keyboard) track(pointers []Pointer) {
	for _, p := range pointers {
		kb.pointers[p.ID] = p.Pos
	}
}

func (kb *Keyboard) untrack(pointers []Pointer) {
	for _, p := range pointers {
		delete(kb.pointers, p.ID)
	}
}

// update runs one resolve pass and requests a single redraw afterwards
func (kb *Keyboard) update() {
	prev := make([]bool, len(kb.keys))
	for i := range kb.keys {
		prev[i] = kb.keys[i].Down
	}

	down, events := Resolve(kb.pointers, kb.keys, prev)
	for _, ev := range events {
		switch ev.Type {
		case KeyDown:
			if kb.listener != nil {
				kb.listener.KeyDown(uint8(ev.Index))
			}
		case KeyUp:
			if kb.listener != nil {
				kb.listener.KeyUp(uint8(ev.Index))
			}
		}
		kb.keys[ev.Index].Down = down[ev.Index]
	}
	kb.requestRedraw()
}

// SetKeyState forces the down state of the key playing note without
// notifying the listener. Use it to mirror notes from another source.
func (kb *Keyboard) SetKeyState(note uint8, down bool) {
	for i := range kb.keys {
		if kb.keys[i].Note == int(note) {
			kb.keys[i].Down = down
			kb.requestRedraw()
		}
	}
}

// AnyKeyDown reports whether at least one key is down
func (kb *Keyboard) AnyKeyDown() bool {
	for i := range kb.keys {
		if kb.keys[i].Down {
			return true
		}
	}
	return false
}

func (kb *Keyboard) requestRedraw() {
	if kb.redraw != nil {
		kb.redraw()
	}
}
