package midi

import (
	"log"
	"sort"

	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
)

// DefaultVelocity is used for note on messages produced by key presses
const DefaultVelocity = 100

// Keyboard is the part of keyboard.Keyboard the bridge needs
type Keyboard interface {
	Config() keyboard.Config
	SetKeyState(note uint8, down bool)
}

// Encoder turns key transitions into Note On/Off messages and hands them
// to send. It implements keyboard.Listener.
type Encoder struct {
	kb       Keyboard
	send     func(midi.Message) error
	channel  uint8
	velocity uint8
	next     keyboard.Listener

	held map[uint8]uint8 // key index -> note sent with Note On
}

// NewEncoder creates an encoder for channel (0-15). Key indices are
// converted to note numbers with the keyboard's current base note.
func NewEncoder(kb Keyboard, channel uint8, send func(midi.Message) error) *Encoder {
	return &Encoder{
		kb:       kb,
		send:     send,
		channel:  channel & 0x0F,
		velocity: DefaultVelocity,
		held:     make(map[uint8]uint8),
	}
}

// SetVelocity changes the velocity of produced note on messages (1-127)
func (e *Encoder) SetVelocity(v uint8) {
	if v == 0 {
		v = 1
	}
	e.velocity = v & 0x7F
}

// Chain forwards every transition to l after encoding it
func (e *Encoder) Chain(l keyboard.Listener) {
	e.next = l
}

func (e *Encoder) KeyDown(index uint8) {
	if note, ok := e.note(index); ok {
		e.held[index] = note
		e.emit(midi.NoteOn(e.channel, note, e.velocity))
	}
	if e.next != nil {
		e.next.KeyDown(index)
	}
}

func (e *Encoder) KeyUp(index uint8) {
	if note, ok := e.held[index]; ok {
		delete(e.held, index)
		e.emit(midi.NoteOff(e.channel, note))
	}
	if e.next != nil {
		e.next.KeyUp(index)
	}
}

// Reset sends Note Off for every note still held, in key order. The
// keyboard calls it before a relayout drops keys that are down.
func (e *Encoder) Reset() {
	e.AllNotesOff()
	if r, ok := e.next.(keyboard.Resetter); ok {
		r.Reset()
	}
}

// AllNotesOff releases every held note
func (e *Encoder) AllNotesOff() {
	indices := make([]int, 0, len(e.held))
	for i := range e.held {
		indices = append(indices, int(i))
	}
	sort.Ints(indices)

	for _, i := range indices {
		note := e.held[uint8(i)]
		delete(e.held, uint8(i))
		e.emit(midi.NoteOff(e.channel, note))
	}
}

func (e *Encoder) note(index uint8) (uint8, bool) {
	n := int(e.kb.Config().BaseNote) + int(index)
	if n > MaxNote {
		return 0, false
	}
	return uint8(n), true
}

func (e *Encoder) emit(msg midi.Message) {
	if e.send == nil {
		return
	}
	if err := e.send(msg); err != nil {
		log.Printf("Failed to send %v: %v", msg, err)
	}
}

// Highlight mirrors a Note On/Off message onto the keyboard without
// producing key events. Messages on other channels are ignored unless
// channel is negative. It reports whether the message was a note message
// for the accepted channel.
func Highlight(kb Keyboard, channel int, msg midi.Message) bool {
	var ch, key, velocity uint8

	switch {
	case msg.GetNoteOn(&ch, &key, &velocity):
		if !acceptChannel(channel, ch) {
			return false
		}
		kb.SetKeyState(key, velocity > 0)
	case msg.GetNoteOff(&ch, &key, &velocity):
		if !acceptChannel(channel, ch) {
			return false
		}
		kb.SetKeyState(key, false)
	default:
		return false
	}
	return true
}

func acceptChannel(want int, got uint8) bool {
	return want < 0 || int(got) == want
}
