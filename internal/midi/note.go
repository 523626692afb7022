package midi

import (
	"gitlab.com/gomidi/midi/v2"
)

// MaxNote is the highest MIDI note number
const MaxNote = 127

// NoteName returns the pitch name with octave for a note number,
// e.g. the label drawn on a key. Notes outside the MIDI range have no name.
func NoteName(note int) string {
	if note < 0 || note > MaxNote {
		return ""
	}
	return midi.Note(uint8(note)).String()
}

// Labels returns one label per key index for a keyboard starting at base
func Labels(base uint8, count int) []string {
	labels := make([]string, count)
	for i := range labels {
		labels[i] = NoteName(int(base) + i)
	}
	return labels
}
