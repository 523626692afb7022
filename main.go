package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-piano/internal/config"
	"github.com/PixPMusic/gopher-piano/internal/keyboard"
	"github.com/PixPMusic/gopher-piano/internal/midi"
	"github.com/PixPMusic/gopher-piano/internal/tray"
	"github.com/PixPMusic/gopher-piano/internal/view"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	kb := keyboard.New(cfg.KeyboardConfig())

	// Key presses are logged with the message they would send, and the
	// message is echoed back onto the keyboard like an inbound note would be.
	// The echo runs after the current pointer pass so it never nests in one.
	encoder := midi.NewEncoder(kb, cfg.MIDI.Channel, func(msg gomidi.Message) error {
		log.Printf("Sending %v", msg)
		fyne.Do(func() {
			midi.Highlight(kb, cfg.MIDI.HighlightChannel, msg)
		})
		return nil
	})
	encoder.SetVelocity(cfg.MIDI.Velocity)
	encoder.Chain(keyboard.ListenerFuncs{
		OnKeyDown: func(index uint8) {
			log.Printf("Key %d down (%s)", index, midi.NoteName(int(kb.Config().BaseNote)+int(index)))
		},
		OnKeyUp: func(index uint8) {
			log.Printf("Key %d up", index)
		},
	})
	kb.SetListener(encoder)

	fyneApp := app.NewWithID("com.pixpmusic.gopherpiano")
	win := fyneApp.NewWindow("GopherPiano")
	piano := view.NewPiano(kb)
	win.SetContent(piano)
	win.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	tray.Setup(fyneApp, kb, tray.Callbacks{
		OnOpen: func() {
			win.Show()
		},
		OnQuit: func() {
			fyneApp.Quit()
		},
	})

	win.ShowAndRun()
}
