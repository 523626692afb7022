package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen func()
	OnQuit func()
}

// Menu builds the tray menu for kb. The label item tracks the current
// label visibility and the title shows the note range.
func Menu(kb *keyboard.Keyboard, callbacks Callbacks) *fyne.Menu {
	openItem := fyne.NewMenuItem("Open Piano", func() {
		if callbacks.OnOpen != nil {
			callbacks.OnOpen()
		}
	})

	labelsItem := fyne.NewMenuItem("Show Note Labels", nil)
	labelsItem.Checked = kb.Config().ShowLabels

	rangeItem := fyne.NewMenuItem(rangeTitle(kb), nil)
	rangeItem.Disabled = true

	upItem := fyne.NewMenuItem("Octave Up", nil)
	downItem := fyne.NewMenuItem("Octave Down", nil)

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})

	menu := fyne.NewMenu("GopherPiano",
		openItem,
		fyne.NewMenuItemSeparator(),
		labelsItem,
		rangeItem,
		upItem,
		downItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	// Set the actions after menu is created so we can refresh it
	labelsItem.Action = func() {
		kb.ToggleLabels()
		labelsItem.Checked = kb.Config().ShowLabels
		menu.Refresh()
	}
	shift := func(n int) func() {
		return func() {
			if kb.ShiftOctave(n) {
				rangeItem.Label = rangeTitle(kb)
				menu.Refresh()
			}
		}
	}
	upItem.Action = shift(1)
	downItem.Action = shift(-1)

	return menu
}

// Setup installs the tray menu when running as a desktop app
func Setup(app fyne.App, kb *keyboard.Keyboard, callbacks Callbacks) {
	if desk, ok := app.(desktop.App); ok {
		desk.SetSystemTrayMenu(Menu(kb, callbacks))
		desk.SetSystemTrayIcon(theme.MediaPlayIcon())
	}
}

func rangeTitle(kb *keyboard.Keyboard) string {
	cfg := kb.Config()
	first := int(cfg.BaseNote)
	return fmt.Sprintf("Notes %d-%d", first, first+cfg.KeyCount-1)
}
