package view

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
)

// ============ PIANO WIDGET ============

// Piano draws a keyboard.Keyboard and feeds it mouse and drag input.
// Each press of the primary button becomes one pointer with its own ID
// until the button is released or the drag ends.
type Piano struct {
	widget.BaseWidget
	kb *keyboard.Keyboard

	pointer keyboard.PointerID // active mouse gesture, empty when none
}

var (
	_ fyne.Widget       = (*Piano)(nil)
	_ desktop.Mouseable = (*Piano)(nil)
	_ fyne.Draggable    = (*Piano)(nil)
)

// NewPiano creates a widget for kb and routes kb's redraw requests to it
func NewPiano(kb *keyboard.Keyboard) *Piano {
	p := &Piano{kb: kb}
	p.ExtendBaseWidget(p)
	kb.SetRedrawFunc(p.Refresh)
	return p
}

// Keyboard returns the model behind the widget
func (p *Piano) Keyboard() *keyboard.Keyboard {
	return p.kb
}

func (p *Piano) CreateRenderer() fyne.WidgetRenderer {
	return newPianoRenderer(p)
}

// Resize lays the keys out again for the new size
func (p *Piano) Resize(size fyne.Size) {
	if size == p.Size() {
		return
	}
	p.BaseWidget.Resize(size)
	p.kb.Resize(size.Width, size.Height)
}

func (p *Piano) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if p.pointer != "" {
		p.kb.PointerCancel(keyboard.Pointer{ID: p.pointer})
	}
	p.pointer = keyboard.PointerID(uuid.New().String())
	p.kb.PointerBegin(keyboard.Pointer{ID: p.pointer, Pos: toPoint(ev.Position)})
}

func (p *Piano) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p.release()
}

func (p *Piano) Dragged(ev *fyne.DragEvent) {
	if p.pointer == "" {
		return
	}
	p.kb.PointerMove(keyboard.Pointer{ID: p.pointer, Pos: toPoint(ev.Position)})
}

func (p *Piano) DragEnd() {
	p.release()
}

func (p *Piano) release() {
	if p.pointer == "" {
		return
	}
	p.kb.PointerEnd(keyboard.Pointer{ID: p.pointer})
	p.pointer = ""
}

func toPoint(pos fyne.Position) keyboard.Point {
	return keyboard.Point{X: pos.X, Y: pos.Y}
}
