package view

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
	"github.com/PixPMusic/gopher-piano/internal/midi"
)

var (
	whiteKeyColor = color.White
	blackKeyColor = color.Black
	seamColor     = color.Gray{Y: 0x40}
)

const (
	minWhiteKeyWidth = 12
	minHeight        = 80
	labelMargin      = 4
)

type pianoRenderer struct {
	piano  *Piano
	bg     *canvas.Rectangle
	rects  []*canvas.Rectangle
	labels []*canvas.Image
	cache  *labelCache

	objects []fyne.CanvasObject
}

func newPianoRenderer(p *Piano) *pianoRenderer {
	r := &pianoRenderer{
		piano: p,
		bg:    canvas.NewRectangle(seamColor),
		cache: newLabelCache(),
	}
	r.rebuild(p.kb.Keys())
	return r
}

// rebuild recreates one rectangle and one label per key. White keys come
// first so black keys are drawn on top of them.
func (r *pianoRenderer) rebuild(keys []keyboard.Key) {
	r.rects = make([]*canvas.Rectangle, len(keys))
	r.labels = make([]*canvas.Image, len(keys))
	r.objects = []fyne.CanvasObject{r.bg}

	for _, kind := range []keyboard.Kind{keyboard.White, keyboard.Black} {
		for i, k := range keys {
			if k.Kind != kind {
				continue
			}
			r.rects[i] = canvas.NewRectangle(keyColor(k))
			r.labels[i] = &canvas.Image{FillMode: canvas.ImageFillOriginal}
			r.objects = append(r.objects, r.rects[i], r.labels[i])
		}
	}
}

func (r *pianoRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	r.update(r.piano.kb.Keys())
}

func (r *pianoRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.piano.kb.WhiteKeyCount()*minWhiteKeyWidth), minHeight)
}

func (r *pianoRenderer) Refresh() {
	keys := r.piano.kb.Keys()
	if len(keys) != len(r.rects) {
		r.rebuild(keys)
	}
	r.update(keys)
	canvas.Refresh(r.piano)
}

func (r *pianoRenderer) update(keys []keyboard.Key) {
	if len(keys) != len(r.rects) {
		return
	}
	cfg := r.piano.kb.Config()
	var names []string
	if cfg.ShowLabels {
		names = midi.Labels(cfg.BaseNote, len(keys))
	}

	for i, k := range keys {
		rect := r.rects[i]
		rect.FillColor = keyColor(k)
		rect.CornerRadius = k.CornerRadius
		rect.Move(fyne.NewPos(k.Bounds.X, k.Bounds.Y))
		rect.Resize(fyne.NewSize(k.Bounds.W, k.Bounds.H))
		rect.Refresh()

		img := r.labels[i]
		if !cfg.ShowLabels {
			img.Hide()
			continue
		}
		img.Image = r.cache.get(names[i], k.Kind)
		if img.Image == nil {
			img.Hide()
			continue
		}
		b := img.Image.Bounds()
		w, h := float32(b.Dx()), float32(b.Dy())
		img.SetMinSize(fyne.NewSize(w, h))
		img.Resize(fyne.NewSize(w, h))
		img.Move(fyne.NewPos(k.Bounds.X+(k.Bounds.W-w)/2, k.Bounds.Y+k.Bounds.H-h-labelMargin))
		img.Show()
		img.Refresh()
	}
}

func (r *pianoRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *pianoRenderer) Destroy() {}

func keyColor(k keyboard.Key) color.Color {
	if k.Down {
		return theme.Color(theme.ColorNamePrimary)
	}
	if k.Kind == keyboard.Black {
		return blackKeyColor
	}
	return whiteKeyColor
}
