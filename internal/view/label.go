package view

import (
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2/theme"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
)

const (
	labelFontSize = 10
	labelDPI      = 72
	labelPadding  = 2
)

type labelKey struct {
	text string
	kind keyboard.Kind
}

// labelCache holds rendered note labels. Labels only depend on the note
// name and the key colour, so they survive relayouts.
type labelCache struct {
	font   *truetype.Font
	images map[labelKey]image.Image
}

func newLabelCache() *labelCache {
	c := &labelCache{images: make(map[labelKey]image.Image)}

	f, err := freetype.ParseFont(theme.DefaultTextFont().Content())
	if err != nil {
		log.Printf("Failed to parse font: %v", err)
		return c
	}
	c.font = f
	return c
}

// get returns the label image for text, or nil when nothing can be drawn
func (c *labelCache) get(text string, kind keyboard.Kind) image.Image {
	if text == "" || c.font == nil {
		return nil
	}
	key := labelKey{text: text, kind: kind}
	if img, ok := c.images[key]; ok {
		return img
	}

	fg := color.Color(color.Black)
	if kind == keyboard.Black {
		fg = color.White
	}
	img := renderVerticalLabel(c.font, text, fg)
	c.images[key] = img
	return img
}

// renderVerticalLabel draws text with freetype and rotates it 90 degrees
// counter-clockwise so it reads bottom-to-top along a narrow key.
func renderVerticalLabel(f *truetype.Font, text string, fg color.Color) image.Image {
	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(labelFontSize)
	c.SetDPI(labelDPI)

	face := truetype.NewFace(f, &truetype.Options{Size: labelFontSize, DPI: labelDPI})
	defer face.Close()

	textWidth := 0
	for _, r := range text {
		if adv, ok := face.GlyphAdvance(r); ok {
			textWidth += adv.Round()
		}
	}
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	ascent := metrics.Ascent.Ceil()

	w := textWidth + labelPadding*2
	h := textHeight + labelPadding*2
	src := image.NewRGBA(image.Rect(0, 0, w, h))

	c.SetClip(src.Bounds())
	c.SetDst(src)
	c.SetSrc(image.NewUniform(fg))
	if _, err := c.DrawString(text, freetype.Pt(labelPadding, labelPadding+ascent)); err != nil {
		log.Printf("Failed to draw label %q: %v", text, err)
	}

	// (x, y) -> (y, w-1-x)
	rotated := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rotated.Set(y, w-1-x, src.At(x, y))
		}
	}
	return rotated
}
