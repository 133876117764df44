// Package snapshot renders a wireframe image of a UI tree: every visible
// view is outlined and labeled with its type and text.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/mj1618/uibridge/pkg/ui"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelMode controls what text is drawn on each outlined view.
type LabelMode int

const (
	// LabelType draws the type name, followed by the text if there is any.
	LabelType LabelMode = iota
	// LabelNone draws outlines only.
	LabelNone
)

// Options configures Render.
type Options struct {
	// Scale converts window pixels to image pixels. Zero means 1.
	Scale float64
	Label LabelMode
}

var (
	background   = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	boxColor     = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Render draws the visible views of the tree at root clipped to window.
// It must run on the UI thread.
func Render(root *ui.View, window ui.Rect, opts Options) *image.RGBA {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(window.Width()) * scale)
	h := int(float64(window.Height()) * scale)
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	var visit func(v *ui.View)
	visit = func(v *ui.View) {
		if v.Visibility != ui.Visible {
			return
		}
		r := v.RectInWindow()
		if window.Intersects(r) {
			drawView(img, v, r, window, scale, opts.Label)
		}
		for i := 0; i < v.ChildCount(); i++ {
			visit(v.ChildAt(i))
		}
	}
	visit(root)
	return img
}

// EncodePNG renders the tree and encodes it as PNG.
func EncodePNG(root *ui.View, window ui.Rect, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(root, window, opts)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Label returns the caption drawn for v in LabelType mode.
func Label(v *ui.View) string {
	if text, ok := v.Text(); ok && text != "" {
		return fmt.Sprintf("%s %q", v.Type().Name, text)
	}
	return v.Type().Name
}

func drawView(img *image.RGBA, v *ui.View, r, window ui.Rect, scale float64, mode LabelMode) {
	x1 := int(float64(r.Left-window.Left) * scale)
	y1 := int(float64(r.Top-window.Top) * scale)
	x2 := int(float64(r.Right-window.Left) * scale)
	y2 := int(float64(r.Bottom-window.Top) * scale)
	drawRectangle(img, x1, y1, x2, y2, boxColor)

	if mode == LabelType {
		drawTextWithOutline(img, Label(v), (x1+x2)/2, (y1+y2)/2, textColor, outlineColor)
	}
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle outlines x1,y1-x2,y2 clipped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline centers text on x,y with a one pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, fg, outline color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Round()
	ascent := face.Metrics().Ascent.Round()
	ox := x - width/2
	oy := y + ascent/2

	drawer := func(c color.Color, dx, dy int) *font.Drawer {
		return &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.P(ox+dx, oy+dy),
		}
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawer(outline, dx, dy).DrawString(text)
		}
	}
	drawer(fg, 0, 0).DrawString(text)
}
