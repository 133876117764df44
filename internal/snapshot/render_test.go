package snapshot

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/mj1618/uibridge/pkg/ui"
)

func tree() (*ui.View, *ui.View, *ui.View) {
	root := ui.NewView(ui.FrameLayoutType)
	root.Width, root.Height = 200, 100
	btn := ui.NewView(ui.ButtonType)
	btn.Left, btn.Top, btn.Width, btn.Height = 10, 10, 80, 40
	_ = btn.SetText("OK")
	gone := ui.NewView(ui.ButtonType)
	gone.Left, gone.Top, gone.Width, gone.Height = 120, 10, 60, 40
	gone.Visibility = ui.Gone
	_ = root.AddChild(btn)
	_ = root.AddChild(gone)
	return root, btn, gone
}

func TestRender_OutlinesVisibleViews(t *testing.T) {
	root, _, _ := tree()
	img := Render(root, ui.Rect{Right: 200, Bottom: 100}, Options{Label: LabelNone})

	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("image is %dx%d, want 200x100", b.Dx(), b.Dy())
	}
	if img.RGBAAt(10, 10) != boxColor {
		t.Errorf("button corner = %v, want outline color", img.RGBAAt(10, 10))
	}
	if img.RGBAAt(50, 30) != background {
		t.Errorf("button interior = %v, want background", img.RGBAAt(50, 30))
	}
	if img.RGBAAt(120, 10) != background {
		t.Error("gone view should not be drawn")
	}
}

func TestRender_Scale(t *testing.T) {
	root, _, _ := tree()
	img := Render(root, ui.Rect{Right: 200, Bottom: 100}, Options{Scale: 0.5, Label: LabelNone})
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("image is %dx%d, want 100x50", b.Dx(), b.Dy())
	}
	if img.RGBAAt(5, 5) != boxColor {
		t.Errorf("scaled button corner = %v, want outline color", img.RGBAAt(5, 5))
	}
}

func TestLabel(t *testing.T) {
	_, btn, _ := tree()
	if got := Label(btn); got != `Button "OK"` {
		t.Errorf("Label = %s", got)
	}
	if got := Label(ui.NewView(ui.ImageViewType)); got != "ImageView" {
		t.Errorf("Label = %s", got)
	}
}

func TestEncodePNG(t *testing.T) {
	root, _, _ := tree()
	data, err := EncodePNG(root, ui.Rect{Right: 200, Bottom: 100}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("decoded width = %d", img.Bounds().Dx())
	}
}
