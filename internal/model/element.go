package model

import "github.com/mj1618/uibridge/pkg/ui"

// ElementRef is the client-facing reference to a located element.
type ElementRef struct {
	ELEMENT string `json:"ELEMENT" yaml:"element"`
}

// Rect is a rectangle in the protocol's x/y/width/height form.
type Rect struct {
	X      int `json:"x"      yaml:"x"`
	Y      int `json:"y"      yaml:"y"`
	Width  int `json:"width"  yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// RectFrom converts a window rectangle to its protocol form.
func RectFrom(r ui.Rect) Rect {
	return Rect{X: r.Left, Y: r.Top, Width: r.Width(), Height: r.Height()}
}
