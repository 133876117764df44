package ui

import "errors"

// ErrNoScreen is returned for operations that need a screen-owned root.
var ErrNoScreen = errors.New("root is not owned by a screen")

// Screen is a top-level screen that owns a root. Input delivered through a
// screen passes its top-level entry point, so system decorations see it too.
type Screen interface {
	DispatchTouchEvent(ev *MotionEvent) bool
	// HideSoftKeyboard hides the input method for the focused view.
	HideSoftKeyboard() error
}

// Root is a top-level view attached to the window system together with its
// owning screen, which is nil for roots without one (popups, overlays).
type Root struct {
	View   *View
	Screen Screen
}

// Host is the UI-tree access layer of the application the bridge runs in.
// All methods are called on the UI thread.
type Host interface {
	// Roots lists the attached roots in the window system's order.
	Roots() []Root
	// ResumedScreen returns the most recently resumed screen, or nil.
	ResumedScreen() Screen
	// DisplaySize returns the active display size in pixels.
	DisplaySize() (width, height int)
	// Identifier resolves a resource name to its numeric id, 0 if unknown.
	Identifier(name, kind, pkg string) int
}
