// Package sim provides an in-memory UI host whose tree is built from a YAML
// layout. It stands in for a real toolkit in tests and in the CLI.
package sim

import (
	"errors"

	"github.com/mj1618/uibridge/internal/platform"
	"github.com/mj1618/uibridge/pkg/ui"
)

// firstID is the first numeric id handed out by DefineID.
const firstID = 0x7f010000

type idKey struct {
	pkg, kind, name string
}

// Host is a simulated window system. Like a real toolkit it is not safe
// for concurrent use; drive it from the UI thread.
type Host struct {
	Width, Height int

	roots   []ui.Root
	resumed *Screen
	ids     map[idKey]int
	nextID  int
}

func init() {
	platform.Register("sim", func(opts platform.Options) (ui.Host, error) {
		if opts.Layout == "" {
			return ParseLayout(defaultLayout, opts.Types)
		}
		return LoadLayout(opts.Layout, opts.Types)
	})
}

// NewHost creates an empty host with a display of the given size.
func NewHost(width, height int) *Host {
	return &Host{
		Width:  width,
		Height: height,
		ids:    make(map[idKey]int),
		nextID: firstID,
	}
}

// Attach adds v as the most recent root. s may be nil for roots without a
// screen.
func (h *Host) Attach(v *ui.View, s *Screen) {
	r := ui.Root{View: v}
	if s != nil {
		s.root = v
		r.Screen = s
	}
	h.roots = append(h.roots, r)
}

// Detach removes the root v.
func (h *Host) Detach(v *ui.View) {
	for i, r := range h.roots {
		if r.View == v {
			h.roots = append(h.roots[:i], h.roots[i+1:]...)
			return
		}
	}
}

// Resume marks s as the most recently resumed screen.
func (h *Host) Resume(s *Screen) {
	h.resumed = s
}

// DefineID returns the numeric id of a resource name, assigning one the
// first time the name is seen.
func (h *Host) DefineID(pkg, kind, name string) int {
	k := idKey{pkg: pkg, kind: kind, name: name}
	if id, ok := h.ids[k]; ok {
		return id
	}
	id := h.nextID
	h.nextID++
	h.ids[k] = id
	return id
}

// Roots implements ui.Host.
func (h *Host) Roots() []ui.Root {
	return h.roots
}

// ResumedScreen implements ui.Host.
func (h *Host) ResumedScreen() ui.Screen {
	if h.resumed == nil {
		return nil
	}
	return h.resumed
}

// DisplaySize implements ui.Host.
func (h *Host) DisplaySize() (int, int) {
	return h.Width, h.Height
}

// Identifier implements ui.Host.
func (h *Host) Identifier(name, kind, pkg string) int {
	return h.ids[idKey{pkg: pkg, kind: kind, name: name}]
}

// ErrNoFocus is returned when hiding the keyboard with nothing focused.
var ErrNoFocus = errors.New("no focused view")

// Screen is a simulated top-level screen. It records every pointer event it
// receives before passing it to its root.
type Screen struct {
	Name          string
	KeyboardShown bool
	Touches       []ui.MotionEvent

	root *ui.View
}

// NewScreen creates a screen; Host.Attach binds it to a root.
func NewScreen(name string) *Screen {
	return &Screen{Name: name}
}

// Root returns the view the screen owns.
func (s *Screen) Root() *ui.View {
	return s.root
}

// DispatchTouchEvent implements ui.Screen.
func (s *Screen) DispatchTouchEvent(ev *ui.MotionEvent) bool {
	s.Touches = append(s.Touches, *ev)
	if s.root == nil {
		return false
	}
	return s.root.DispatchTouchEvent(ev)
}

// HideSoftKeyboard implements ui.Screen.
func (s *Screen) HideSoftKeyboard() error {
	if s.root == nil || findFocused(s.root) == nil {
		return ErrNoFocus
	}
	s.KeyboardShown = false
	return nil
}

func findFocused(v *ui.View) *ui.View {
	if v.Focused {
		return v
	}
	for i := 0; i < v.ChildCount(); i++ {
		if f := findFocused(v.ChildAt(i)); f != nil {
			return f
		}
	}
	return nil
}
