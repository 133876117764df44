package ui

import (
	"errors"
	"fmt"
)

// NoID is the identifier of views without a resource id.
const NoID = -1

// Visibility is a view's own visibility flag.
type Visibility int

const (
	Visible Visibility = iota
	Invisible
	Gone
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Invisible:
		return "invisible"
	case Gone:
		return "gone"
	default:
		return fmt.Sprintf("visibility(%d)", int(v))
	}
}

var (
	ErrNotContainer = errors.New("view type cannot hold children")
	ErrHasParent    = errors.New("view already has a parent")
	ErrNoText       = errors.New("view type has no text content")
	ErrNotEditable  = errors.New("view is not editable")
)

// View is a node of the live UI tree. Views are owned by the UI thread:
// every read and mutation must happen there.
type View struct {
	ID         int
	Visibility Visibility
	Enabled    bool
	Selected   bool
	Checked    bool
	Focused    bool

	// Left and Top are relative to the parent view.
	Left, Top     int
	Width, Height int

	// OnTouch receives pointer events that reach this view. It reports
	// whether the event was consumed.
	OnTouch func(v *View, ev *MotionEvent) bool
	// OnTextChanged is called after SetText changes the text.
	OnTextChanged func(v *View, text string)

	typ         *Type
	text        *string
	parent      *View
	children    []*View
	touchTarget *View
}

// NewView creates a detached, enabled, visible view of type t.
func NewView(t *Type) *View {
	if t == nil {
		t = ViewType
	}
	return &View{ID: NoID, Enabled: true, typ: t}
}

// Type returns the runtime type of the view.
func (v *View) Type() *Type { return v.typ }

// Parent returns the parent view, or nil for a root.
func (v *View) Parent() *View { return v.parent }

// ChildCount returns the number of children.
func (v *View) ChildCount() int { return len(v.children) }

// ChildAt returns the i-th child in child order.
func (v *View) ChildAt(i int) *View { return v.children[i] }

// AddChild appends c to v's children.
func (v *View) AddChild(c *View) error {
	if !v.typ.Has(CapContainer) {
		return fmt.Errorf("add child to %s: %w", v.typ, ErrNotContainer)
	}
	if c.parent != nil {
		return fmt.Errorf("add %s to %s: %w", c.typ, v.typ, ErrHasParent)
	}
	c.parent = v
	v.children = append(v.children, c)
	return nil
}

// RemoveChild detaches c from v. It is a no-op if c is not a child of v.
func (v *View) RemoveChild(c *View) {
	for i, child := range v.children {
		if child == c {
			copy(v.children[i:], v.children[i+1:])
			v.children[len(v.children)-1] = nil
			v.children = v.children[:len(v.children)-1]
			c.parent = nil
			if v.touchTarget == c {
				v.touchTarget = nil
			}
			return
		}
	}
}

// RootView returns the top-most ancestor of v.
func (v *View) RootView() *View {
	r := v
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Text returns the text content and whether the view has any.
func (v *View) Text() (string, bool) {
	if v.text == nil {
		return "", false
	}
	return *v.text, true
}

// SetText replaces the text content of a text-capable view.
func (v *View) SetText(s string) error {
	if !v.typ.Has(CapText) {
		return fmt.Errorf("set text on %s: %w", v.typ, ErrNoText)
	}
	v.text = &s
	if v.OnTextChanged != nil {
		v.OnTextChanged(v, s)
	}
	return nil
}

// ClearText removes the text content entirely.
func (v *View) ClearText() { v.text = nil }

// IsShown reports whether v and all of its ancestors are Visible.
func (v *View) IsShown() bool {
	for p := v; p != nil; p = p.parent {
		if p.Visibility != Visible {
			return false
		}
	}
	return true
}

// LocationInWindow returns the window coordinates of the view's origin.
func (v *View) LocationInWindow() (x, y int) {
	for p := v; p != nil; p = p.parent {
		x += p.Left
		y += p.Top
	}
	return x, y
}

// RectInWindow returns the view's current rectangle in window coordinates.
func (v *View) RectInWindow() Rect {
	x, y := v.LocationInWindow()
	return Rect{Left: x, Top: y, Right: x + v.Width, Bottom: y + v.Height}
}

// DispatchTouchEvent delivers ev to the deepest shown child under the
// pointer, falling back to v's own handler. Events after a down go to the
// view that consumed the down until the gesture ends with an up.
func (v *View) DispatchTouchEvent(ev *MotionEvent) bool {
	if ev.Action == ActionDown {
		v.touchTarget = nil
		for i := len(v.children) - 1; i >= 0; i-- {
			c := v.children[i]
			if c.Visibility != Visible || !c.RectInWindow().Contains(ev.X, ev.Y) {
				continue
			}
			if c.DispatchTouchEvent(ev) {
				v.touchTarget = c
				return true
			}
		}
		return v.onTouch(ev)
	}

	var handled bool
	if t := v.touchTarget; t != nil {
		handled = t.DispatchTouchEvent(ev)
	} else {
		handled = v.onTouch(ev)
	}
	if ev.Action == ActionUp {
		v.touchTarget = nil
	}
	return handled
}

func (v *View) onTouch(ev *MotionEvent) bool {
	if v.OnTouch == nil || !v.Enabled {
		return false
	}
	return v.OnTouch(v, ev)
}

func (v *View) String() string {
	if v.ID != NoID {
		return fmt.Sprintf("%s#%d", v.typ, v.ID)
	}
	return v.typ.String()
}
