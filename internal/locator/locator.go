// Package locator finds views in the active UI tree.
package locator

import (
	"errors"

	"github.com/mj1618/uibridge/pkg/ui"
)

// ErrNoRoot is returned when no root is attached to the window system.
var ErrNoRoot = errors.New("no root views attached")

// Predicate tests a single view.
type Predicate func(v *ui.View) bool

// Locator searches the root of the active UI tree. All methods must run on
// the UI thread.
type Locator struct {
	host ui.Host
}

// New creates a locator over host.
func New(host ui.Host) *Locator {
	return &Locator{host: host}
}

// Root selects the active root. Roots are scanned from the most recently
// added; the first one that either has no owning screen or is owned by the
// resumed screen wins. If none qualifies, the last root is used. The
// platform's root order is not reliable, which is why the resumed screen is
// consulted at all.
func (l *Locator) Root() (ui.Root, error) {
	roots := l.host.Roots()
	if len(roots) == 0 {
		return ui.Root{}, ErrNoRoot
	}
	resumed := l.host.ResumedScreen()
	for i := len(roots) - 1; i >= 0; i-- {
		r := roots[i]
		if r.Screen == nil || (resumed != nil && r.Screen == resumed) {
			return r, nil
		}
	}
	return roots[len(roots)-1], nil
}

// RootView returns the view of the active root.
func (l *Locator) RootView() (*ui.View, error) {
	r, err := l.Root()
	if err != nil {
		return nil, err
	}
	return r.View, nil
}

// RootOf returns the attached root containing v. A detached tree yields
// its top-most view without a screen.
func (l *Locator) RootOf(v *ui.View) ui.Root {
	top := v.RootView()
	for _, r := range l.host.Roots() {
		if r.View == top {
			return r
		}
	}
	return ui.Root{View: top}
}

// WindowRect returns the rectangle of the active display.
func (l *Locator) WindowRect() ui.Rect {
	w, h := l.host.DisplaySize()
	return ui.Rect{Right: w, Bottom: h}
}

// FindAll returns every view under the active root matching p, in pre-order.
func (l *Locator) FindAll(p Predicate) ([]*ui.View, error) {
	root, err := l.RootView()
	if err != nil {
		return nil, err
	}
	return Walk(root, p, nil), nil
}

// FindOne returns the first view in pre-order matching p, or nil.
func (l *Locator) FindOne(p Predicate) (*ui.View, error) {
	root, err := l.RootView()
	if err != nil {
		return nil, err
	}
	return first(root, p), nil
}

// FindVisible is FindAll restricted to views that are visible in the window.
func (l *Locator) FindVisible(p Predicate) ([]*ui.View, error) {
	window := l.WindowRect()
	return l.FindAll(func(v *ui.View) bool {
		return p(v) && IsVisible(v, window)
	})
}

// Walk appends to out every view of the tree at v that matches p, visiting
// parents before children and children in child order.
func Walk(v *ui.View, p Predicate, out []*ui.View) []*ui.View {
	if p(v) {
		out = append(out, v)
	}
	if v.Type().Has(ui.CapContainer) {
		for i := 0; i < v.ChildCount(); i++ {
			out = Walk(v.ChildAt(i), p, out)
		}
	}
	return out
}

func first(v *ui.View, p Predicate) *ui.View {
	if p(v) {
		return v
	}
	if v.Type().Has(ui.CapContainer) {
		for i := 0; i < v.ChildCount(); i++ {
			if found := first(v.ChildAt(i), p); found != nil {
				return found
			}
		}
	}
	return nil
}

// IsVisible reports whether v and its ancestors are shown and v's rectangle
// overlaps window.
func IsVisible(v *ui.View, window ui.Rect) bool {
	return v.IsShown() && window.Intersects(v.RectInWindow())
}
