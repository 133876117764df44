// Package gesture synthesizes pointer input against views: taps with a short
// settle delay between down and up, and flicks played back one step per
// UI-thread tick.
package gesture

import (
	"time"

	"github.com/mj1618/uibridge/pkg/ui"
)

// RootResolver finds the attached root of a view.
type RootResolver interface {
	RootOf(v *ui.View) ui.Root
}

// Dispatcher delivers synthetic pointer events to the tree that owns a view.
// It must only be used on the UI thread.
type Dispatcher struct {
	roots RootResolver
	now   func() time.Duration
}

// NewDispatcher creates a dispatcher that resolves roots through roots.
func NewDispatcher(roots RootResolver) *Dispatcher {
	return &Dispatcher{roots: roots, now: ui.Uptime}
}

// Send dispatches one event to the root of target. Screen-owned roots
// receive it through the screen so window decorations see it as well.
func (d *Dispatcher) Send(target *ui.View, downTime, eventTime time.Duration, action ui.Action, x, y float64) bool {
	ev := ui.ObtainMotionEvent(downTime, eventTime, action, x, y)
	defer ev.Recycle()

	r := d.roots.RootOf(target)
	if r.Screen != nil {
		return r.Screen.DispatchTouchEvent(ev)
	}
	return r.View.DispatchTouchEvent(ev)
}

func center(v *ui.View) (float64, float64) {
	r := v.RectInWindow()
	return float64(r.CenterX()), float64(r.CenterY())
}
