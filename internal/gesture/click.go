package gesture

import (
	"time"

	"github.com/mj1618/uibridge/internal/mainthread"
	"github.com/mj1618/uibridge/pkg/ui"
)

// ClickSettleDelay separates the down and up events of a click.
const ClickSettleDelay = 50 * time.Millisecond

// Click presses the center of v, then releases at the center of v's
// rectangle as it is ClickSettleDelay later. done runs on the UI thread once
// the up event has been dispatched.
func (d *Dispatcher) Click(q mainthread.Queue, v *ui.View, done func(error)) {
	downTime := d.now()
	x, y := center(v)
	d.Send(v, downTime, downTime, ui.ActionDown, x, y)

	ok := q.PostDelayed(func() {
		x, y := center(v)
		d.Send(v, downTime, d.now(), ui.ActionUp, x, y)
		done(nil)
	}, ClickSettleDelay)
	if !ok {
		done(mainthread.ErrLooperStopped)
	}
}
