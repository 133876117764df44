package gesture

import (
	"errors"
	"math"
	"time"

	"github.com/mj1618/uibridge/internal/mainthread"
	"github.com/mj1618/uibridge/internal/poll"
	"github.com/mj1618/uibridge/pkg/ui"
)

// FlickSteps is the number of intervals a flick is divided into. A flick
// dispatches FlickSteps+1 events: one down, FlickSteps-1 moves and one up.
const FlickSteps = 50

// ErrInvalidSpeed is returned for a flick speed that is not a positive,
// finite number of pixels per second.
var ErrInvalidSpeed = errors.New("flick speed must be positive and finite")

// Step is a single event of a flick.
type Step struct {
	Index     int
	Action    ui.Action
	X, Y      float64
	DownTime  time.Duration
	EventTime time.Duration
}

// Plan is the playback state of one flick. A new plan is at step -1:
// nothing has been dispatched yet.
type Plan struct {
	StartX, StartY   float64
	OffsetX, OffsetY float64
	// Duration is the time the whole gesture takes at the requested speed.
	Duration time.Duration
	// Interval is Duration/FlickSteps rounded to the nearest millisecond.
	Interval time.Duration

	step     int
	downTime time.Duration
}

// NewPlan plans a flick from (x, y) by (dx, dy) at speed pixels per second.
func NewPlan(x, y, dx, dy, speed float64) (*Plan, error) {
	if !(speed > 0) || math.IsInf(speed, 1) {
		return nil, ErrInvalidSpeed
	}
	seconds := math.Hypot(dx, dy) / speed
	ms := math.Round(seconds * 1000 / FlickSteps)
	return &Plan{
		StartX:   x,
		StartY:   y,
		OffsetX:  dx,
		OffsetY:  dy,
		Duration: time.Duration(seconds * float64(time.Second)),
		Interval: time.Duration(ms) * time.Millisecond,
		step:     -1,
	}, nil
}

// Index returns the last step played, or -1.
func (p *Plan) Index() int { return p.step }

// Done reports whether the up event has been played.
func (p *Plan) Done() bool { return p.step >= FlickSteps }

// Advance moves to the next step at time now and returns it. Calling
// Advance on a finished plan repeats the up event.
func (p *Plan) Advance(now time.Duration) Step {
	if p.step < FlickSteps {
		p.step++
	}
	s := Step{Index: p.step, DownTime: p.downTime, EventTime: now}
	switch p.step {
	case 0:
		p.downTime = now
		s.DownTime = now
		s.Action = ui.ActionDown
		s.X, s.Y = p.StartX, p.StartY
	case FlickSteps:
		s.Action = ui.ActionUp
		s.X, s.Y = p.StartX+p.OffsetX, p.StartY+p.OffsetY
	default:
		f := float64(p.step) / FlickSteps
		s.Action = ui.ActionMove
		s.X, s.Y = p.StartX+p.OffsetX*f, p.StartY+p.OffsetY*f
	}
	return s
}

// Flick drags from the center of v by (dx, dy) at speed pixels per second,
// playing one step per tick of q. done runs on the UI thread after the up
// event, or immediately with ErrInvalidSpeed.
func (d *Dispatcher) Flick(q mainthread.Queue, v *ui.View, dx, dy, speed float64, done func(error)) {
	x, y := center(v)
	plan, err := NewPlan(x, y, dx, dy, speed)
	if err != nil {
		done(err)
		return
	}
	poll.Run(q, plan.Interval, poll.Forever, func() (int, bool, error) {
		s := plan.Advance(d.now())
		d.Send(v, s.DownTime, s.EventTime, s.Action, s.X, s.Y)
		return s.Index, plan.Done(), nil
	}, func(_ int, err error) {
		done(err)
	})
}
