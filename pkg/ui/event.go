package ui

import (
	"fmt"
	"sync"
	"time"
)

// Action is the kind of a pointer event.
type Action int

const (
	ActionDown Action = iota
	ActionUp
	ActionMove
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// MotionEvent is a synthetic single-pointer event in window coordinates.
// Events come from ObtainMotionEvent and must be returned with Recycle once
// dispatched; receivers that keep one past dispatch must copy it.
type MotionEvent struct {
	Action    Action
	DownTime  time.Duration // uptime of the gesture's down event
	EventTime time.Duration // uptime of this event
	X, Y      float64
}

var eventPool = sync.Pool{New: func() any { return new(MotionEvent) }}

// ObtainMotionEvent returns a pooled event initialized with the given values.
func ObtainMotionEvent(downTime, eventTime time.Duration, action Action, x, y float64) *MotionEvent {
	ev := eventPool.Get().(*MotionEvent)
	*ev = MotionEvent{
		Action:    action,
		DownTime:  downTime,
		EventTime: eventTime,
		X:         x,
		Y:         y,
	}
	return ev
}

// Recycle returns the event to the pool. The event must not be used after.
func (e *MotionEvent) Recycle() {
	*e = MotionEvent{}
	eventPool.Put(e)
}

var bootTime = time.Now()

// Uptime returns the monotonic time elapsed since the process started.
func Uptime() time.Duration {
	return time.Since(bootTime)
}
