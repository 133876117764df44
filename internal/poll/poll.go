// Package poll retries a probe on the UI thread until it yields a result or
// a deadline passes, without blocking the thread between attempts.
package poll

import (
	"math"
	"runtime/debug"
	"time"

	"github.com/mj1618/uibridge/internal/mainthread"
)

// Forever disables the deadline; the probe alone ends the poll.
const Forever time.Duration = math.MaxInt64

// Probe is evaluated on the UI thread. ok=false means "not ready yet".
type Probe[T any] func() (value T, ok bool, err error)

// Run calls probe immediately and then every interval on q until the probe
// reports ok, fails, or timeout has elapsed since the first call. The attempt
// that starts at or after the deadline is the last one and its value is
// passed to done as is, ready or not. done is called exactly once, on the
// UI thread. Attempts never overlap.
func Run[T any](q mainthread.Queue, interval, timeout time.Duration, probe Probe[T], done func(T, error)) {
	start := time.Now()

	var attempt func()
	attempt = func() {
		now := time.Now()
		v, ok, err := call(probe)
		if err != nil {
			var zero T
			done(zero, err)
			return
		}
		if ok || now.Sub(start) >= timeout {
			done(v, nil)
			return
		}
		if !q.PostDelayed(attempt, interval) {
			var zero T
			done(zero, mainthread.ErrLooperStopped)
		}
	}
	attempt()
}

func call[T any](probe Probe[T]) (v T, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &mainthread.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return probe()
}
