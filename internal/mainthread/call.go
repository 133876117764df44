package mainthread

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// PanicError wraps a panic raised by work running on the UI thread.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic on ui thread: %v", e.Value)
}

type result[T any] struct {
	value T
	err   error
}

// Continuation is handed to work running on the UI thread. The first call
// to Resolve, Reject or Finish releases the blocked caller; later calls are
// ignored. Tasks scheduled through its Post methods report panics as the
// call's failure.
type Continuation[T any] struct {
	queue Queue
	once  sync.Once
	ch    chan result[T]
}

// Resolve completes the call with v.
func (c *Continuation[T]) Resolve(v T) {
	c.Finish(v, nil)
}

// Reject completes the call with err.
func (c *Continuation[T]) Reject(err error) {
	var zero T
	c.Finish(zero, err)
}

// Finish completes the call with v and err.
func (c *Continuation[T]) Finish(v T, err error) {
	c.once.Do(func() {
		c.ch <- result[T]{value: v, err: err}
	})
}

// Post implements Queue.
func (c *Continuation[T]) Post(fn func()) bool {
	if !c.queue.Post(c.guard(fn)) {
		c.Reject(ErrLooperStopped)
		return false
	}
	return true
}

// PostDelayed implements Queue.
func (c *Continuation[T]) PostDelayed(fn func(), delay time.Duration) bool {
	if !c.queue.PostDelayed(c.guard(fn), delay) {
		c.Reject(ErrLooperStopped)
		return false
	}
	return true
}

func (c *Continuation[T]) guard(fn func()) func() {
	return func() {
		defer c.recover()
		fn()
	}
}

func (c *Continuation[T]) recover() {
	if r := recover(); r != nil {
		c.Reject(&PanicError{Value: r, Stack: debug.Stack()})
	}
}

// Call runs work on t and blocks until work finishes the continuation, the
// thread stops, or work panics. It must not be called from t itself.
func Call[T any](t Thread, work func(c *Continuation[T])) (T, error) {
	c := &Continuation[T]{queue: t, ch: make(chan result[T], 1)}
	var zero T

	if !t.Post(c.guard(func() { work(c) })) {
		return zero, ErrLooperStopped
	}

	select {
	case r := <-c.ch:
		return r.value, r.err
	case <-t.Done():
		// Prefer a result that raced with the stop.
		select {
		case r := <-c.ch:
			return r.value, r.err
		default:
			return zero, ErrLooperStopped
		}
	}
}
