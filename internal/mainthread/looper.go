// Package mainthread runs work on the single goroutine that owns the UI
// tree and lets other goroutines wait for its outcome.
package mainthread

import (
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrLooperStopped is returned when the UI thread is gone or quits before
// pending work completes.
var ErrLooperStopped = errors.New("ui thread is not running")

// Queue schedules tasks on the UI thread.
type Queue interface {
	// Post enqueues fn. It reports false if the thread no longer accepts work.
	Post(fn func()) bool
	// PostDelayed enqueues fn after delay.
	PostDelayed(fn func(), delay time.Duration) bool
}

// Thread is a Queue whose lifetime can be observed.
type Thread interface {
	Queue
	// Done is closed once the thread stops accepting work.
	Done() <-chan struct{}
}

// Looper is a FIFO task queue drained by one goroutine.
type Looper struct {
	mu       sync.Mutex
	cond     *sync.Cond
	tasks    []func()
	quitting bool
	running  bool
	stopped  chan struct{}
	exited   chan struct{}
	log      *zap.Logger
}

// NewLooper creates a looper. Call Start or Run to begin draining it.
func NewLooper(log *zap.Logger) *Looper {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Looper{
		stopped: make(chan struct{}),
		exited:  make(chan struct{}),
		log:     log,
	}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Start runs the looper on a new goroutine.
func (l *Looper) Start() *Looper {
	go l.Run()
	return l
}

// Run drains the queue on the calling goroutine until Quit.
func (l *Looper) Run() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.mu.Unlock()
	defer close(l.exited)

	for {
		l.mu.Lock()
		for len(l.tasks) == 0 && !l.quitting {
			l.cond.Wait()
		}
		if l.quitting {
			l.tasks = nil
			l.mu.Unlock()
			return
		}
		fn := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.mu.Unlock()

		l.runTask(fn)
	}
}

func (l *Looper) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("ui task panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		}
	}()
	fn()
}

// Post implements Queue.
func (l *Looper) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.quitting {
		return false
	}
	l.tasks = append(l.tasks, fn)
	l.cond.Signal()
	return true
}

// PostDelayed implements Queue.
func (l *Looper) PostDelayed(fn func(), delay time.Duration) bool {
	if delay <= 0 {
		return l.Post(fn)
	}
	select {
	case <-l.stopped:
		return false
	default:
	}
	time.AfterFunc(delay, func() {
		if !l.Post(fn) {
			l.log.Debug("dropped delayed task after quit")
		}
	})
	return true
}

// Quit stops the looper. Pending tasks are discarded.
func (l *Looper) Quit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.quitting {
		return
	}
	l.quitting = true
	close(l.stopped)
	l.cond.Broadcast()
}

// Done implements Thread.
func (l *Looper) Done() <-chan struct{} {
	return l.stopped
}

// Exited is closed when Run has returned.
func (l *Looper) Exited() <-chan struct{} {
	return l.exited
}
