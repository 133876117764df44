package gesture

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mj1618/uibridge/internal/locator"
	"github.com/mj1618/uibridge/internal/mainthread"
	"github.com/mj1618/uibridge/internal/platform/sim"
	"github.com/mj1618/uibridge/pkg/ui"
)

type fixture struct {
	host   *sim.Host
	screen *sim.Screen
	target *ui.View
	d      *Dispatcher
}

// newFixture attaches a screen whose root holds one button at
// (100,200)-(300,300).
func newFixture() *fixture {
	h := sim.NewHost(1000, 1000)
	root := ui.NewView(ui.FrameLayoutType)
	root.Width, root.Height = 1000, 1000
	btn := ui.NewView(ui.ButtonType)
	btn.Left, btn.Top, btn.Width, btn.Height = 100, 200, 200, 100
	btn.OnTouch = func(*ui.View, *ui.MotionEvent) bool { return true }
	if err := root.AddChild(btn); err != nil {
		panic(err)
	}
	s := sim.NewScreen("main")
	h.Attach(root, s)
	h.Resume(s)
	return &fixture{host: h, screen: s, target: btn, d: NewDispatcher(locator.New(h))}
}

func run(t *testing.T, work func(c *mainthread.Continuation[struct{}], done func(error))) error {
	t.Helper()
	l := mainthread.NewLooper(nil).Start()
	t.Cleanup(l.Quit)
	_, err := mainthread.Call(l, func(c *mainthread.Continuation[struct{}]) {
		work(c, func(err error) { c.Finish(struct{}{}, err) })
	})
	return err
}

func TestSend_ScreenOwnedRoot(t *testing.T) {
	f := newFixture()
	f.d.Send(f.target, 0, 0, ui.ActionDown, 150, 250)

	if len(f.screen.Touches) != 1 {
		t.Fatalf("screen saw %d events, want 1", len(f.screen.Touches))
	}
	if ev := f.screen.Touches[0]; ev.Action != ui.ActionDown || ev.X != 150 || ev.Y != 250 {
		t.Errorf("got %v at (%v,%v)", ev.Action, ev.X, ev.Y)
	}
}

func TestSend_RootWithoutScreen(t *testing.T) {
	f := newFixture()
	popup := ui.NewView(ui.ButtonType)
	popup.Width, popup.Height = 50, 50
	var got []ui.Action
	popup.OnTouch = func(_ *ui.View, ev *ui.MotionEvent) bool {
		got = append(got, ev.Action)
		return true
	}
	f.host.Attach(popup, nil)

	if !f.d.Send(popup, 0, 0, ui.ActionDown, 10, 10) {
		t.Error("event was not handled")
	}
	if len(got) != 1 || got[0] != ui.ActionDown {
		t.Errorf("popup got %v", got)
	}
	if len(f.screen.Touches) != 0 {
		t.Error("screen should not see events for another root")
	}
}

func TestClick(t *testing.T) {
	f := newFixture()
	// The button moves as soon as it is pressed.
	f.target.OnTouch = func(v *ui.View, ev *ui.MotionEvent) bool {
		if ev.Action == ui.ActionDown {
			v.Left += 400
		}
		return true
	}

	err := run(t, func(c *mainthread.Continuation[struct{}], done func(error)) {
		f.d.Click(c, f.target, done)
	})
	if err != nil {
		t.Fatal(err)
	}

	touches := f.screen.Touches
	if len(touches) != 2 {
		t.Fatalf("got %d events, want 2", len(touches))
	}
	down, up := touches[0], touches[1]
	if down.Action != ui.ActionDown || down.X != 200 || down.Y != 250 {
		t.Errorf("down: %v at (%v,%v), want down at (200,250)", down.Action, down.X, down.Y)
	}
	if up.Action != ui.ActionUp || up.X != 600 || up.Y != 250 {
		t.Errorf("up: %v at (%v,%v), want up at (600,250)", up.Action, up.X, up.Y)
	}
	if gap := up.EventTime - down.EventTime; gap < ClickSettleDelay {
		t.Errorf("up followed down after %v, want at least %v", gap, ClickSettleDelay)
	}
	if up.DownTime != down.DownTime {
		t.Error("up should carry the down time of its gesture")
	}
}

func TestNewPlan(t *testing.T) {
	p, err := NewPlan(0, 0, 300, 400, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if p.Duration != 500*time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", p.Duration)
	}
	if p.Interval != 10*time.Millisecond {
		t.Errorf("Interval = %v, want 10ms", p.Interval)
	}
	if p.Index() != -1 || p.Done() {
		t.Error("new plan should not have started")
	}

	// 100px at 3000px/s is 33.3ms, 0.67ms per step.
	p, _ = NewPlan(0, 0, 100, 0, 3000)
	if p.Interval != time.Millisecond {
		t.Errorf("Interval = %v, want rounding to 1ms", p.Interval)
	}
}

func TestNewPlan_InvalidSpeed(t *testing.T) {
	for _, speed := range []float64{0, -100, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewPlan(0, 0, 10, 10, speed); !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("speed %v: got %v, want ErrInvalidSpeed", speed, err)
		}
	}
}

func TestPlan_Advance(t *testing.T) {
	p, _ := NewPlan(10, 20, 100, -50, 1000)
	var steps []Step
	for i := time.Duration(0); !p.Done(); i++ {
		steps = append(steps, p.Advance(5*time.Second+i*time.Millisecond))
	}

	if len(steps) != FlickSteps+1 {
		t.Fatalf("got %d steps, want %d", len(steps), FlickSteps+1)
	}
	for i, s := range steps {
		if s.Index != i {
			t.Errorf("step %d has index %d", i, s.Index)
		}
		if s.DownTime != 5*time.Second {
			t.Errorf("step %d: down time %v, want 5s", i, s.DownTime)
		}
		want := ui.ActionMove
		switch i {
		case 0:
			want = ui.ActionDown
		case FlickSteps:
			want = ui.ActionUp
		}
		if s.Action != want {
			t.Errorf("step %d: got %v, want %v", i, s.Action, want)
		}
		f := float64(i) / FlickSteps
		if s.X != 10+100*f || s.Y != 20-50*f {
			t.Errorf("step %d at (%v,%v)", i, s.X, s.Y)
		}
	}
}

func TestFlick(t *testing.T) {
	f := newFixture()
	err := run(t, func(c *mainthread.Continuation[struct{}], done func(error)) {
		f.d.Flick(c, f.target, 100, 50, 20000, done)
	})
	if err != nil {
		t.Fatal(err)
	}

	touches := f.screen.Touches
	if len(touches) != FlickSteps+1 {
		t.Fatalf("got %d events, want %d", len(touches), FlickSteps+1)
	}
	if touches[0].Action != ui.ActionDown || touches[0].X != 200 || touches[0].Y != 250 {
		t.Errorf("first event: %v at (%v,%v)", touches[0].Action, touches[0].X, touches[0].Y)
	}
	for s := 1; s < FlickSteps; s++ {
		ev := touches[s]
		f := float64(s) / FlickSteps
		if ev.Action != ui.ActionMove || ev.X != 200+100*f || ev.Y != 250+50*f {
			t.Errorf("step %d: %v at (%v,%v)", s, ev.Action, ev.X, ev.Y)
		}
		if ev.EventTime < touches[s-1].EventTime {
			t.Errorf("step %d went back in time", s)
		}
	}
	last := touches[FlickSteps]
	if last.Action != ui.ActionUp || last.X != 300 || last.Y != 300 {
		t.Errorf("last event: %v at (%v,%v)", last.Action, last.X, last.Y)
	}
}

func TestFlick_InvalidSpeedDispatchesNothing(t *testing.T) {
	f := newFixture()
	err := run(t, func(c *mainthread.Continuation[struct{}], done func(error)) {
		f.d.Flick(c, f.target, 100, 0, 0, done)
	})
	if !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("got %v, want ErrInvalidSpeed", err)
	}
	if len(f.screen.Touches) != 0 {
		t.Errorf("dispatched %d events", len(f.screen.Touches))
	}
}
