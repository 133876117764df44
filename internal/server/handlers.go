package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mj1618/uibridge/internal/locator"
	"github.com/mj1618/uibridge/internal/mainthread"
	"github.com/mj1618/uibridge/internal/model"
	"github.com/mj1618/uibridge/internal/poll"
	"github.com/mj1618/uibridge/internal/snapshot"
	"github.com/mj1618/uibridge/pkg/ui"
)

// KeyboardSettleDelay is how long hide_keyboard waits for the keyboard to
// close before responding.
const KeyboardSettleDelay = 300 * time.Millisecond

// maxWaitMs is the largest implicit wait, in milliseconds, a Duration holds.
const maxWaitMs = float64(math.MaxInt64 / int64(time.Millisecond))

// ErrNoSuchElement is returned for handles that are unknown or whose view
// has been collected.
var ErrNoSuchElement = errors.New("no such element")

type continuation = mainthread.Continuation[Response]

func (r *Router) handleNewSession(_ *Request, c *continuation) {
	c.Resolve(Response{"sessionId": r.session.Open()})
}

func (r *Router) handleDeleteSession(req *Request, c *continuation) {
	r.session.Close(req.Last())
	c.Resolve(Response{})
}

func (r *Router) handleStatus(_ *Request, c *continuation) {
	c.Resolve(Response{"value": map[string]any{"ready": true}})
}

func (r *Router) handleImplicitWait(req *Request, c *continuation) {
	ms, err := req.Body.Float("ms")
	if err != nil {
		c.Reject(err)
		return
	}
	if ms > maxWaitMs {
		c.Reject(fmt.Errorf("%w: implicit wait %gms out of range", ErrBadRequest, ms))
		return
	}
	if err := r.session.SetImplicitWait(time.Duration(ms * float64(time.Millisecond))); err != nil {
		c.Reject(err)
		return
	}
	c.Resolve(Response{})
}

func (r *Router) handleWindowRect(_ *Request, c *continuation) {
	c.Resolve(Response{"value": model.RectFrom(r.locator.WindowRect())})
}

func (r *Router) handleFindElements(req *Request, c *continuation) {
	using, err := req.Body.String("using")
	if err != nil {
		c.Reject(err)
		return
	}
	value, err := req.Body.String("value")
	if err != nil {
		c.Reject(err)
		return
	}
	match, err := locator.Compile(using, value, r.types, r.host)
	if err != nil {
		c.Reject(err)
		return
	}

	probe := func() ([]*ui.View, bool, error) {
		views, err := r.locator.FindVisible(match)
		return views, len(views) > 0, err
	}
	poll.Run(c, r.session.PollInterval(), r.session.ImplicitWait(), probe, func(views []*ui.View, err error) {
		if err != nil {
			c.Reject(err)
			return
		}
		refs := make([]model.ElementRef, 0, len(views))
		for _, v := range views {
			refs = append(refs, model.ElementRef{ELEMENT: r.refs.Handle(v)})
		}
		c.Resolve(Response{"value": refs})
	})
}

// lookup resolves a handle issued by handleFindElements.
func (r *Router) lookup(handle string) (*ui.View, error) {
	if v := r.refs.Lookup(handle); v != nil {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSuchElement, handle)
}

// element adapts a handler for commands addressing the element whose handle
// is the second-to-last path segment.
func (r *Router) element(h func(v *ui.View, req *Request, c *continuation)) handlerFunc {
	return func(req *Request, c *continuation) {
		v, err := r.lookup(req.Handle())
		if err != nil {
			c.Reject(err)
			return
		}
		h(v, req, c)
	}
}

func (r *Router) handleClick(v *ui.View, _ *Request, c *continuation) {
	r.gesture.Click(c, v, func(err error) {
		c.Finish(Response{}, err)
	})
}

func (r *Router) handleDisplayed(v *ui.View, _ *Request, c *continuation) {
	c.Resolve(Response{"value": locator.IsVisible(v, r.locator.WindowRect())})
}

func (r *Router) handleEnabled(v *ui.View, _ *Request, c *continuation) {
	c.Resolve(Response{"value": v.Enabled})
}

// handleSelected reports the checked state of toggles and the selected
// state of everything else.
func (r *Router) handleSelected(v *ui.View, _ *Request, c *continuation) {
	if v.Type().Has(ui.CapCheckable) {
		c.Resolve(Response{"value": v.Checked})
		return
	}
	c.Resolve(Response{"value": v.Selected})
}

func (r *Router) handleSetValue(v *ui.View, req *Request, c *continuation) {
	parts, err := req.Body.Strings("value")
	if err != nil {
		c.Reject(err)
		return
	}
	if !v.Type().Has(ui.CapEditable) {
		c.Reject(fmt.Errorf("set value on %s: %w", v, ui.ErrNotEditable))
		return
	}
	if err := v.SetText(strings.Join(parts, "")); err != nil {
		c.Reject(err)
		return
	}
	c.Resolve(Response{})
}

func (r *Router) handleText(v *ui.View, _ *Request, c *continuation) {
	if text, ok := v.Text(); ok && v.Type().Has(ui.CapText) {
		c.Resolve(Response{"value": text})
		return
	}
	c.Resolve(Response{"value": nil})
}

func (r *Router) handleRect(v *ui.View, _ *Request, c *continuation) {
	c.Resolve(Response{"value": model.RectFrom(v.RectInWindow())})
}

func (r *Router) handleFlick(req *Request, c *continuation) {
	handle, err := req.Body.String("element")
	if err != nil {
		c.Reject(err)
		return
	}
	v, err := r.lookup(handle)
	if err != nil {
		c.Reject(err)
		return
	}
	var args [3]float64
	for i, key := range []string{"xoffset", "yoffset", "speed"} {
		if args[i], err = req.Body.Float(key); err != nil {
			c.Reject(err)
			return
		}
	}
	r.gesture.Flick(c, v, args[0], args[1], args[2], func(err error) {
		c.Finish(Response{}, err)
	})
}

func (r *Router) handleHideKeyboard(_ *Request, c *continuation) {
	root, err := r.locator.Root()
	if err != nil {
		c.Reject(err)
		return
	}
	if root.Screen == nil {
		c.Reject(fmt.Errorf("hide keyboard: %w", ui.ErrNoScreen))
		return
	}
	if err := root.Screen.HideSoftKeyboard(); err != nil {
		c.Reject(fmt.Errorf("hide keyboard: %w", err))
		return
	}
	c.PostDelayed(func() {
		c.Resolve(Response{})
	}, KeyboardSettleDelay)
}

func (r *Router) handleScreenshot(_ *Request, c *continuation) {
	root, err := r.locator.RootView()
	if err != nil {
		c.Reject(err)
		return
	}
	data, err := snapshot.EncodePNG(root, r.locator.WindowRect(), r.shots)
	if err != nil {
		c.Reject(err)
		return
	}
	c.Resolve(Response{"value": base64.StdEncoding.EncodeToString(data)})
}
