// Package server maps protocol commands to UI-thread handlers and exposes
// them over HTTP and MCP.
package server

import (
	"strings"
	"sync"

	"github.com/mj1618/uibridge/internal/gesture"
	"github.com/mj1618/uibridge/internal/locator"
	"github.com/mj1618/uibridge/internal/mainthread"
	"github.com/mj1618/uibridge/internal/model"
	"github.com/mj1618/uibridge/internal/session"
	"github.com/mj1618/uibridge/internal/snapshot"
	"github.com/mj1618/uibridge/pkg/ui"
	"go.uber.org/zap"
)

// Config holds the collaborators of a Router.
type Config struct {
	Thread mainthread.Thread
	Host   ui.Host

	// Optional; zero values select ui.NewTypeSet(), session.New(0, 0) and a
	// no-op logger.
	Types   *ui.TypeSet
	Session *session.State
	Logger  *zap.Logger

	// Shots configures the screenshot command.
	Shots snapshot.Options
}

// Request is a matched command.
type Request struct {
	Command
	segments []string
}

// Handle returns the second-to-last path segment, where element commands
// carry their element handle.
func (r *Request) Handle() string {
	if len(r.segments) < 2 {
		return ""
	}
	return r.segments[len(r.segments)-2]
}

// Last returns the final path segment.
func (r *Request) Last() string {
	if len(r.segments) == 0 {
		return ""
	}
	return r.segments[len(r.segments)-1]
}

type handlerFunc func(req *Request, c *mainthread.Continuation[Response])

type route struct {
	method  string
	pattern []string
	handle  handlerFunc
}

// matches reports whether the trailing segments of the path match the
// pattern; "*" matches any single segment.
func (rt route) matches(method string, segments []string) bool {
	if method != rt.method || len(segments) < len(rt.pattern) {
		return false
	}
	tail := segments[len(segments)-len(rt.pattern):]
	for i, p := range rt.pattern {
		if p != "*" && p != tail[i] {
			return false
		}
	}
	return true
}

// Router runs one command at a time on the UI thread. The first route
// matching a command wins.
type Router struct {
	mu      sync.Mutex
	thread  mainthread.Thread
	host    ui.Host
	types   *ui.TypeSet
	session *session.State
	locator *locator.Locator
	gesture *gesture.Dispatcher
	refs    *model.Refs[ui.View]
	shots   snapshot.Options
	log     *zap.Logger
	routes  []route
}

// NewRouter creates a router for cfg.
func NewRouter(cfg Config) *Router {
	if cfg.Types == nil {
		cfg.Types = ui.NewTypeSet()
	}
	if cfg.Session == nil {
		cfg.Session = session.New(0, 0)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	loc := locator.New(cfg.Host)
	r := &Router{
		thread:  cfg.Thread,
		host:    cfg.Host,
		types:   cfg.Types,
		session: cfg.Session,
		locator: loc,
		gesture: gesture.NewDispatcher(loc),
		refs:    model.NewRefs[ui.View](),
		shots:   cfg.Shots,
		log:     cfg.Logger,
	}
	r.registerRoutes()
	return r
}

func (r *Router) add(method, pattern string, h handlerFunc) {
	r.routes = append(r.routes, route{method: method, pattern: strings.Split(pattern, "/"), handle: h})
}

func (r *Router) registerRoutes() {
	r.add("POST", "session", r.handleNewSession)
	r.add("POST", "implicit_wait", r.handleImplicitWait)
	r.add("GET", "window/rect", r.handleWindowRect)
	r.add("POST", "elements", r.handleFindElements)
	r.add("POST", "*/click", r.element(r.handleClick))
	r.add("GET", "*/displayed", r.element(r.handleDisplayed))
	r.add("GET", "*/enabled", r.element(r.handleEnabled))
	r.add("GET", "*/selected", r.element(r.handleSelected))
	r.add("POST", "*/value", r.element(r.handleSetValue))
	r.add("GET", "*/text", r.element(r.handleText))
	r.add("GET", "*/rect", r.element(r.handleRect))
	r.add("POST", "flick", r.handleFlick)
	r.add("POST", "hide_keyboard", r.handleHideKeyboard)
	r.add("GET", "screenshot", r.handleScreenshot)
	r.add("GET", "status", r.handleStatus)
	r.add("DELETE", "session/*", r.handleDeleteSession)
}

func splitPath(uri string) []string {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	uri = strings.Trim(uri, "/")
	if uri == "" {
		return nil
	}
	return strings.Split(uri, "/")
}

// Dispatch runs cmd to completion. Commands that match no route succeed
// with an empty response.
func (r *Router) Dispatch(cmd Command) (Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Body == nil {
		cmd.Body = Body{}
	}
	log := r.log.With(zap.String("method", cmd.Method), zap.String("uri", cmd.URI))
	log.Debug("command received", zap.Any("body", map[string]any(cmd.Body)))

	segments := splitPath(cmd.URI)
	for _, rt := range r.routes {
		if !rt.matches(cmd.Method, segments) {
			continue
		}
		req := &Request{Command: cmd, segments: segments}
		resp, err := mainthread.Call(r.thread, func(c *mainthread.Continuation[Response]) {
			rt.handle(req, c)
		})
		if err != nil {
			log.Error("command failed", zap.Error(err))
			return nil, err
		}
		log.Debug("command done", zap.Any("response", map[string]any(resp)))
		return resp, nil
	}

	log.Debug("no handler for command")
	return Response{}, nil
}
