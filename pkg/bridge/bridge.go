// Package bridge embeds the uibridge automation server in an application.
//
// A host application implements ui.Host over its UI tree and calls Start.
// Commands are then accepted over HTTP and run one at a time on the UI
// thread:
//
//	b, err := bridge.New(host, bridge.Options{Port: 7100})
//	if err != nil {
//		return err
//	}
//	addr, err := b.Start()
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mj1618/uibridge/internal/mainthread"
	"github.com/mj1618/uibridge/internal/server"
	"github.com/mj1618/uibridge/internal/session"
	"github.com/mj1618/uibridge/internal/snapshot"
	"github.com/mj1618/uibridge/pkg/ui"
	"go.uber.org/zap"
)

// DefaultPort is the port used when Options names neither Addr nor Port.
const DefaultPort = 7100

// Thread is the UI thread of an application that runs its own loop. All
// work touching the UI tree is posted to it.
type Thread interface {
	Post(fn func()) bool
	PostDelayed(fn func(), delay time.Duration) bool
	// Done is closed when the thread stops accepting work.
	Done() <-chan struct{}
}

// Options configures a Bridge. The zero value is usable.
type Options struct {
	// Addr is the listen address; it takes precedence over Port.
	Addr string
	Port int

	// Thread is the application's UI thread. If nil the bridge starts its
	// own, and the host must only be mutated through Bridge.Post.
	Thread Thread

	Types        *ui.TypeSet
	ImplicitWait time.Duration
	PollInterval time.Duration

	// ScreenshotScale scales wireframe screenshots; 0 means 1.
	ScreenshotScale float64

	Logger *zap.Logger
}

// Bridge is a running automation server bound to one host.
type Bridge struct {
	router *server.Router
	thread mainthread.Thread
	looper *mainthread.Looper
	addr   string
	log    *zap.Logger

	mu  sync.Mutex
	srv *http.Server
}

// New creates a bridge for host without opening any listener.
func New(host ui.Host, opts Options) (*Bridge, error) {
	if host == nil {
		return nil, errors.New("bridge: nil host")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bridge{log: log, addr: opts.Addr}
	if b.addr == "" {
		port := opts.Port
		if port == 0 {
			port = DefaultPort
		}
		b.addr = fmt.Sprintf(":%d", port)
	}

	if opts.Thread != nil {
		b.thread = opts.Thread
	} else {
		b.looper = mainthread.NewLooper(log.Named("looper")).Start()
		b.thread = b.looper
	}

	b.router = server.NewRouter(server.Config{
		Thread:  b.thread,
		Host:    host,
		Types:   opts.Types,
		Session: session.New(opts.ImplicitWait, opts.PollInterval),
		Logger:  log.Named("router"),
		Shots:   snapshot.Options{Scale: opts.ScreenshotScale},
	})
	return b, nil
}

// Post runs fn on the UI thread.
func (b *Bridge) Post(fn func()) bool {
	return b.thread.Post(fn)
}

// Handler returns the HTTP transport of the bridge.
func (b *Bridge) Handler() http.Handler {
	return server.NewHTTPHandler(b.router)
}

// Dispatch runs a single command in process.
func (b *Bridge) Dispatch(method, uri string, body map[string]any) (map[string]any, error) {
	resp, err := b.router.Dispatch(server.Command{Method: method, URI: uri, Body: body})
	return resp, err
}

// ErrStarted is returned by Start when the bridge is already serving.
var ErrStarted = errors.New("bridge already started")

// Start listens on the configured address and serves in the background.
// It returns the bound address.
func (b *Bridge) Start() (net.Addr, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.srv != nil {
		return nil, ErrStarted
	}
	ln, err := net.Listen("tcp", b.addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", b.addr, err)
	}
	srv := b.newServer()
	b.srv = srv
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.log.Error("http server stopped", zap.Error(err))
		}
	}()
	b.log.Info("bridge listening", zap.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (b *Bridge) ListenAndServe(ctx context.Context) error {
	addr, err := b.Start()
	if err != nil {
		return err
	}
	<-ctx.Done()
	b.log.Info("bridge shutting down", zap.String("addr", addr.String()))
	return b.Close()
}

// ServeMCP serves the MCP tool surface over transport until it fails.
func (b *Bridge) ServeMCP(transport string, port int, version string) error {
	return server.NewMCPServer(b.router, version).Serve(transport, port)
}

// Close stops the HTTP server and the bridge's own UI thread, if any.
// Commands in flight fail with an error.
func (b *Bridge) Close() error {
	b.mu.Lock()
	srv := b.srv
	b.srv = nil
	b.mu.Unlock()

	var err error
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(ctx)
	}
	if b.looper != nil {
		b.looper.Quit()
	}
	return err
}

func (b *Bridge) newServer() *http.Server {
	return &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(b.log),
	}
}
