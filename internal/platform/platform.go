// Package platform selects the UI host the bridge drives.
package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mj1618/uibridge/pkg/ui"
)

// Options configures host construction.
type Options struct {
	Layout string      // Layout file for hosts that build their tree from one
	Types  *ui.TypeSet // Type names available to the host
}

// Factory builds a host.
type Factory func(opts Options) (ui.Host, error)

var (
	mu        sync.Mutex
	factories = map[string]Factory{}
)

// Register makes a host available by name. Host packages call it from init.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = f
}

// ErrUnsupported is returned for unknown host names.
var ErrUnsupported = fmt.Errorf("unsupported host")

// NewHost builds the host registered under name.
func NewHost(name string, opts Options) (ui.Host, error) {
	mu.Lock()
	f, ok := factories[name]
	mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w %q; available: %v", ErrUnsupported, name, Names())
	}
	if opts.Types == nil {
		opts.Types = ui.NewTypeSet()
	}
	return f(opts)
}

// Names lists the registered hosts.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
