package platform

import (
	"errors"
	"testing"

	"github.com/mj1618/uibridge/pkg/ui"
)

type stubHost struct{ types *ui.TypeSet }

func (stubHost) Roots() []ui.Root { return nil }
func (stubHost) ResumedScreen() ui.Screen { return nil }
func (stubHost) DisplaySize() (int, int) { return 0, 0 }
func (stubHost) Identifier(_, _, _ string) int { return 0 }

func TestNewHost_Registered(t *testing.T) {
	Register("stub", func(opts Options) (ui.Host, error) {
		return stubHost{types: opts.Types}, nil
	})
	defer func() {
		mu.Lock()
		delete(factories, "stub")
		mu.Unlock()
	}()

	h, err := NewHost("stub", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if h.(stubHost).types == nil {
		t.Error("NewHost should default the type set")
	}
}

func TestNewHost_Unsupported(t *testing.T) {
	_, err := NewHost("nope", Options{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}
