package sim

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/mj1618/uibridge/pkg/ui"
	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayout []byte

// Layout is the YAML description of a simulated window system.
type Layout struct {
	Display struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"display"`
	Package string     `yaml:"package"`
	Types   []TypeSpec `yaml:"types,omitempty"`
	Roots   []RootSpec `yaml:"roots"`
}

// TypeSpec declares a custom view type.
type TypeSpec struct {
	Name   string   `yaml:"name"`
	Parent string   `yaml:"parent"`
	Caps   []string `yaml:"caps,omitempty"` // container, text, editable, checkable
}

// RootSpec is one attached root.
type RootSpec struct {
	Screen  string   `yaml:"screen,omitempty"` // owning screen; empty for popups
	Resumed bool     `yaml:"resumed,omitempty"`
	View    ViewSpec `yaml:"view"`
}

// ViewSpec describes a view and its subtree.
type ViewSpec struct {
	Type       string     `yaml:"type"`
	ID         string     `yaml:"id,omitempty"`
	Frame      [4]int     `yaml:"frame"` // left, top, width, height relative to parent
	Visibility string     `yaml:"visibility,omitempty"`
	Text       *string    `yaml:"text,omitempty"`
	Enabled    *bool      `yaml:"enabled,omitempty"`
	Selected   bool       `yaml:"selected,omitempty"`
	Checked    bool       `yaml:"checked,omitempty"`
	Focused    bool       `yaml:"focused,omitempty"`
	Children   []ViewSpec `yaml:"children,omitempty"`
}

// LoadLayout reads a layout file and builds its host.
func LoadLayout(path string, types *ui.TypeSet) (*Host, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided layout file
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(data, types)
}

// ParseLayout builds a host from YAML layout data.
func ParseLayout(data []byte, types *ui.TypeSet) (*Host, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if types == nil {
		types = ui.NewTypeSet()
	}
	return l.Build(types)
}

// Build creates the host described by l, registering custom types in types.
func (l *Layout) Build(types *ui.TypeSet) (*Host, error) {
	if l.Display.Width <= 0 || l.Display.Height <= 0 {
		return nil, fmt.Errorf("layout display size must be positive, got %dx%d", l.Display.Width, l.Display.Height)
	}
	for _, ts := range l.Types {
		caps, err := parseCaps(ts.Caps)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", ts.Name, err)
		}
		if _, err := types.Register(ts.Name, ts.Parent, caps); err != nil {
			return nil, err
		}
	}

	h := NewHost(l.Display.Width, l.Display.Height)
	screens := make(map[string]*Screen)
	for i, rs := range l.Roots {
		v, err := buildView(h, l.Package, types, rs.View)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		var s *Screen
		if rs.Screen != "" {
			if _, dup := screens[rs.Screen]; dup {
				return nil, fmt.Errorf("root %d: screen %q already owns a root", i, rs.Screen)
			}
			s = NewScreen(rs.Screen)
			s.KeyboardShown = findFocused(v) != nil
			screens[rs.Screen] = s
		}
		h.Attach(v, s)
		if rs.Resumed {
			if s == nil {
				return nil, fmt.Errorf("root %d: only screen-owned roots can be resumed", i)
			}
			h.Resume(s)
		}
	}
	return h, nil
}

func buildView(h *Host, pkg string, types *ui.TypeSet, spec ViewSpec) (*ui.View, error) {
	t, ok := types.Lookup(spec.Type)
	if !ok {
		return nil, fmt.Errorf("unknown view type %q", spec.Type)
	}
	v := ui.NewView(t)
	if spec.ID != "" {
		v.ID = h.DefineID(pkg, "id", spec.ID)
	}
	v.Left, v.Top, v.Width, v.Height = spec.Frame[0], spec.Frame[1], spec.Frame[2], spec.Frame[3]
	if v.Width < 0 || v.Height < 0 {
		return nil, fmt.Errorf("%s: negative size", spec.Type)
	}
	vis, err := parseVisibility(spec.Visibility)
	if err != nil {
		return nil, err
	}
	v.Visibility = vis
	if spec.Enabled != nil {
		v.Enabled = *spec.Enabled
	}
	v.Selected = spec.Selected
	v.Checked = spec.Checked
	v.Focused = spec.Focused
	if spec.Text != nil {
		if err := v.SetText(*spec.Text); err != nil {
			return nil, err
		}
	}
	installBehavior(v)

	for _, cs := range spec.Children {
		c, err := buildView(h, pkg, types, cs)
		if err != nil {
			return nil, err
		}
		if err := v.AddChild(c); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// installBehavior gives widgets the default reactions of a real toolkit:
// buttons consume touches and checkable ones toggle on release, editable
// views take focus on press.
func installBehavior(v *ui.View) {
	t := v.Type()
	switch {
	case t.Has(ui.CapEditable):
		v.OnTouch = func(v *ui.View, ev *ui.MotionEvent) bool {
			if ev.Action == ui.ActionDown {
				v.Focused = true
			}
			return true
		}
	case t.IsA(ui.ButtonType):
		v.OnTouch = func(v *ui.View, ev *ui.MotionEvent) bool {
			if ev.Action == ui.ActionUp && t.Has(ui.CapCheckable) && v.RectInWindow().Contains(ev.X, ev.Y) {
				v.Checked = !v.Checked
			}
			return true
		}
	}
}

func parseVisibility(s string) (ui.Visibility, error) {
	switch strings.ToLower(s) {
	case "", "visible":
		return ui.Visible, nil
	case "invisible":
		return ui.Invisible, nil
	case "gone":
		return ui.Gone, nil
	default:
		return ui.Visible, fmt.Errorf("unknown visibility %q (expected visible, invisible, or gone)", s)
	}
}

func parseCaps(names []string) (ui.Caps, error) {
	var caps ui.Caps
	for _, n := range names {
		switch strings.ToLower(n) {
		case "container":
			caps |= ui.CapContainer
		case "text":
			caps |= ui.CapText
		case "editable":
			caps |= ui.CapEditable
		case "checkable":
			caps |= ui.CapCheckable
		default:
			return 0, fmt.Errorf("unknown capability %q", n)
		}
	}
	return caps, nil
}
