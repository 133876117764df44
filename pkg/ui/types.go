package ui

import (
	"fmt"
	"strings"
)

// Caps is a set of capabilities a view type supports. Capabilities are
// inherited from parent types.
type Caps uint8

const (
	CapContainer Caps = 1 << iota // has children
	CapText                       // carries textual content
	CapEditable                   // text can be replaced by the user
	CapCheckable                  // has a checked state
)

// Type is a named view type in an open-ended hierarchy. Type compatibility
// is answered by IsA, not by Go type assertions, so hosts can describe any
// widget set without new Go types.
type Type struct {
	Name   string
	Parent *Type
	own    Caps
}

// NewType creates a type extending parent (nil for a root type).
func NewType(name string, parent *Type, caps Caps) *Type {
	return &Type{Name: name, Parent: parent, own: caps}
}

// Caps returns the capabilities of t including inherited ones.
func (t *Type) Caps() Caps {
	var c Caps
	for p := t; p != nil; p = p.Parent {
		c |= p.own
	}
	return c
}

// Has reports whether t supports every capability in c.
func (t *Type) Has(c Caps) bool {
	return t.Caps()&c == c
}

// IsA reports whether t is other or a subtype of other.
func (t *Type) IsA(other *Type) bool {
	for p := t; p != nil; p = p.Parent {
		if p == other {
			return true
		}
	}
	return false
}

func (t *Type) String() string {
	return t.Name
}

// Built-in view types.
var (
	ViewType           = NewType("View", nil, 0)
	ViewGroupType      = NewType("ViewGroup", ViewType, CapContainer)
	FrameLayoutType    = NewType("FrameLayout", ViewGroupType, 0)
	LinearLayoutType   = NewType("LinearLayout", ViewGroupType, 0)
	TextViewType       = NewType("TextView", ViewType, CapText)
	EditTextType       = NewType("EditText", TextViewType, CapEditable)
	ButtonType         = NewType("Button", TextViewType, 0)
	CompoundButtonType = NewType("CompoundButton", ButtonType, CapCheckable)
	CheckBoxType       = NewType("CheckBox", CompoundButtonType, 0)
	SwitchType         = NewType("Switch", CompoundButtonType, 0)
	RadioButtonType    = NewType("RadioButton", CompoundButtonType, 0)
	ImageViewType      = NewType("ImageView", ViewType, 0)
)

var builtinTypes = []*Type{
	ViewType, ViewGroupType, FrameLayoutType, LinearLayoutType,
	TextViewType, EditTextType, ButtonType, CompoundButtonType,
	CheckBoxType, SwitchType, RadioButtonType, ImageViewType,
}

// TypeSet resolves type names used by selectors and layouts.
type TypeSet struct {
	byName map[string]*Type
}

// NewTypeSet returns a set holding the built-in types.
func NewTypeSet() *TypeSet {
	s := &TypeSet{byName: make(map[string]*Type, len(builtinTypes))}
	for _, t := range builtinTypes {
		s.byName[t.Name] = t
	}
	return s
}

// Register adds a type named name extending the type named parent.
func (s *TypeSet) Register(name, parent string, caps Caps) (*Type, error) {
	if name == "" {
		return nil, fmt.Errorf("type name is empty")
	}
	if _, ok := s.byName[name]; ok {
		return nil, fmt.Errorf("type %q already registered", name)
	}
	var p *Type
	if parent != "" {
		var ok bool
		p, ok = s.Lookup(parent)
		if !ok {
			return nil, fmt.Errorf("unknown parent type %q for %q", parent, name)
		}
	}
	t := NewType(name, p, caps)
	s.byName[name] = t
	return t, nil
}

// Lookup finds a type by exact name, falling back to the last dotted
// segment so qualified names like "android.widget.Button" resolve too.
func (s *TypeSet) Lookup(name string) (*Type, bool) {
	if t, ok := s.byName[name]; ok {
		return t, true
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		t, ok := s.byName[name[i+1:]]
		return t, ok
	}
	return nil, false
}
