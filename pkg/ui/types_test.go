package ui

import "testing"

func TestType_IsA(t *testing.T) {
	tests := []struct {
		typ, other *Type
		want       bool
	}{
		{ButtonType, ButtonType, true},
		{ButtonType, TextViewType, true},
		{ButtonType, ViewType, true},
		{CheckBoxType, CompoundButtonType, true},
		{TextViewType, ButtonType, false},
		{EditTextType, ButtonType, false},
		{FrameLayoutType, ViewGroupType, true},
		{ImageViewType, TextViewType, false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsA(tt.other); got != tt.want {
			t.Errorf("%s.IsA(%s) = %v, want %v", tt.typ, tt.other, got, tt.want)
		}
	}
}

func TestType_CapsAreInherited(t *testing.T) {
	if !SwitchType.Has(CapText | CapCheckable) {
		t.Error("Switch should be text-capable and checkable")
	}
	if EditTextType.Has(CapCheckable) {
		t.Error("EditText should not be checkable")
	}
	if !LinearLayoutType.Has(CapContainer) {
		t.Error("LinearLayout should be a container")
	}
	if ButtonType.Has(CapEditable) {
		t.Error("Button should not be editable")
	}
}

func TestTypeSet_Lookup(t *testing.T) {
	s := NewTypeSet()
	tests := []struct {
		name string
		want *Type
		ok   bool
	}{
		{"Button", ButtonType, true},
		{"android.widget.Button", ButtonType, true},
		{"android.widget.EditText", EditTextType, true},
		{"Unknown", nil, false},
		{"android.widget.", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		got, ok := s.Lookup(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Lookup(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTypeSet_Register(t *testing.T) {
	s := NewTypeSet()
	chip, err := s.Register("Chip", "CheckBox", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !chip.IsA(CompoundButtonType) || !chip.Has(CapCheckable) {
		t.Error("Chip should inherit from CheckBox")
	}
	if got, ok := s.Lookup("com.example.Chip"); !ok || got != chip {
		t.Error("registered type should resolve by qualified name")
	}

	if _, err := s.Register("Chip", "View", 0); err == nil {
		t.Error("duplicate registration should fail")
	}
	if _, err := s.Register("Orphan", "Missing", 0); err == nil {
		t.Error("unknown parent should fail")
	}
	if _, err := s.Register("", "View", 0); err == nil {
		t.Error("empty name should fail")
	}
}
