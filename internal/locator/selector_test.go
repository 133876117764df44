package locator

import (
	"errors"
	"testing"

	"github.com/mj1618/uibridge/pkg/ui"
)

func TestCompile_ClassName(t *testing.T) {
	h, v := buildScreen()
	types := ui.NewTypeSet()

	p, err := Compile(StrategyClassName, "android.widget.Button", types, h)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := New(h).FindVisible(p)
	if len(got) != 1 || got[0] != v["ok"] {
		t.Errorf("got %v, want the one visible button", got)
	}

	// TextView matches its subtypes too.
	p, _ = Compile(StrategyClassName, "TextView", types, h)
	got, _ = New(h).FindVisible(p)
	if len(got) != 2 {
		t.Errorf("got %d visible text views, want 2 (button and edit text)", len(got))
	}

	if _, err := Compile(StrategyClassName, "Spinner", types, h); err == nil {
		t.Error("unknown class should fail")
	}
}

func TestCompile_XPath(t *testing.T) {
	h, v := buildScreen()
	types := ui.NewTypeSet()

	tests := []struct {
		expr string
		want []*ui.View
	}{
		{"//Button[@text='OK']", []*ui.View{v["ok"]}},
		{`//TextView[@text="Ada"]`, []*ui.View{v["name"]}},
		{"//EditText[@text='OK']", nil},
		{"//View[@text='OK']", []*ui.View{v["ok"]}},
		{"//Button[@text='Nope']", nil},
		{`//TextView[@text="OK"]`, []*ui.View{v["ok"]}},
	}
	for _, tt := range tests {
		p, err := Compile(StrategyXPath, tt.expr, types, h)
		if err != nil {
			t.Errorf("%s: %v", tt.expr, err)
			continue
		}
		got, _ := New(h).FindVisible(p)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %d matches, want %d", tt.expr, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: match %d is %v", tt.expr, i, got[i])
			}
		}
	}
}

func TestCompile_XPathMalformed(t *testing.T) {
	h, _ := buildScreen()
	for _, expr := range []string{
		"//Button[@text='OK'",
		"Button[@text='OK']",
		"//Button",
		"//Button[@id='ok']",
		"//LinearLayout/Button[@text='OK']",
		`//Button[@text='OK"]`,
		`//Button[@text="OK']`,
		"//Button[@text='it's']",
	} {
		_, err := Compile(StrategyXPath, expr, ui.NewTypeSet(), h)
		if !errors.Is(err, ErrUnsupportedPath) {
			t.Errorf("%s: got %v, want ErrUnsupportedPath", expr, err)
		}
	}

	if _, err := Compile(StrategyXPath, "//Spinner[@text='x']", ui.NewTypeSet(), h); err == nil {
		t.Error("unknown type in xpath should fail")
	}
}

func TestCompile_ID(t *testing.T) {
	h, v := buildScreen()
	types := ui.NewTypeSet()

	p, err := Compile(StrategyID, "com.test:id/ok", types, h)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := New(h).FindAll(p)
	if len(got) != 1 || got[0] != v["ok"] {
		t.Errorf("got %v, want the ok button", got)
	}

	// The type segment is not part of the lookup.
	p, err = Compile(StrategyID, "com.test:view/ok", types, h)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := New(h).FindAll(p); len(got) != 1 || got[0] != v["ok"] {
		t.Errorf("com.test:view/ok found %v, want the ok button", got)
	}

	// Unknown strategies fall back to ids.
	p, err = Compile("accessibility id", "com.test:id/ok", types, h)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := New(h).FindAll(p); len(got) != 1 {
		t.Errorf("fallback strategy found %d views, want 1", len(got))
	}

	p, err = Compile(StrategyID, "com.test:id/missing", types, h)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := New(h).FindAll(p); len(got) != 0 {
		t.Errorf("unknown id matched %d views", len(got))
	}

	for _, bad := range []string{"ok", "com.test:ok", "com.test:id/", "com.test:/ok"} {
		if _, err := Compile(StrategyID, bad, types, h); err == nil {
			t.Errorf("%q should be rejected", bad)
		}
	}
}
