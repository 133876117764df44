package locator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mj1618/uibridge/pkg/ui"
)

// Selector strategies understood by Compile. Any other strategy is treated
// as an identifier.
const (
	StrategyXPath     = "xpath"
	StrategyClassName = "class name"
	StrategyID        = "id"
)

// ErrUnsupportedPath is returned for path expressions other than
// //Type[@text='literal'].
var ErrUnsupportedPath = errors.New("invalid or unsupported xpath")

var pathPattern = regexp.MustCompile(`^//([^\[\]/]+)\[@text=(?:'([^']*)'|"([^"]*)")\]$`)

// Resolver resolves resource names to numeric ids.
type Resolver interface {
	Identifier(name, kind, pkg string) int
}

// Compile builds the predicate for a selector.
func Compile(strategy, value string, types *ui.TypeSet, ids Resolver) (Predicate, error) {
	switch strategy {
	case StrategyXPath:
		return compilePath(value, types)
	case StrategyClassName:
		return compileClassName(value, types)
	default:
		return compileID(value, ids)
	}
}

func compilePath(expr string, types *ui.TypeSet) (Predicate, error) {
	m := pathPattern.FindStringSubmatch(expr)
	if m == nil {
		return nil, fmt.Errorf("%w %s", ErrUnsupportedPath, expr)
	}
	t, ok := types.Lookup(m[1])
	if !ok {
		return nil, fmt.Errorf("xpath %s: unknown type %q", expr, m[1])
	}
	// Only one of the quoted alternatives participates in a match.
	literal := m[2] + m[3]
	return func(v *ui.View) bool {
		if !v.Type().IsA(t) || !v.Type().Has(ui.CapText) {
			return false
		}
		text, ok := v.Text()
		return ok && text == literal
	}, nil
}

func compileClassName(name string, types *ui.TypeSet) (Predicate, error) {
	t, ok := types.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	return func(v *ui.View) bool {
		return v.Type().IsA(t)
	}, nil
}

// compileID parses "package:type/name". The type segment is required but
// ignored: names are always resolved as kind "id".
func compileID(value string, ids Resolver) (Predicate, error) {
	pkg, rest, ok := strings.Cut(value, ":")
	if !ok {
		return nil, fmt.Errorf("invalid resource id %q: expected package:type/name", value)
	}
	kind, name, ok := strings.Cut(rest, "/")
	if !ok || kind == "" || name == "" {
		return nil, fmt.Errorf("invalid resource id %q: expected package:type/name", value)
	}
	id := ids.Identifier(name, "id", pkg)
	if id == 0 {
		// Unknown names resolve to 0, which no view carries.
		return func(*ui.View) bool { return false }, nil
	}
	return func(v *ui.View) bool {
		return v.ID == id
	}, nil
}
