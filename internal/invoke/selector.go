// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"fmt"
	"strings"
)

const (
	// SelectWhole surfaces the complete response object ("*").
	SelectWhole SelectorKind = iota
	// SelectField surfaces one named response field.
	SelectField
	// SelectParam echoes the value bound to an input parameter ("^Name").
	SelectParam
)

type (
	// SelectorKind tags the variant of a Selector.
	SelectorKind int

	// Selector chooses the value an invocation surfaces to its caller.
	Selector struct {
		Kind SelectorKind
		// Name is the field or parameter name for SelectField / SelectParam.
		Name string
	}

	// Field exposes one member of the response type Out to field selectors.
	Field[Out any] struct {
		Name string
		Get  func(*Out) any
	}
)

// WholeResponse is the "*" selector.
var WholeResponse = Selector{Kind: SelectWhole}

// ParseSelector parses the textual selector syntax: "*" (or empty) for the
// whole response, "^Name" for an input parameter, anything else for a
// response field.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "*":
		return WholeResponse, nil
	case strings.HasPrefix(s, "^"):
		name := strings.TrimSpace(s[1:])
		if name == "" {
			return Selector{}, fmt.Errorf("%w: %q names no parameter", ErrInvalidSelector, s)
		}
		return Selector{Kind: SelectParam, Name: name}, nil
	default:
		return Selector{Kind: SelectField, Name: s}, nil
	}
}

// String renders the selector in its textual syntax.
func (s Selector) String() string {
	switch s.Kind {
	case SelectField:
		return s.Name
	case SelectParam:
		return "^" + s.Name
	default:
		return "*"
	}
}

// NewField exposes a typed response member to selectors.
func NewField[Out, V any](name string, get func(*Out) V) Field[Out] {
	return Field[Out]{
		Name: name,
		Get:  func(out *Out) any { return get(out) },
	}
}
