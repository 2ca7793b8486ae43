// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// KindString is a free-form string parameter.
	KindString Kind = iota + 1
	// KindEnum is a string parameter restricted to a fixed value set.
	KindEnum
	// KindInt32 is a 32-bit integer parameter.
	KindInt32
	// KindInt64 is a 64-bit integer parameter.
	KindInt64
	// KindBool is a boolean switch.
	KindBool
	// KindStringList is a repeated string parameter.
	KindStringList
)

type (
	// Kind is the value type of a request parameter.
	Kind int

	// Constraint holds the declared validation rules of a parameter.
	// Zero values mean "unconstrained".
	Constraint struct {
		MinLength int
		MaxLength int
		Pattern   *regexp.Regexp
		Enum      []string
		HasRange  bool
		Min       int64
		Max       int64
		MinItems  int
		MaxItems  int
	}

	// ParamInfo is the type-erased view of a request parameter. The CLI layer
	// uses it to register flags and render help.
	ParamInfo struct {
		// Name is the API field name (e.g. "DataShareArn").
		Name string
		// Aliases are alternative names accepted for the parameter.
		Aliases []string
		// Help is the one-line flag description.
		Help string
		// Kind is the value type.
		Kind Kind
		// IsRequired marks parameters the service requires.
		IsRequired bool
		// IsLenient downgrades "explicitly bound to an empty value" from a
		// fatal MissingRequiredParameter to a logged warning.
		IsLenient bool
		// Constraint carries the validation rules.
		Constraint Constraint
	}

	// Param is a request parameter bound to a field of the request type In.
	Param[In any] struct {
		ParamInfo
		assign func(in *In, raw []string) error
	}
)

// String returns the kind name used in help output.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindBool:
		return "bool"
	case KindStringList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsList reports whether the kind accepts multiple values.
func (k Kind) IsList() bool {
	return k == KindStringList
}

// String binds a string parameter to the request field returned by field.
func String[In any](name string, field func(*In) **string) Param[In] {
	return Param[In]{
		ParamInfo: ParamInfo{Name: name, Kind: KindString},
		assign: func(in *In, raw []string) error {
			*field(in) = ptr(raw[0])
			return nil
		},
	}
}

// Enum binds a string-typed enumeration. The accepted values are matched
// case-insensitively and normalized to their canonical spelling.
func Enum[In any, E ~string](name string, values []E, field func(*In) *E) Param[In] {
	allowed := make([]string, 0, len(values))
	for _, v := range values {
		allowed = append(allowed, string(v))
	}
	return Param[In]{
		ParamInfo: ParamInfo{Name: name, Kind: KindEnum, Constraint: Constraint{Enum: allowed}},
		assign: func(in *In, raw []string) error {
			*field(in) = E(canonicalEnum(allowed, raw[0]))
			return nil
		},
	}
}

// Int32 binds a 32-bit integer parameter.
func Int32[In any](name string, field func(*In) **int32) Param[In] {
	return Param[In]{
		ParamInfo: ParamInfo{Name: name, Kind: KindInt32},
		assign: func(in *In, raw []string) error {
			n, err := strconv.ParseInt(strings.TrimSpace(raw[0]), 10, 32)
			if err != nil {
				return err
			}
			*field(in) = ptr(int32(n))
			return nil
		},
	}
}

// Int64 binds a 64-bit integer parameter.
func Int64[In any](name string, field func(*In) **int64) Param[In] {
	return Param[In]{
		ParamInfo: ParamInfo{Name: name, Kind: KindInt64},
		assign: func(in *In, raw []string) error {
			n, err := strconv.ParseInt(strings.TrimSpace(raw[0]), 10, 64)
			if err != nil {
				return err
			}
			*field(in) = ptr(n)
			return nil
		},
	}
}

// Bool binds a boolean switch.
func Bool[In any](name string, field func(*In) **bool) Param[In] {
	return Param[In]{
		ParamInfo: ParamInfo{Name: name, Kind: KindBool},
		assign: func(in *In, raw []string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(raw[0]))
			if err != nil {
				return err
			}
			*field(in) = ptr(b)
			return nil
		},
	}
}

// Strings binds a repeated string parameter to a slice field.
func Strings[In any](name string, field func(*In) *[]string) Param[In] {
	return List(name, func(in *In, items []string) error {
		*field(in) = append([]string(nil), items...)
		return nil
	})
}

// List binds a repeated string parameter through a custom conversion, for
// request fields whose element type is not a plain string (tags, for example).
func List[In any](name string, assign func(in *In, items []string) error) Param[In] {
	return Param[In]{
		ParamInfo: ParamInfo{Name: name, Kind: KindStringList},
		assign:    assign,
	}
}

// Required marks the parameter as required by the service.
func (p Param[In]) Required() Param[In] {
	p.IsRequired = true
	return p
}

// Lenient keeps an explicitly empty value of a required parameter from
// failing the invocation; a warning is logged instead.
func (p Param[In]) Lenient() Param[In] {
	p.IsLenient = true
	return p
}

// Alias adds alternative names for the parameter.
func (p Param[In]) Alias(names ...string) Param[In] {
	p.Aliases = append(append([]string(nil), p.Aliases...), names...)
	return p
}

// Describe sets the help text.
func (p Param[In]) Describe(help string) Param[In] {
	p.Help = help
	return p
}

// Length bounds the string length (in runes). A zero max means unbounded.
// For list parameters the bound applies to every item.
func (p Param[In]) Length(minLen, maxLen int) Param[In] {
	p.Constraint.MinLength = minLen
	p.Constraint.MaxLength = maxLen
	return p
}

// Pattern restricts string values (or list items) to a regular expression.
func (p Param[In]) Pattern(expr string) Param[In] {
	p.Constraint.Pattern = regexp.MustCompile(expr)
	return p
}

// Range bounds an integer parameter, inclusive.
func (p Param[In]) Range(minVal, maxVal int64) Param[In] {
	p.Constraint.HasRange = true
	p.Constraint.Min = minVal
	p.Constraint.Max = maxVal
	return p
}

// Items bounds the number of values of a list parameter. A zero max means
// unbounded.
func (p Param[In]) Items(minItems, maxItems int) Param[In] {
	p.Constraint.MinItems = minItems
	p.Constraint.MaxItems = maxItems
	return p
}

// Matches reports whether name refers to this parameter, either by its API
// name or an alias. Matching is case-insensitive.
func (p ParamInfo) Matches(name string) bool {
	if strings.EqualFold(p.Name, name) {
		return true
	}
	for _, a := range p.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// check validates raw values against the declared kind and constraints.
// It returns a reason string, or "" when the values are acceptable.
func (p ParamInfo) check(raw []string) string {
	c := p.Constraint
	if !p.Kind.IsList() && len(raw) != 1 {
		return fmt.Sprintf("expected a single value, got %d", len(raw))
	}

	switch p.Kind {
	case KindInt32, KindInt64:
		bits := 64
		if p.Kind == KindInt32 {
			bits = 32
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw[0]), 10, bits)
		if err != nil {
			return fmt.Sprintf("%q is not a valid %s", raw[0], p.Kind)
		}
		if c.HasRange && (n < c.Min || n > c.Max) {
			return fmt.Sprintf("%d is outside the allowed range [%d, %d]", n, c.Min, c.Max)
		}
		return ""
	case KindBool:
		if _, err := strconv.ParseBool(strings.TrimSpace(raw[0])); err != nil {
			return fmt.Sprintf("%q is not a valid bool", raw[0])
		}
		return ""
	case KindEnum:
		if canonicalEnum(c.Enum, raw[0]) == "" {
			return fmt.Sprintf("%q is not one of %s", raw[0], strings.Join(c.Enum, ", "))
		}
		return ""
	case KindStringList:
		if len(raw) < c.MinItems {
			return fmt.Sprintf("expected at least %d item(s), got %d", c.MinItems, len(raw))
		}
		if c.MaxItems > 0 && len(raw) > c.MaxItems {
			return fmt.Sprintf("expected at most %d item(s), got %d", c.MaxItems, len(raw))
		}
	}

	for _, v := range raw {
		if reason := c.checkString(v); reason != "" {
			return reason
		}
	}
	return ""
}

func (c Constraint) checkString(v string) string {
	n := utf8.RuneCountInString(v)
	if n < c.MinLength {
		return fmt.Sprintf("length %d is below the minimum of %d", n, c.MinLength)
	}
	if c.MaxLength > 0 && n > c.MaxLength {
		return fmt.Sprintf("length %d exceeds the maximum of %d", n, c.MaxLength)
	}
	if c.Pattern != nil && !c.Pattern.MatchString(v) {
		return fmt.Sprintf("%q does not match pattern %s", v, c.Pattern.String())
	}
	return ""
}

// isEmpty reports whether the raw values amount to "bound, but no value".
func isEmpty(kind Kind, raw []string) bool {
	if len(raw) == 0 {
		return true
	}
	if kind.IsList() {
		return false
	}
	return strings.TrimSpace(raw[0]) == ""
}

func canonicalEnum(allowed []string, v string) string {
	for _, a := range allowed {
		if strings.EqualFold(a, strings.TrimSpace(v)) {
			return a
		}
	}
	return ""
}

func ptr[T any](v T) *T {
	return &v
}
