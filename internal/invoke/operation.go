// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type (
	// Descriptor is the static, type-erased description of an operation.
	Descriptor struct {
		// Name is the API operation name (e.g. "RejectDataShare").
		Name string
		// Group is the command group (e.g. "datashare").
		Group string
		// Verb is the command name within the group (e.g. "reject").
		Verb string
		// Summary is the one-line help text.
		Summary string
		// Impact decides whether the confirmation gate applies.
		Impact Impact
		// Target names the parameter identifying the affected resource.
		Target string
		// PassThru names the parameter echoed by the pass-through switch.
		PassThru string
		// Select is the default selector.
		Select string
		// Params lists the request parameters in declaration order.
		Params []ParamInfo
		// Fields lists the response field names usable as selectors.
		Fields []string
	}

	// Operation binds one remote call against a client of type C, taking a
	// request of type In and returning a response of type Out.
	Operation[C, In, Out any] struct {
		Name     string
		Group    string
		Verb     string
		Summary  string
		Impact   Impact
		Target   string
		PassThru string
		Select   string
		Params   []Param[In]
		Fields   []Field[Out]
		Call     func(ctx context.Context, client C, in *In) (*Out, error)
	}

	// Runner is the type-erased view of an Operation used by registries and
	// the CLI layer.
	Runner[C any] interface {
		Describe() Descriptor
		Invoke(ctx context.Context, host Host[C], inv Invocation) (Result, error)
	}

	// Host carries everything an invocation borrows from the surrounding
	// process. It is passed by value and never mutated by Invoke.
	Host[C any] struct {
		// Client is the shared, read-only remote service client.
		Client C
		// Confirmer asks the user to confirm mutating operations.
		Confirmer Confirmer
		// Interactive is false when no user can answer a prompt.
		Interactive bool
		// Threshold is the minimum impact that requires confirmation.
		Threshold Impact
		// Logger receives debug and warning output; nil uses slog.Default().
		Logger *slog.Logger
		// Region and Endpoint are used only to enrich connectivity errors.
		Region   string
		Endpoint string
	}

	// Invocation is the per-call input: bound raw values keyed by parameter
	// name, plus the cross-cutting switches.
	Invocation struct {
		// Values holds only the parameters the caller explicitly supplied.
		Values map[string][]string
		// Force skips the confirmation prompt.
		Force bool
		// Select overrides the operation's default selector.
		Select string
		// PassThru echoes the operation's pass-through parameter.
		PassThru bool
		// ID correlates log lines; generated when empty.
		ID string
	}

	// Result is the outcome of a successful (or declined) invocation.
	Result struct {
		ID       string
		Selector Selector
		// Skipped is true when the user declined confirmation; no call was made.
		Skipped bool
		// Response is the raw response, nil when skipped.
		Response any
		// Value is the projected value.
		Value any
	}
)

// Describe returns the operation's static descriptor.
func (op *Operation[C, In, Out]) Describe() Descriptor {
	d := Descriptor{
		Name:     op.Name,
		Group:    op.Group,
		Verb:     op.Verb,
		Summary:  op.Summary,
		Impact:   op.Impact,
		Target:   op.Target,
		PassThru: op.PassThru,
		Select:   op.Select,
		Params:   make([]ParamInfo, 0, len(op.Params)),
		Fields:   make([]string, 0, len(op.Fields)),
	}
	for _, p := range op.Params {
		d.Params = append(d.Params, p.ParamInfo)
	}
	for _, f := range op.Fields {
		d.Fields = append(d.Fields, f.Name)
	}
	return d
}

// Invoke runs one invocation: validate, confirm, dispatch once, project.
func (op *Operation[C, In, Out]) Invoke(ctx context.Context, host Host[C], inv Invocation) (Result, error) {
	id := inv.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := host.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("operation", op.Name, "invocation", id)

	sel, err := op.selector(inv)
	if err != nil {
		return Result{}, err
	}

	in, err := op.bind(logger, inv.Values)
	if err != nil {
		return Result{}, err
	}

	if needsConfirmation(op.Impact, host.Threshold) && !inv.Force && host.Interactive && host.Confirmer != nil {
		ok, err := host.Confirmer.Confirm(ctx, Prompt{
			Operation: op.Name,
			Command:   op.Group + " " + op.Verb,
			Target:    firstValue(op.lookup(inv.Values, op.Target)),
			Impact:    op.Impact,
		})
		if err != nil {
			return Result{}, fmt.Errorf("%s: confirmation: %w", op.Name, err)
		}
		if !ok {
			logger.Debug("confirmation declined, skipping call")
			return Result{ID: id, Selector: sel, Skipped: true}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op.Name, err)
	}

	logger.Debug("dispatching")
	out, err := op.Call(ctx, host.Client, in)
	if err != nil {
		logger.Debug("dispatch failed", "error", err)
		return Result{}, classifyDispatchError(op.Name, host.Region, host.Endpoint, err)
	}

	return Result{
		ID:       id,
		Selector: sel,
		Response: out,
		Value:    op.project(sel, out, inv.Values),
	}, nil
}

// selector resolves the effective selector and checks that it names a known
// field or parameter, canonicalizing the name.
func (op *Operation[C, In, Out]) selector(inv Invocation) (Selector, error) {
	raw := inv.Select
	if inv.PassThru {
		if op.PassThru == "" {
			return Selector{}, fmt.Errorf("%w: %s does not support pass-thru", ErrInvalidSelector, op.Name)
		}
		raw = "^" + op.PassThru
	} else if strings.TrimSpace(raw) == "" {
		raw = op.Select
	}

	sel, err := ParseSelector(raw)
	if err != nil {
		return Selector{}, err
	}

	switch sel.Kind {
	case SelectField:
		for _, f := range op.Fields {
			if strings.EqualFold(f.Name, sel.Name) {
				sel.Name = f.Name
				return sel, nil
			}
		}
		return Selector{}, fmt.Errorf("%w: %s has no response field %q", ErrInvalidSelector, op.Name, sel.Name)
	case SelectParam:
		for _, p := range op.Params {
			if p.Matches(sel.Name) {
				sel.Name = p.Name
				return sel, nil
			}
		}
		return Selector{}, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidSelector, op.Name, sel.Name)
	}
	return sel, nil
}

// bind validates the bound values and builds a fresh request.
func (op *Operation[C, In, Out]) bind(logger *slog.Logger, values map[string][]string) (*In, error) {
	for name := range values {
		if !op.declares(name) {
			return nil, &InvalidParameterError{Operation: op.Name, Parameter: name, Reason: "unknown parameter"}
		}
	}

	in := new(In)
	for _, p := range op.Params {
		raw, bound := op.lookupParam(values, p.ParamInfo)
		if !bound {
			if p.IsRequired {
				return nil, &MissingRequiredParameterError{Operation: op.Name, Parameter: p.Name}
			}
			continue
		}

		if isEmpty(p.Kind, raw) {
			if !p.IsRequired {
				continue
			}
			if !p.IsLenient {
				return nil, &MissingRequiredParameterError{Operation: op.Name, Parameter: p.Name, Bound: true}
			}
			logger.Warn("required parameter bound to an empty value; sending the request without it",
				"parameter", p.Name)
			continue
		}

		if reason := p.check(raw); reason != "" {
			return nil, &InvalidParameterError{Operation: op.Name, Parameter: p.Name, Reason: reason}
		}
		if err := p.assign(in, raw); err != nil {
			return nil, &InvalidParameterError{Operation: op.Name, Parameter: p.Name, Reason: err.Error()}
		}
	}
	return in, nil
}

// project applies the selector to the response.
func (op *Operation[C, In, Out]) project(sel Selector, out *Out, values map[string][]string) any {
	switch sel.Kind {
	case SelectField:
		for _, f := range op.Fields {
			if f.Name == sel.Name {
				return f.Get(out)
			}
		}
		return nil
	case SelectParam:
		for _, p := range op.Params {
			if p.Name != sel.Name {
				continue
			}
			raw, bound := op.lookupParam(values, p.ParamInfo)
			if !bound {
				return nil
			}
			if p.Kind.IsList() {
				return append([]string(nil), raw...)
			}
			return firstValue(raw)
		}
		return nil
	default:
		return out
	}
}

func (op *Operation[C, In, Out]) declares(name string) bool {
	for _, p := range op.Params {
		if p.Matches(name) {
			return true
		}
	}
	return false
}

// lookup returns the raw values bound to the named parameter.
func (op *Operation[C, In, Out]) lookup(values map[string][]string, name string) []string {
	if name == "" {
		return nil
	}
	for _, p := range op.Params {
		if p.Name == name {
			raw, _ := op.lookupParam(values, p.ParamInfo)
			return raw
		}
	}
	return nil
}

// lookupParam finds the values bound to p under its name or any alias.
func (op *Operation[C, In, Out]) lookupParam(values map[string][]string, p ParamInfo) ([]string, bool) {
	if raw, ok := values[p.Name]; ok {
		return raw, true
	}
	for key, raw := range values {
		if p.Matches(key) {
			return raw, true
		}
	}
	return nil, false
}

func firstValue(raw []string) string {
	if len(raw) == 0 {
		return ""
	}
	return raw[0]
}
