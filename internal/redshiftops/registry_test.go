// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/invowk/rsctl/internal/invoke"
)

func TestRegistry_UniqueCommands(t *testing.T) {
	t.Parallel()

	seenCommand := make(map[string]bool)
	seenName := make(map[string]bool)
	for _, op := range All() {
		d := op.Describe()
		cmd := d.Group + " " + d.Verb
		if seenCommand[cmd] {
			t.Errorf("duplicate command %q", cmd)
		}
		if seenName[d.Name] {
			t.Errorf("duplicate operation %q", d.Name)
		}
		seenCommand[cmd] = true
		seenName[d.Name] = true

		if !slices.Contains(Groups, d.Group) {
			t.Errorf("%s: group %q is not listed in Groups", d.Name, d.Group)
		}
	}

	if len(seenName) != 24 {
		t.Errorf("registry has %d operations, want 24", len(seenName))
	}
}

func TestRegistry_DescriptorsAreConsistent(t *testing.T) {
	t.Parallel()

	for _, op := range All() {
		d := op.Describe()
		t.Run(d.Name, func(t *testing.T) {
			t.Parallel()

			params := make(map[string]bool)
			for _, p := range d.Params {
				if params[p.Name] {
					t.Errorf("duplicate parameter %q", p.Name)
				}
				params[p.Name] = true
				if p.IsLenient && !p.IsRequired {
					t.Errorf("parameter %q is lenient but not required", p.Name)
				}
			}
			if d.Target != "" && !params[d.Target] {
				t.Errorf("target %q is not a parameter", d.Target)
			}
			if d.PassThru != "" && !params[d.PassThru] {
				t.Errorf("pass-thru %q is not a parameter", d.PassThru)
			}
			if d.Impact != invoke.ImpactNone && d.Target == "" {
				t.Error("mutating operation has no confirmation target")
			}

			sel, err := invoke.ParseSelector(d.Select)
			if err != nil {
				t.Fatalf("default selector: %v", err)
			}
			if sel.Kind == invoke.SelectField && !slices.Contains(d.Fields, sel.Name) {
				t.Errorf("default selector %q is not a response field", sel.Name)
			}
		})
	}
}

// Every operation with a required parameter must fail before dispatch when
// invoked with nothing bound.
func TestRegistry_MissingRequiredParameterIssuesNoCall(t *testing.T) {
	t.Parallel()

	srv := newQueryServer(t)
	client := srv.client(t)

	checked := 0
	for _, op := range All() {
		d := op.Describe()
		hasRequired := slices.ContainsFunc(d.Params, func(p invoke.ParamInfo) bool { return p.IsRequired })
		if !hasRequired {
			continue
		}
		checked++

		_, err := op.Invoke(context.Background(), invoke.Host[API]{Client: client}, invoke.Invocation{Force: true})
		if !errors.Is(err, invoke.ErrMissingRequiredParameter) {
			t.Errorf("%s: Invoke() error = %v, want ErrMissingRequiredParameter", d.Name, err)
		}
	}

	if checked < 15 {
		t.Errorf("only %d operations declare required parameters", checked)
	}
	if n := srv.count(); n != 0 {
		t.Errorf("server received %d request(s), want 0", n)
	}
}

// Destructive operations prompt, and declining issues no call.
func TestRegistry_DeclinedConfirmationIssuesNoCall(t *testing.T) {
	t.Parallel()

	srv := newQueryServer(t)
	client := srv.client(t)

	prompted := 0
	host := invoke.Host[API]{
		Client:      client,
		Interactive: true,
		Threshold:   invoke.ImpactHigh,
		Confirmer: invoke.ConfirmFunc(func(context.Context, invoke.Prompt) (bool, error) {
			prompted++
			return false, nil
		}),
	}

	for _, op := range All() {
		d := op.Describe()
		if d.Impact != invoke.ImpactHigh {
			continue
		}
		values := make(map[string][]string)
		for _, p := range d.Params {
			if p.IsRequired {
				values[p.Name] = []string{sampleValue(p)}
			}
		}

		res, err := op.Invoke(context.Background(), host, invoke.Invocation{Values: values})
		if err != nil {
			t.Errorf("%s: Invoke() error = %v", d.Name, err)
			continue
		}
		if !res.Skipped {
			t.Errorf("%s: result not skipped", d.Name)
		}
	}

	if prompted == 0 {
		t.Fatal("no destructive operations were prompted")
	}
	if n := srv.count(); n != 0 {
		t.Errorf("server received %d request(s), want 0", n)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	op, err := Lookup("datashare", "reject")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got := op.Describe().Name; got != "RejectDataShare" {
		t.Errorf("Lookup() = %s, want RejectDataShare", got)
	}

	op, err = Lookup("modifyusagelimit", "")
	if err != nil {
		t.Fatalf("Lookup() by name error = %v", err)
	}
	if got := op.Describe().Name; got != "ModifyUsageLimit" {
		t.Errorf("Lookup() = %s, want ModifyUsageLimit", got)
	}

	if _, err := Lookup("warehouse", "create"); err == nil {
		t.Error("Lookup() of unknown group should fail")
	}
	if _, err := Lookup("cluster", "explode"); err == nil {
		t.Error("Lookup() of unknown verb should fail")
	}
}

func TestInGroup(t *testing.T) {
	t.Parallel()

	total := 0
	for _, g := range Groups {
		ops := InGroup(g)
		if len(ops) == 0 {
			t.Errorf("group %q has no operations", g)
		}
		total += len(ops)
	}
	if total != len(All()) {
		t.Errorf("groups cover %d operations, want %d", total, len(All()))
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tags, err := parseTags([]string{"env=prod", "owner=", "note=a=b"})
	if err != nil {
		t.Fatalf("parseTags() error = %v", err)
	}
	want := [][2]string{{"env", "prod"}, {"owner", ""}, {"note", "a=b"}}
	if len(tags) != len(want) {
		t.Fatalf("parseTags() returned %d tags", len(tags))
	}
	for i, tag := range tags {
		if *tag.Key != want[i][0] || *tag.Value != want[i][1] {
			t.Errorf("tag %d = %s=%s, want %s=%s", i, *tag.Key, *tag.Value, want[i][0], want[i][1])
		}
	}

	if _, err := parseTags([]string{"=orphan"}); err == nil {
		t.Error("parseTags() should reject an empty key")
	}
}

// sampleValue returns a value that satisfies the parameter's constraints.
func sampleValue(p invoke.ParamInfo) string {
	switch p.Kind {
	case invoke.KindEnum:
		return p.Constraint.Enum[0]
	case invoke.KindInt32, invoke.KindInt64:
		return "1"
	case invoke.KindBool:
		return "true"
	case invoke.KindStringList:
		return "k=v"
	}
	if p.Constraint.Pattern != nil && p.Constraint.Pattern.String() == arnPattern {
		return "arn:aws:redshift:us-east-1:123456789012:datashare:ns/share"
	}
	return "example"
}
