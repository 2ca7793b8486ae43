// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/google/go-cmp/cmp"
)

type (
	shareState string

	fakeRequest struct {
		ShareArn  *string
		Account   *string
		Amount    *int64
		Nodes     *int32
		Writes    *bool
		State     shareState
		Consumers []string
	}

	fakeResponse struct {
		ShareArn *string
		Status   string
	}

	fakeClient struct {
		calls []fakeRequest
		err   error
	}
)

func (c *fakeClient) do(_ context.Context, in *fakeRequest) (*fakeResponse, error) {
	c.calls = append(c.calls, *in)
	if c.err != nil {
		return nil, c.err
	}
	return &fakeResponse{ShareArn: in.ShareArn, Status: "REJECTED"}, nil
}

func newFakeOperation(impact Impact) *Operation[*fakeClient, fakeRequest, fakeResponse] {
	return &Operation[*fakeClient, fakeRequest, fakeResponse]{
		Name:     "RejectShare",
		Group:    "share",
		Verb:     "reject",
		Impact:   impact,
		Target:   "ShareArn",
		PassThru: "ShareArn",
		Params: []Param[fakeRequest]{
			String("ShareArn", func(in *fakeRequest) **string { return &in.ShareArn }).
				Required().Alias("Arn").Length(1, 2147483647),
			String("Account", func(in *fakeRequest) **string { return &in.Account }).
				Required().Lenient(),
			Int64("Amount", func(in *fakeRequest) **int64 { return &in.Amount }).Range(0, 100),
			Int32("Nodes", func(in *fakeRequest) **int32 { return &in.Nodes }),
			Bool("Writes", func(in *fakeRequest) **bool { return &in.Writes }),
			Enum("State", []shareState{"ACTIVE", "REJECTED"}, func(in *fakeRequest) *shareState { return &in.State }),
			Strings("Consumers", func(in *fakeRequest) *[]string { return &in.Consumers }).
				Items(1, 2).Pattern(`^\d{12}$`),
		},
		Fields: []Field[fakeResponse]{
			NewField("ShareArn", func(out *fakeResponse) *string { return out.ShareArn }),
			NewField("Status", func(out *fakeResponse) string { return out.Status }),
		},
		Call: (*fakeClient).do,
	}
}

func baseValues() map[string][]string {
	return map[string][]string{
		"ShareArn": {"arn:aws:redshift:us-east-1:123456789012:datashare:x/share"},
		"Account":  {"123456789012"},
	}
}

func TestInvoke_MissingRequiredParameter(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	op := newFakeOperation(ImpactNone)

	_, err := op.Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{
		Values: map[string][]string{"Account": {"1"}},
	})
	if !errors.Is(err, ErrMissingRequiredParameter) {
		t.Fatalf("Invoke() error = %v, want ErrMissingRequiredParameter", err)
	}
	var mrp *MissingRequiredParameterError
	if !errors.As(err, &mrp) || mrp.Parameter != "ShareArn" || mrp.Bound {
		t.Errorf("Invoke() error = %#v, want unbound ShareArn", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("client called %d time(s), want 0", len(client.calls))
	}
}

func TestInvoke_RequiredBoundToEmptyValue(t *testing.T) {
	t.Parallel()

	t.Run("strict parameter fails", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{}
		values := baseValues()
		values["ShareArn"] = []string{""}

		_, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{Values: values})
		var mrp *MissingRequiredParameterError
		if !errors.As(err, &mrp) || !mrp.Bound {
			t.Fatalf("Invoke() error = %v, want bound MissingRequiredParameterError", err)
		}
		if len(client.calls) != 0 {
			t.Errorf("client called %d time(s), want 0", len(client.calls))
		}
	})

	t.Run("lenient parameter warns", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		client := &fakeClient{}
		values := baseValues()
		values["Account"] = []string{" "}

		_, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{
			Client: client,
			Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		}, Invocation{Values: values})
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if len(client.calls) != 1 || client.calls[0].Account != nil {
			t.Fatalf("calls = %+v, want one call without Account", client.calls)
		}
		if !strings.Contains(logs.String(), "parameter=Account") {
			t.Errorf("expected a warning naming Account, got %q", logs.String())
		}
	})
}

func TestInvoke_BindsOnlySuppliedFields(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	values := baseValues()
	values["Amount"] = []string{"42"}
	values["state"] = []string{"rejected"}
	values["Consumers"] = []string{"111111111111", "222222222222"}

	if _, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{Values: values}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	want := fakeRequest{
		ShareArn:  ptr("arn:aws:redshift:us-east-1:123456789012:datashare:x/share"),
		Account:   ptr("123456789012"),
		Amount:    ptr(int64(42)),
		State:     "REJECTED",
		Consumers: []string{"111111111111", "222222222222"},
	}
	if len(client.calls) != 1 {
		t.Fatalf("client called %d time(s), want 1", len(client.calls))
	}
	if diff := cmp.Diff(want, client.calls[0]); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestInvoke_AliasBinding(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	values := map[string][]string{"arn": {"arn:x"}, "Account": {"1"}}

	res, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{
		Values: values,
		Select: "^ShareArn",
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Value != "arn:x" {
		t.Errorf("Value = %v, want arn:x", res.Value)
	}
}

func TestInvoke_ConstraintViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		param string
		value []string
	}{
		{"integer out of range", "Amount", []string{"101"}},
		{"not an integer", "Amount", []string{"ten"}},
		{"int32 overflow", "Nodes", []string{"4294967296"}},
		{"bad bool", "Writes", []string{"maybe"}},
		{"enum mismatch", "State", []string{"PENDING"}},
		{"too many items", "Consumers", []string{"111111111111", "222222222222", "333333333333"}},
		{"item pattern", "Consumers", []string{"abc"}},
		{"unknown parameter", "Bogus", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeClient{}
			values := baseValues()
			values[tt.param] = tt.value

			_, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{Values: values})
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Invoke() error = %v, want ErrInvalidParameter", err)
			}
			if len(client.calls) != 0 {
				t.Errorf("client called %d time(s), want 0", len(client.calls))
			}
		})
	}
}

func TestInvoke_ConfirmationGate(t *testing.T) {
	t.Parallel()

	declined := ConfirmFunc(func(context.Context, Prompt) (bool, error) { return false, nil })
	accepted := ConfirmFunc(func(context.Context, Prompt) (bool, error) { return true, nil })
	mustNotAsk := ConfirmFunc(func(context.Context, Prompt) (bool, error) {
		return false, errors.New("prompted unexpectedly")
	})

	tests := []struct {
		name        string
		impact      Impact
		threshold   Impact
		interactive bool
		force       bool
		confirmer   Confirmer
		wantCalls   int
		wantSkipped bool
	}{
		{"declined", ImpactHigh, ImpactMedium, true, false, declined, 0, true},
		{"accepted", ImpactHigh, ImpactMedium, true, false, accepted, 1, false},
		{"force bypasses prompt", ImpactHigh, ImpactMedium, true, true, mustNotAsk, 1, false},
		{"non-interactive host", ImpactHigh, ImpactMedium, false, false, mustNotAsk, 1, false},
		{"below threshold", ImpactMedium, ImpactHigh, true, false, mustNotAsk, 1, false},
		{"prompting disabled", ImpactHigh, ImpactNone, true, false, mustNotAsk, 1, false},
		{"read-only operation", ImpactNone, ImpactLow, true, false, mustNotAsk, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeClient{}
			res, err := newFakeOperation(tt.impact).Invoke(context.Background(), Host[*fakeClient]{
				Client:      client,
				Confirmer:   tt.confirmer,
				Interactive: tt.interactive,
				Threshold:   tt.threshold,
			}, Invocation{Values: baseValues(), Force: tt.force})
			if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if len(client.calls) != tt.wantCalls {
				t.Errorf("client called %d time(s), want %d", len(client.calls), tt.wantCalls)
			}
			if res.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %v, want %v", res.Skipped, tt.wantSkipped)
			}
			if tt.wantSkipped && (res.Value != nil || res.Response != nil) {
				t.Errorf("skipped result carries output: %+v", res)
			}
		})
	}
}

func TestInvoke_ConfirmationPromptNamesTarget(t *testing.T) {
	t.Parallel()

	var got Prompt
	confirmer := ConfirmFunc(func(_ context.Context, p Prompt) (bool, error) {
		got = p
		return false, nil
	})

	_, err := newFakeOperation(ImpactHigh).Invoke(context.Background(), Host[*fakeClient]{
		Client:      &fakeClient{},
		Confirmer:   confirmer,
		Interactive: true,
		Threshold:   ImpactMedium,
	}, Invocation{Values: baseValues()})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	want := Prompt{
		Operation: "RejectShare",
		Command:   "share reject",
		Target:    "arn:aws:redshift:us-east-1:123456789012:datashare:x/share",
		Impact:    ImpactHigh,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(got.Description(), want.Target) {
		t.Errorf("Description() = %q, want it to name the target", got.Description())
	}
}

func TestInvoke_ConfirmerFailure(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	aborted := errors.New("user aborted")
	_, err := newFakeOperation(ImpactHigh).Invoke(context.Background(), Host[*fakeClient]{
		Client:      client,
		Confirmer:   ConfirmFunc(func(context.Context, Prompt) (bool, error) { return false, aborted }),
		Interactive: true,
		Threshold:   ImpactLow,
	}, Invocation{Values: baseValues()})
	if !errors.Is(err, aborted) {
		t.Fatalf("Invoke() error = %v, want %v", err, aborted)
	}
	if len(client.calls) != 0 {
		t.Errorf("client called %d time(s), want 0", len(client.calls))
	}
}

func TestInvoke_Selectors(t *testing.T) {
	t.Parallel()

	arn := "arn:aws:redshift:us-east-1:123456789012:datashare:x/share"

	tests := []struct {
		name     string
		inv      Invocation
		want     any
		wantSel  Selector
		wantErr  error
		wantCall int
	}{
		{
			name:     "whole response",
			inv:      Invocation{Select: "*"},
			want:     &fakeResponse{ShareArn: ptr(arn), Status: "REJECTED"},
			wantSel:  WholeResponse,
			wantCall: 1,
		},
		{
			name:     "named field is case-insensitive",
			inv:      Invocation{Select: "status"},
			want:     "REJECTED",
			wantSel:  Selector{Kind: SelectField, Name: "Status"},
			wantCall: 1,
		},
		{
			name:     "echo parameter still dispatches",
			inv:      Invocation{Select: "^Account"},
			want:     "123456789012",
			wantSel:  Selector{Kind: SelectParam, Name: "Account"},
			wantCall: 1,
		},
		{
			name:     "echo unbound parameter",
			inv:      Invocation{Select: "^Amount"},
			want:     nil,
			wantSel:  Selector{Kind: SelectParam, Name: "Amount"},
			wantCall: 1,
		},
		{
			name:     "pass-thru",
			inv:      Invocation{PassThru: true, Select: "Status"},
			want:     arn,
			wantSel:  Selector{Kind: SelectParam, Name: "ShareArn"},
			wantCall: 1,
		},
		{
			name:    "unknown field fails before dispatch",
			inv:     Invocation{Select: "Nope"},
			wantErr: ErrInvalidSelector,
		},
		{
			name:    "unknown parameter fails before dispatch",
			inv:     Invocation{Select: "^Nope"},
			wantErr: ErrInvalidSelector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeClient{}
			inv := tt.inv
			inv.Values = baseValues()

			res, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, inv)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Invoke() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if len(client.calls) != tt.wantCall {
				t.Errorf("client called %d time(s), want %d", len(client.calls), tt.wantCall)
			}
			if tt.wantErr != nil {
				return
			}
			if diff := cmp.Diff(tt.want, res.Value); diff != "" {
				t.Errorf("Value mismatch (-want +got):\n%s", diff)
			}
			if res.Selector != tt.wantSel {
				t.Errorf("Selector = %v, want %v", res.Selector, tt.wantSel)
			}
		})
	}
}

func TestInvoke_DefaultSelector(t *testing.T) {
	t.Parallel()

	op := newFakeOperation(ImpactNone)
	op.Select = "Status"

	res, err := op.Invoke(context.Background(), Host[*fakeClient]{Client: &fakeClient{}}, Invocation{Values: baseValues()})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if res.Value != "REJECTED" {
		t.Errorf("Value = %v, want REJECTED", res.Value)
	}
}

func TestInvoke_PassThruUnsupported(t *testing.T) {
	t.Parallel()

	op := newFakeOperation(ImpactNone)
	op.PassThru = ""

	_, err := op.Invoke(context.Background(), Host[*fakeClient]{Client: &fakeClient{}}, Invocation{Values: baseValues(), PassThru: true})
	if !errors.Is(err, ErrInvalidSelector) {
		t.Fatalf("Invoke() error = %v, want ErrInvalidSelector", err)
	}
}

func TestInvoke_DispatchErrors(t *testing.T) {
	t.Parallel()

	dnsErr := &net.DNSError{Err: "no such host", Name: "redshift.nowhere-1.amazonaws.com", IsNotFound: true}

	t.Run("name resolution", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{err: &smithy.OperationError{
			ServiceID:     "Redshift",
			OperationName: "RejectShare",
			Err:           fmt.Errorf("send request: %w", dnsErr),
		}}
		_, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{
			Client: client,
			Region: "nowhere-1",
		}, Invocation{Values: baseValues()})

		var ce *ConnectivityError
		if !errors.As(err, &ce) {
			t.Fatalf("Invoke() error = %T %v, want *ConnectivityError", err, err)
		}
		if !ce.NameResolution || ce.Host != dnsErr.Name {
			t.Errorf("ConnectivityError = %+v", ce)
		}
		if !errors.Is(err, ErrConnectivity) {
			t.Error("errors.Is(err, ErrConnectivity) = false")
		}
		msg := err.Error()
		if !strings.Contains(msg, "name resolution failure") || !strings.Contains(msg, "nowhere-1") {
			t.Errorf("message %q is not enriched", msg)
		}
		if len(client.calls) != 1 {
			t.Errorf("client called %d time(s), want 1", len(client.calls))
		}
	})

	t.Run("dial failure", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}}
		_, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{Values: baseValues()})

		var ce *ConnectivityError
		if !errors.As(err, &ce) || ce.NameResolution {
			t.Fatalf("Invoke() error = %v, want non-DNS *ConnectivityError", err)
		}
	})

	t.Run("service fault", func(t *testing.T) {
		t.Parallel()

		apiErr := &smithy.GenericAPIError{Code: "InvalidDataShareFault", Message: "not found", Fault: smithy.FaultClient}
		client := &fakeClient{err: apiErr}
		_, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{Values: baseValues()})

		var rse *RemoteServiceError
		if !errors.As(err, &rse) {
			t.Fatalf("Invoke() error = %v, want *RemoteServiceError", err)
		}
		if rse.Code != "InvalidDataShareFault" || rse.Message != "not found" || rse.Fault != "client" {
			t.Errorf("RemoteServiceError = %+v", rse)
		}
		if !errors.Is(err, ErrRemoteService) {
			t.Error("errors.Is(err, ErrRemoteService) = false")
		}
		var got smithy.APIError
		if !errors.As(err, &got) {
			t.Error("errors.As(err, smithy.APIError) = false, want the transport error reachable")
		}
	})

	t.Run("unclassified failure", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{err: errors.New("boom")}
		_, err := newFakeOperation(ImpactNone).Invoke(context.Background(), Host[*fakeClient]{Client: client}, Invocation{Values: baseValues()})
		var rse *RemoteServiceError
		if !errors.As(err, &rse) || rse.Code != "" || rse.Message != "boom" {
			t.Fatalf("Invoke() error = %#v", err)
		}
	})
}

func TestInvoke_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{}
	_, err := newFakeOperation(ImpactNone).Invoke(ctx, Host[*fakeClient]{Client: client}, Invocation{Values: baseValues()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Invoke() error = %v, want context.Canceled", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("client called %d time(s), want 0", len(client.calls))
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	d := newFakeOperation(ImpactHigh).Describe()
	if d.Name != "RejectShare" || d.Group != "share" || d.Verb != "reject" || d.Impact != ImpactHigh {
		t.Errorf("Describe() = %+v", d)
	}
	if diff := cmp.Diff([]string{"ShareArn", "Status"}, d.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	if len(d.Params) != 7 || !d.Params[0].IsRequired || d.Params[0].Aliases[0] != "Arn" {
		t.Errorf("Params = %+v", d.Params)
	}
}
