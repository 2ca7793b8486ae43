// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

var (
	// ErrMissingRequiredParameter is wrapped by MissingRequiredParameterError.
	ErrMissingRequiredParameter = errors.New("missing required parameter")
	// ErrInvalidParameter is wrapped by InvalidParameterError.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidSelector is returned when a selector names an unknown field
	// or parameter.
	ErrInvalidSelector = errors.New("invalid selector")
	// ErrRemoteService is wrapped by RemoteServiceError.
	ErrRemoteService = errors.New("remote service error")
	// ErrConnectivity is wrapped by ConnectivityError.
	ErrConnectivity = errors.New("connectivity error")
)

type (
	// MissingRequiredParameterError is returned before dispatch when a
	// required parameter has no value.
	MissingRequiredParameterError struct {
		Operation string
		Parameter string
		// Bound is true when the parameter was supplied with an empty value.
		Bound bool
	}

	// InvalidParameterError is returned before dispatch when a bound value
	// violates the parameter's declared constraints.
	InvalidParameterError struct {
		Operation string
		Parameter string
		Reason    string
	}

	// RemoteServiceError is a failure reported by the remote service, or any
	// other dispatch failure that is not a connectivity problem.
	RemoteServiceError struct {
		Operation  string
		Code       string
		Message    string
		Fault      string
		StatusCode int
		RequestID  string
		Err        error
	}

	// ConnectivityError is a name-resolution or network failure at dispatch,
	// rewrapped with the endpoint and region the call was aimed at.
	ConnectivityError struct {
		Operation      string
		Region         string
		Endpoint       string
		Host           string
		NameResolution bool
		Err            error
	}
)

// Error implements the error interface.
func (e *MissingRequiredParameterError) Error() string {
	if e.Bound {
		return fmt.Sprintf("%s: required parameter %s was bound to an empty value", e.Operation, e.Parameter)
	}
	return fmt.Sprintf("%s: missing required parameter %s", e.Operation, e.Parameter)
}

// Unwrap returns ErrMissingRequiredParameter for errors.Is compatibility.
func (e *MissingRequiredParameterError) Unwrap() error { return ErrMissingRequiredParameter }

// Error implements the error interface.
func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid value for parameter %s: %s", e.Operation, e.Parameter, e.Reason)
}

// Unwrap returns ErrInvalidParameter for errors.Is compatibility.
func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// Error implements the error interface.
func (e *RemoteServiceError) Error() string {
	var b strings.Builder
	b.WriteString(e.Operation)
	b.WriteString(": ")
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)

	var meta []string
	if e.StatusCode != 0 {
		meta = append(meta, fmt.Sprintf("status %d", e.StatusCode))
	}
	if e.RequestID != "" {
		meta = append(meta, "request id "+e.RequestID)
	}
	if len(meta) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(meta, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap exposes both ErrRemoteService and the transport error.
func (e *RemoteServiceError) Unwrap() []error { return []error{ErrRemoteService, e.Err} }

// Error implements the error interface.
func (e *ConnectivityError) Error() string {
	where := e.Endpoint
	if where == "" {
		where = "the default endpoint"
	}
	region := e.Region
	if region == "" {
		region = "(none)"
	}
	if e.NameResolution {
		return fmt.Sprintf(
			"%s: name resolution failure attempting to reach service in region %s at %s (host %q). "+
				"Check the region or endpoint_url in your rsctl configuration and your network/DNS settings",
			e.Operation, region, where, e.Host)
	}
	return fmt.Sprintf("%s: unable to connect to service in region %s at %s: %v", e.Operation, region, where, e.Err)
}

// Unwrap exposes both ErrConnectivity and the transport error.
func (e *ConnectivityError) Unwrap() []error { return []error{ErrConnectivity, e.Err} }

// classifyDispatchError turns a dispatch failure into a structured error.
func classifyDispatchError(operation, region, endpoint string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectivityError{
			Operation:      operation,
			Region:         region,
			Endpoint:       endpoint,
			Host:           dnsErr.Name,
			NameResolution: true,
			Err:            err,
		}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &ConnectivityError{
			Operation: operation,
			Region:    region,
			Endpoint:  endpoint,
			Err:       err,
		}
	}

	rse := &RemoteServiceError{Operation: operation, Message: err.Error(), Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		rse.Code = apiErr.ErrorCode()
		rse.Message = apiErr.ErrorMessage()
		rse.Fault = apiErr.ErrorFault().String()
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		rse.RequestID = respErr.ServiceRequestID()
		if respErr.ResponseError != nil && respErr.Response != nil {
			rse.StatusCode = respErr.HTTPStatusCode()
		}
	}
	return rse
}
