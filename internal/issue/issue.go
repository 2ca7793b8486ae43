// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	// ConfigLoadFailedId is reported when the CUE config cannot be read or validated.
	ConfigLoadFailedId Id = iota + 1
	// MissingParameterId is reported when a required parameter has no value.
	MissingParameterId
	// InvalidParameterId is reported when a value violates a parameter constraint.
	InvalidParameterId
	// InvalidSelectorId is reported for a --select naming no field or parameter.
	InvalidSelectorId
	// RemoteServiceFailedId is reported when the service rejects or fails a call.
	RemoteServiceFailedId
	// ConnectivityFailedId is reported when the endpoint cannot be resolved or reached.
	ConnectivityFailedId
	// CredentialsNotFoundId is reported when no credentials could be resolved.
	CredentialsNotFoundId
	// QueryFailedId is reported when a --query expression is invalid.
	QueryFailedId
	// ScriptExecutionFailedId is reported when an rsctl shell script fails.
	ScriptExecutionFailedId
)

type (
	// Id identifies an entry of the issue catalog.
	Id int

	// MarkdownMsg is the Markdown guidance of an issue.
	MarkdownMsg string

	// HttpLink is a documentation link.
	HttpLink string

	// Issue is one catalog entry.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

// Id returns the catalog identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the unrendered guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// ExtLinks returns a copy of the external links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guidance with the given glamour style ("auto", "dark",
// "light", "notty" or a style file path).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

rsctl could not read or validate its configuration file.

## Configuration file locations:
- Linux: ~/.config/rsctl/config.cue
- macOS: ~/Library/Application Support/rsctl/config.cue
- Windows: %APPDATA%\rsctl\config.cue

## Things you can try:
- Print the effective configuration:
~~~
$ rsctl config show
~~~
- Write a fresh default file:
~~~
$ rsctl config init
~~~
- Check the keys against this example:
~~~cue
aws: {
  region:       "us-east-1"
  max_attempts: 3
}
output: format: "json"
confirm: threshold: "medium"
~~~`,
	}

	missingParameterIssue = &Issue{
		id: MissingParameterId,
		mdMsg: `
# A required parameter is missing!

The request was not sent: the operation needs a value that was not supplied,
or was supplied empty.

## Things you can try:
- List the parameters of the command (required ones are marked):
~~~
$ rsctl <group> <verb> --help
~~~
- Quote values that come from shell variables so an unset variable is
  noticed, e.g. ` + "`--data-share-arn \"$ARN\"`" + ``,
	}

	invalidParameterIssue = &Issue{
		id: InvalidParameterId,
		mdMsg: `
# Invalid parameter value!

The request was not sent: a value does not satisfy the constraints the service
declares for it (length, pattern, allowed values, numeric range or item count).

## Things you can try:
- Check the allowed values in the command help:
~~~
$ rsctl <group> <verb> --help
~~~
- Enumerations are case-insensitive; numbers must be plain integers
- Tags are written as ` + "`Key=Value`" + `, one per ` + "`--tags`" + ` flag`,
	}

	invalidSelectorIssue = &Issue{
		id: InvalidSelectorId,
		mdMsg: `
# Invalid selector!

` + "`--select`" + ` accepts:
- ` + "`*`" + ` for the whole response
- a response field name, e.g. ` + "`Cluster`" + `
- ` + "`^ParameterName`" + ` to echo a bound input value

` + "`--pass-thru`" + ` is only available on operations that return nothing useful
(delete and similar).

## Things you can try:
- List operations and their response fields:
~~~
$ rsctl ops --fields
~~~`,
	}

	remoteServiceFailedIssue = &Issue{
		id: RemoteServiceFailedId,
		mdMsg: `
# The service rejected the request!

The request reached Amazon Redshift, which returned an error. The error code
and request ID above identify the failure.

## Things you can try:
- Verify the identifiers and ARNs you passed exist in this account and region
- Check IAM permissions for the operation
- Run with ` + "`--debug-http`" + ` to see the exchanged requests:
~~~
$ rsctl --debug-http <group> <verb> ...
~~~`,
		extLinks: []HttpLink{"https://docs.aws.amazon.com/redshift/latest/APIReference/CommonErrors.html"},
	}

	connectivityFailedIssue = &Issue{
		id: ConnectivityFailedId,
		mdMsg: `
# Could not reach the service endpoint!

The request never reached Amazon Redshift. Most often the region is wrong or
misspelled, the endpoint override points nowhere, or DNS is unavailable.

## Things you can try:
- Check the region and endpoint in effect:
~~~
$ rsctl config show
~~~
- Override them for one call:
~~~
$ rsctl --region us-east-1 --endpoint-url "" cluster describe
~~~
- Check proxy and DNS settings on this machine`,
	}

	credentialsNotFoundIssue = &Issue{
		id: CredentialsNotFoundId,
		mdMsg: `
# No AWS credentials found!

rsctl uses the standard AWS credential chain: environment variables, the shared
config and credentials files, SSO, and instance or container roles.

## Things you can try:
- Select a profile:
~~~
$ rsctl --profile analytics cluster describe
~~~
- Log in with SSO:
~~~
$ aws sso login --profile analytics
~~~`,
		extLinks: []HttpLink{"https://docs.aws.amazon.com/sdkref/latest/guide/standardized-credentials.html"},
	}

	queryFailedIssue = &Issue{
		id: QueryFailedId,
		mdMsg: `
# Invalid --query expression!

` + "`--query`" + ` takes a JMESPath expression applied to the selected value.

## Examples:
~~~
$ rsctl cluster describe --query '[].ClusterIdentifier'
$ rsctl datashare describe --query "[?ManagedBy=='ADX'].DataShareArn"
~~~`,
		extLinks: []HttpLink{"https://jmespath.org/tutorial.html"},
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script execution failed!

A command in the rsctl shell script exited with a non-zero status.

## Things you can try:
- Run the script with tracing:
~~~
$ rsctl shell -c 'set -x; ...'
~~~
- Run the failing rsctl command on its own with ` + "`--verbose`" + ``,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		missingParameterIssue.Id():      missingParameterIssue,
		invalidParameterIssue.Id():      invalidParameterIssue,
		invalidSelectorIssue.Id():       invalidSelectorIssue,
		remoteServiceFailedIssue.Id():   remoteServiceFailedIssue,
		connectivityFailedIssue.Id():    connectivityFailedIssue,
		credentialsNotFoundIssue.Id():   credentialsNotFoundIssue,
		queryFailedIssue.Id():           queryFailedIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
	}
)

// Values returns every catalog entry in unspecified order.
func Values() []*Issue {
	return slices.Collect(maps.Values(issues))
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
