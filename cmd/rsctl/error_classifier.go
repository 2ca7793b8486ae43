// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/rsctl/internal/awsclient"
	"github.com/invowk/rsctl/internal/config"
	"github.com/invowk/rsctl/internal/invoke"
	"github.com/invowk/rsctl/internal/issue"
	"github.com/invowk/rsctl/internal/render"
)

// classifyInvokeError maps invocation failures to issue catalog IDs and
// returns a styled message for CLI rendering. Credential failures surface as
// remote errors from the signer, so they are checked first.
func classifyInvokeError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	switch {
	case errors.Is(err, invoke.ErrMissingRequiredParameter):
		issueID = issue.MissingParameterId
	case errors.Is(err, invoke.ErrInvalidParameter):
		issueID = issue.InvalidParameterId
	case errors.Is(err, invoke.ErrInvalidSelector):
		issueID = issue.InvalidSelectorId
	case errors.Is(err, invoke.ErrConnectivity):
		issueID = issue.ConnectivityFailedId
	case awsclient.IsCredentialsError(err):
		issueID = issue.CredentialsNotFoundId
	case errors.Is(err, invoke.ErrRemoteService):
		issueID = issue.RemoteServiceFailedId
	case errors.Is(err, render.ErrInvalidQuery):
		issueID = issue.QueryFailedId
	case errors.Is(err, config.ErrInvalidConfig):
		issueID = issue.ConfigLoadFailedId
	default:
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.Operation == "load configuration" {
			issueID = issue.ConfigLoadFailedId
		}
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
