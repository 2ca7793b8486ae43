// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/invowk/rsctl/internal/issue"
	"github.com/invowk/rsctl/internal/vshell"
)

func newShellCommand(rc *rootCommand) *cobra.Command {
	var script string

	c := &cobra.Command{
		Use:     "shell [-c script | file] [args...]",
		Short:   "Run a shell script where rsctl runs in-process",
		GroupID: groupTools,
		Long: `Run a POSIX shell script with an embedded interpreter. Calls to rsctl inside
the script run in the same process, share service clients and inherit the
global flags given to 'rsctl shell'. Other commands run as usual.

Without -c or a file, the script is read from standard input.`,
		Example: `  rsctl shell -c 'for id in $(rsctl cluster describe -o text --query "[].ClusterIdentifier"); do
    rsctl cluster pause --id "$id" --force
  done'
  rsctl --region eu-west-1 shell nightly.sh analytics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, params := "-c", args
			if !cmd.Flags().Changed("command") {
				var err error
				if script, name, params, err = readScript(cmd.InOrStdin(), args); err != nil {
					return rc.scriptFailure(err)
				}
			}
			return rc.runScript(cmd, script, name, params)
		},
	}
	c.Flags().StringVarP(&script, "command", "c", "", "script to run")
	c.Flags().SetInterspersed(false)
	return c
}

// readScript reads the script from the file named by args[0], or from in
// when there are no arguments.
func readScript(in io.Reader, args []string) (script, name string, params []string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", nil, fmt.Errorf("failed to read script from stdin: %w", err)
		}
		return string(data), "<stdin>", nil, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), args[0], args[1:], nil
}

func (rc *rootCommand) runScript(cmd *cobra.Command, script, name string, params []string) error {
	inherited := inheritedFlags(rc.cmd.PersistentFlags())

	sh := vshell.New(vshell.Options{
		Params: params,
		IO: vshell.IO{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
		Command: func(ctx context.Context, stdio vshell.IO, args []string) int {
			return rc.app.Run(ctx, stdio, slices.Concat(inherited, args))
		},
	})

	err := sh.Run(cmd.Context(), script, name)
	var scriptErr *vshell.ScriptError
	if errors.As(err, &scriptErr) {
		return &ExitError{Code: scriptErr.ExitCode}
	}
	if err != nil {
		return rc.scriptFailure(err)
	}
	return nil
}

func (rc *rootCommand) scriptFailure(err error) error {
	return newServiceError(err, issue.ScriptExecutionFailedId,
		fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, rc.verbose)))
}

// inheritedFlags returns the global flags set on the command line, in a
// form that can be prepended to nested invocations.
func inheritedFlags(fs *pflag.FlagSet) []string {
	var args []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			args = append(args, "--"+f.Name+"="+f.Value.String())
		}
	})
	return args
}
