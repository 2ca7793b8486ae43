// SPDX-License-Identifier: MPL-2.0

package vshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// CommandName is the command handled in-process.
const CommandName = "rsctl"

type (
	// IO is the standard streams of one in-process command.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// CommandFunc runs one in-process rsctl command with args (excluding the
	// command name) and returns its exit code.
	CommandFunc func(ctx context.Context, stdio IO, args []string) int

	// Options configures a Shell.
	Options struct {
		// Dir is the initial working directory (default: the process's).
		Dir string
		// Env is the environment in KEY=VALUE form (default: os.Environ()).
		Env []string
		// Params are the positional parameters ($1, $2, ...).
		Params []string
		IO     IO
		// Command handles "rsctl ..." invocations.
		Command CommandFunc
	}

	// Shell runs scripts under one configuration.
	Shell struct {
		opts Options
	}

	// ScriptError reports a script that exited non-zero.
	ScriptError struct {
		Name     string
		ExitCode int
	}
)

// New creates a Shell.
func New(opts Options) *Shell {
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.IO.Stdin == nil {
		opts.IO.Stdin = os.Stdin
	}
	if opts.IO.Stdout == nil {
		opts.IO.Stdout = os.Stdout
	}
	if opts.IO.Stderr == nil {
		opts.IO.Stderr = os.Stderr
	}
	return &Shell{opts: opts}
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s exited with status %d", e.Name, e.ExitCode)
}

// Parse parses script without running it.
func Parse(script, name string) (*syntax.File, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return prog, nil
}

// Run parses and executes script. A non-zero exit status is reported as a
// *ScriptError; other failures (parse errors, cancellation) are returned as is.
func (s *Shell) Run(ctx context.Context, script, name string) error {
	prog, err := Parse(script, name)
	if err != nil {
		return err
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(s.opts.Env...)),
		interp.StdIO(s.opts.IO.Stdin, s.opts.IO.Stdout, s.opts.IO.Stderr),
		interp.ExecHandlers(s.execHandler),
	}
	if s.opts.Dir != "" {
		opts = append(opts, interp.Dir(s.opts.Dir))
	}
	// "--" keeps parameters such as "-v" from being read as shell options.
	if len(s.opts.Params) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, s.opts.Params...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ScriptError{Name: name, ExitCode: int(status)}
		}
		return fmt.Errorf("script execution failed: %w", err)
	}
	return nil
}

// execHandler routes "rsctl" to the in-process command.
func (s *Shell) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) == 0 || args[0] != CommandName || s.opts.Command == nil {
			return next(ctx, args)
		}

		hc := interp.HandlerCtx(ctx)
		code := s.opts.Command(ctx, IO{Stdin: hc.Stdin, Stdout: hc.Stdout, Stderr: hc.Stderr}, args[1:])
		if code != 0 {
			return interp.NewExitStatus(uint8(min(code, 255))) //nolint:gosec // clamped
		}
		return nil
	}
}
