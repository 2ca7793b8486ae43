// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/fang"

	"github.com/invowk/rsctl/internal/awsclient"
	"github.com/invowk/rsctl/internal/config"
	"github.com/invowk/rsctl/internal/invoke"
	"github.com/invowk/rsctl/internal/redshiftops"
	"github.com/invowk/rsctl/internal/tui"
	"github.com/invowk/rsctl/internal/vshell"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every command handler receives the App and
	// reaches configuration, the service client and the prompt through it.
	// An App outlives a single run, so the scripting shell can reuse one
	// client across the commands of a script.
	App struct {
		Config config.Provider
		// Clients builds the service client for a set of connection options.
		Clients ClientFactory
		// Confirmer overrides the terminal prompt (tests).
		Confirmer invoke.Confirmer
		// Interactive reports whether a user can answer prompts.
		Interactive func() bool

		mu      sync.Mutex
		clients map[clientKey]*Client
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      config.Provider
		Clients     ClientFactory
		Confirmer   invoke.Confirmer
		Interactive func() bool
	}

	// Client is a service client together with the region and endpoint it
	// targets, used to enrich connectivity errors.
	Client struct {
		API      redshiftops.API
		Region   string
		Endpoint string
	}

	// ClientFactory creates a service client.
	ClientFactory func(ctx context.Context, opts awsclient.Options) (*Client, error)

	clientKey struct {
		region, profile, endpoint string
		maxAttempts               int
		debugHTTP                 bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Clients == nil {
		deps.Clients = newAWSClient
	}
	if deps.Interactive == nil {
		deps.Interactive = tui.IsInteractive
	}
	return &App{
		Config:      deps.Config,
		Clients:     deps.Clients,
		Confirmer:   deps.Confirmer,
		Interactive: deps.Interactive,
		clients:     make(map[clientKey]*Client),
	}
}

func newAWSClient(ctx context.Context, opts awsclient.Options) (*Client, error) {
	c, err := awsclient.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{API: c.Client, Region: c.Region, Endpoint: c.Endpoint}, nil
}

// client returns the cached client for opts, creating it on first use.
func (a *App) client(ctx context.Context, opts awsclient.Options) (*Client, error) {
	key := clientKey{
		region:      opts.Region,
		profile:     opts.Profile,
		endpoint:    opts.EndpointURL,
		maxAttempts: opts.MaxAttempts,
		debugHTTP:   opts.DebugHTTP,
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.clients[key]; ok {
		return c, nil
	}
	c, err := a.Clients(ctx, opts)
	if err != nil {
		return nil, err
	}
	a.clients[key] = c
	return c, nil
}

// Run executes one rsctl command line on stdio and returns its exit code.
func (a *App) Run(ctx context.Context, stdio vshell.IO, args []string, opts ...fang.Option) int {
	root := NewRootCommand(a)
	root.SetArgs(args)
	if stdio.Stdin != nil {
		root.SetIn(stdio.Stdin)
	}
	if stdio.Stdout != nil {
		root.SetOut(stdio.Stdout)
	}
	if stdio.Stderr != nil {
		root.SetErr(stdio.Stderr)
	}

	opts = append([]fang.Option{
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(handleError),
	}, opts...)

	if err := fang.Execute(ctx, root, opts...); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

// handleError renders ServiceErrors with their issue help and stays silent
// for bare exit codes; everything else gets fang's default treatment.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(w, svcErr)
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs rsctl with the process arguments and exits.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	code := app.Run(context.Background(), vshell.IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, os.Args[1:], fang.WithNotifySignal(os.Interrupt))
	os.Exit(code)
}
