// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/invowk/rsctl/internal/awsclient"
	"github.com/invowk/rsctl/internal/config"
	"github.com/invowk/rsctl/internal/invoke"
	"github.com/invowk/rsctl/internal/render"
	"github.com/invowk/rsctl/internal/tui"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootCommand holds the global flags of one run and the settings derived
	// from them. Settings are resolved lazily so that help and completion
	// never touch the configuration file.
	rootCommand struct {
		app *App
		cmd *cobra.Command

		configPath  string
		verbose     bool
		region      string
		profile     string
		endpointURL string
		output      string
		debugHTTP   bool

		settings *settings
	}

	// settings is the effective configuration of a run: file, environment
	// and flags merged in increasing precedence.
	settings struct {
		Config    *config.Config
		Path      string
		Format    render.Format
		Threshold invoke.Impact
		Logger    *slog.Logger
	}
)

// NewRootCommand builds the command tree for one run of app.
func NewRootCommand(app *App) *cobra.Command {
	rc := &rootCommand{app: app}

	rc.cmd = &cobra.Command{
		Use:   "rsctl",
		Short: "Amazon Redshift control-plane commands",
		Long: TitleStyle.Render("rsctl") + SubtitleStyle.Render(" - Amazon Redshift control-plane commands") + `

rsctl exposes Redshift management operations (clusters, usage limits,
datashares and IAM Identity Center applications) as commands. Every command
validates its parameters before sending anything, asks before changing or
deleting resources, and sends exactly one request.

` + SubtitleStyle.Render("Examples:") + `
  rsctl cluster describe                       List clusters
  rsctl cluster pause --id analytics           Pause a cluster (asks first)
  rsctl datashare reject --arn "$ARN" --force  Reject a datashare without asking
  rsctl usage-limit delete --id ul-1 --pass-thru
  rsctl ops --fields                           List operations and response fields
  rsctl shell -c 'rsctl cluster describe --query "[].ClusterIdentifier"'`,
		SilenceUsage: true,
	}

	flags := rc.cmd.PersistentFlags()
	flags.StringVar(&rc.configPath, "config", "", "config file (default is "+defaultConfigHint()+")")
	flags.BoolVarP(&rc.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&rc.region, "region", "", "AWS region (overrides aws.region)")
	flags.StringVar(&rc.profile, "profile", "", "shared config profile (overrides aws.profile)")
	flags.StringVar(&rc.endpointURL, "endpoint-url", "", "service endpoint (overrides aws.endpoint_url)")
	flags.StringVarP(&rc.output, "output", "o", "", "output format: json, yaml, table or text (overrides output.format)")
	flags.BoolVar(&rc.debugHTTP, "debug-http", false, "log HTTP requests, responses and retries")

	_ = rc.cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(render.Formats()))
		for _, f := range render.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	rc.cmd.AddGroup(
		&cobra.Group{ID: groupOperations, Title: "Operations:"},
		&cobra.Group{ID: groupTools, Title: "Tools:"},
	)
	for _, g := range newOperationGroups(rc) {
		rc.cmd.AddCommand(g)
	}
	rc.cmd.AddCommand(newOpsCommand(rc), newConfigCommand(rc), newShellCommand(rc))

	return rc.cmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func defaultConfigHint() string {
	if path, err := config.DefaultPath(); err == nil {
		return path
	}
	return "$HOME/.config/rsctl/config.cue"
}

// load resolves the effective settings once per run.
func (rc *rootCommand) load(cmd *cobra.Command) (*settings, error) {
	if rc.settings != nil {
		return rc.settings, nil
	}

	loaded, err := rc.app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: rc.configPath})
	if err != nil {
		return nil, rc.fail(err, rc.verbose)
	}

	cfg := *loaded.Config
	flags := rc.cmd.PersistentFlags()
	if flags.Changed("region") {
		cfg.AWS.Region = rc.region
	}
	if flags.Changed("profile") {
		cfg.AWS.Profile = rc.profile
	}
	if flags.Changed("endpoint-url") {
		cfg.AWS.EndpointURL = rc.endpointURL
	}
	if flags.Changed("output") {
		cfg.Output.Format = config.OutputFormat(rc.output)
	}
	if flags.Changed("verbose") {
		cfg.UI.Verbose = rc.verbose
	}

	format, err := render.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return nil, rc.fail(err, cfg.UI.Verbose)
	}
	threshold, err := invoke.ParseImpact(string(cfg.Confirm.Threshold))
	if err != nil {
		return nil, rc.fail(err, cfg.UI.Verbose)
	}

	rc.settings = &settings{
		Config:    &cfg,
		Path:      loaded.Path,
		Format:    format,
		Threshold: threshold,
		Logger:    newLogger(cmd.ErrOrStderr(), cfg.UI.Verbose || rc.debugHTTP),
	}
	rc.settings.Logger.Debug("configuration loaded", "path", loaded.Path, "region", cfg.AWS.Region, "output", format)
	return rc.settings, nil
}

// clientOptions maps settings to service client options.
func (rc *rootCommand) clientOptions(s *settings) awsclient.Options {
	return awsclient.Options{
		Region:      s.Config.AWS.Region,
		Profile:     s.Config.AWS.Profile,
		EndpointURL: s.Config.AWS.EndpointURL,
		MaxAttempts: s.Config.AWS.MaxAttempts,
		DebugHTTP:   rc.debugHTTP,
		Logger:      s.Logger,
	}
}

// confirmer returns the prompt used for mutating operations.
func (rc *rootCommand) confirmer(cmd *cobra.Command, s *settings) invoke.Confirmer {
	if rc.app.Confirmer != nil {
		return rc.app.Confirmer
	}
	in := cmd.InOrStdin()
	return tui.NewConfirmer(tui.Config{
		Theme:      tui.Theme(s.Config.UI.Theme),
		Accessible: s.Config.UI.Accessible || !tui.IsTerminal(in),
		Input:      in,
		Output:     cmd.ErrOrStderr(),
	})
}

// fail converts err into a ServiceError carrying its catalog entry. The
// error is rendered once, by the fang error handler.
func (rc *rootCommand) fail(err error, verbose bool) error {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	issueID, msg := classifyInvokeError(err, verbose)
	svc := newServiceError(err, issueID, msg)
	if rc.settings != nil {
		svc.HelpStyle = helpStyle(rc.settings.Config.UI.ColorScheme)
	}
	return svc
}

// helpStyle picks the glamour style of issue help for a color scheme.
func helpStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "notty"
	}
}

// print renders a result value, applying an optional JMESPath query first.
func (rc *rootCommand) print(w io.Writer, s *settings, v any, query string) error {
	if query != "" {
		queried, err := render.Query(v, query)
		if err != nil {
			return rc.fail(err, s.Config.UI.Verbose)
		}
		v = queried
	}
	return render.Write(w, s.Format, v)
}
