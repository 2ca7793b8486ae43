// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/invowk/rsctl/internal/config"
)

// newConfigCommand creates the `rsctl config` command tree.
func newConfigCommand(rc *rootCommand) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage rsctl configuration",
		GroupID: groupTools,
		Long: `Manage rsctl configuration.

Configuration is stored in:
  - Linux: ~/.config/rsctl/config.cue
  - macOS: ~/Library/Application Support/rsctl/config.cue
  - Windows: %APPDATA%\rsctl\config.cue

Every key can be overridden with an RSCTL_<SECTION>_<KEY> environment
variable (for example RSCTL_AWS_REGION) and, for the aws and output keys,
with the matching global flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rc.load(cmd)
			if err != nil {
				return err
			}
			showConfig(cmd.OutOrStdout(), s)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, created, err := config.CreateDefaultConfig(rc.configPath)
			if err != nil {
				return rc.fail(fmt.Errorf("failed to create config: %w", err), rc.verbose)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration already exists at %s\n", WarningStyle.Render("•"), path)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := rc.configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := rc.load(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(s.Config))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, s *settings) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	value := func(v any) string {
		if str, ok := v.(string); ok && str == "" {
			return SubtitleStyle.Render("(not set)")
		}
		return valueStyle.Render(fmt.Sprint(v))
	}

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if s.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), s.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	cfg := s.Config
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("aws"))
	fmt.Fprintf(w, "  region: %s\n", value(cfg.AWS.Region))
	fmt.Fprintf(w, "  profile: %s\n", value(cfg.AWS.Profile))
	fmt.Fprintf(w, "  endpoint_url: %s\n", value(cfg.AWS.EndpointURL))
	fmt.Fprintf(w, "  max_attempts: %s\n", value(cfg.AWS.MaxAttempts))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  format: %s\n", value(string(cfg.Output.Format)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("confirm"))
	fmt.Fprintf(w, "  threshold: %s\n", value(string(cfg.Confirm.Threshold)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", value(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  theme: %s\n", value(string(cfg.UI.Theme)))
	fmt.Fprintf(w, "  verbose: %s\n", value(cfg.UI.Verbose))
	fmt.Fprintf(w, "  accessible: %s\n", value(cfg.UI.Accessible))
}
