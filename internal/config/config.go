// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/invowk/rsctl/internal/cueutil"
	"github.com/invowk/rsctl/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "rsctl"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (RSCTL_AWS_REGION, ...).
	EnvPrefix = "RSCTL"

	schemaDefinition = "#Config"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the rsctl configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions loads defaults, the CUE file (if any) and environment
// overrides, in increasing precedence. It returns the file actually read, or
// "" when running on defaults.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	v := newViper()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'rsctl config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check RSCTL_* environment variables as well as the config file").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, path, nil
}

// newViper returns a viper instance primed with defaults and environment
// bindings for every key.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("aws.region", defaults.AWS.Region)
	v.SetDefault("aws.profile", defaults.AWS.Profile)
	v.SetDefault("aws.endpoint_url", defaults.AWS.EndpointURL)
	v.SetDefault("aws.max_attempts", defaults.AWS.MaxAttempts)
	v.SetDefault("output.format", string(defaults.Output.Format))
	v.SetDefault("confirm.threshold", string(defaults.Confirm.Threshold))
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.theme", string(defaults.UI.Theme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.accessible", defaults.UI.Accessible)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// resolvePath picks the explicit file, then the config directory, then the
// current directory. A missing explicit file is an error; a missing default
// file is not.
func resolvePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'rsctl config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %w", fs.ErrNotExist)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	for _, candidate := range []string{
		filepath.Join(dir, ConfigFileName+"."+ConfigFileExt),
		ConfigFileName + "." + ConfigFileExt,
	} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// viper. Fields are optional, so the document need not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	values, err := cueutil.Decode(configSchema, schemaDefinition, data, path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to path (or the
// default location when path is empty). It returns the path written and
// whether the file was created; an existing file is left untouched.
func CreateDefaultConfig(path string) (string, bool, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return "", false, err
		}
	}
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE renders cfg as a CUE document accepted by the schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// rsctl configuration file\n")
	sb.WriteString("// Every key can be overridden with RSCTL_<SECTION>_<KEY> environment variables.\n\n")

	sb.WriteString("aws: {\n")
	if cfg.AWS.Region != "" {
		fmt.Fprintf(&sb, "\tregion: %q\n", cfg.AWS.Region)
	} else {
		sb.WriteString("\t// region: \"us-east-1\"\n")
	}
	if cfg.AWS.Profile != "" {
		fmt.Fprintf(&sb, "\tprofile: %q\n", cfg.AWS.Profile)
	}
	if cfg.AWS.EndpointURL != "" {
		fmt.Fprintf(&sb, "\tendpoint_url: %q\n", cfg.AWS.EndpointURL)
	}
	fmt.Fprintf(&sb, "\tmax_attempts: %d\n", cfg.AWS.MaxAttempts)
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\noutput: {\n\tformat: %q\n}\n", cfg.Output.Format)
	fmt.Fprintf(&sb, "\nconfirm: {\n\tthreshold: %q\n}\n", cfg.Confirm.Threshold)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\ttheme: %q\n", cfg.UI.Theme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\taccessible: %v\n", cfg.UI.Accessible)
	sb.WriteString("}\n")

	return sb.String()
}
