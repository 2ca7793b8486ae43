// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// OutputJSON renders results as indented JSON.
	OutputJSON OutputFormat = "json"
	// OutputYAML renders results as YAML.
	OutputYAML OutputFormat = "yaml"
	// OutputTable renders lists of objects as a table.
	OutputTable OutputFormat = "table"
	// OutputText renders scalars bare and everything else as JSON.
	OutputText OutputFormat = "text"

	// ThresholdNone never asks for confirmation.
	ThresholdNone ConfirmThreshold = "none"
	// ThresholdLow asks before every mutating operation.
	ThresholdLow ConfirmThreshold = "low"
	// ThresholdMedium asks before modifying and destructive operations.
	ThresholdMedium ConfirmThreshold = "medium"
	// ThresholdHigh asks only before destructive operations.
	ThresholdHigh ConfirmThreshold = "high"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// ThemeDefault uses the base prompt theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm prompt theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula prompt theme.
	ThemeDracula Theme = "dracula"
	// ThemeBase16 uses the Base16 prompt theme.
	ThemeBase16 Theme = "base16"

	// DefaultMaxAttempts matches the SDK's standard retryer.
	DefaultMaxAttempts = 3
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidConfirmThreshold is returned when a ConfirmThreshold value is not recognized.
	ErrInvalidConfirmThreshold = errors.New("invalid confirmation threshold")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidTheme is returned when a Theme value is not recognized.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidAWSConfig is the sentinel error wrapped by InvalidAWSConfigError.
	ErrInvalidAWSConfig = errors.New("invalid aws config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how results are printed.
	OutputFormat string

	// ConfirmThreshold is the minimum operation impact that asks for
	// confirmation.
	ConfirmThreshold string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// Theme names the color theme of the confirmation prompt.
	Theme string

	// InvalidValueError reports a value outside an enumerated set.
	InvalidValueError struct {
		Field   string
		Value   string
		Allowed []string
		err     error
	}

	// InvalidAWSConfigError is returned when an AWSConfig has invalid fields.
	// It wraps ErrInvalidAWSConfig for errors.Is() compatibility.
	InvalidAWSConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// AWS configures the service client.
		AWS AWSConfig `json:"aws" mapstructure:"aws"`
		// Output configures result rendering.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// Confirm configures the confirmation prompt.
		Confirm ConfirmConfig `json:"confirm" mapstructure:"confirm"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// AWSConfig configures region, credentials profile and endpoint.
	AWSConfig struct {
		Region      string `json:"region" mapstructure:"region"`
		Profile     string `json:"profile" mapstructure:"profile"`
		EndpointURL string `json:"endpoint_url" mapstructure:"endpoint_url"`
		MaxAttempts int    `json:"max_attempts" mapstructure:"max_attempts"`
	}

	// OutputConfig configures result rendering.
	OutputConfig struct {
		Format OutputFormat `json:"format" mapstructure:"format"`
	}

	// ConfirmConfig configures the confirmation prompt.
	ConfirmConfig struct {
		Threshold ConfirmThreshold `json:"threshold" mapstructure:"threshold"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme of rendered help
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Theme sets the confirmation prompt theme
		Theme Theme `json:"theme" mapstructure:"theme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Accessible replaces the interactive prompt with a plain line-based one
		Accessible bool `json:"accessible" mapstructure:"accessible"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AWS: AWSConfig{
			MaxAttempts: DefaultMaxAttempts,
		},
		Output: OutputConfig{
			Format: OutputJSON,
		},
		Confirm: ConfirmConfig{
			Threshold: ThresholdMedium,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Theme:       ThemeCharm,
		},
	}
}

// IsValid returns whether the OutputFormat is a known format.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputJSON, OutputYAML, OutputTable, OutputText:
		return true, nil
	default:
		return false, []error{invalidValue("output.format", string(f), ErrInvalidOutputFormat,
			OutputJSON, OutputYAML, OutputTable, OutputText)}
	}
}

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the ConfirmThreshold is a known level.
func (t ConfirmThreshold) IsValid() (bool, []error) {
	switch t {
	case ThresholdNone, ThresholdLow, ThresholdMedium, ThresholdHigh:
		return true, nil
	default:
		return false, []error{invalidValue("confirm.threshold", string(t), ErrInvalidConfirmThreshold,
			ThresholdNone, ThresholdLow, ThresholdMedium, ThresholdHigh)}
	}
}

// String returns the string representation of the ConfirmThreshold.
func (t ConfirmThreshold) String() string { return string(t) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{invalidValue("ui.color_scheme", string(cs), ErrInvalidColorScheme,
			ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)}
	}
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the Theme is a known prompt theme.
func (t Theme) IsValid() (bool, []error) {
	switch t {
	case ThemeDefault, ThemeCharm, ThemeDracula, ThemeBase16:
		return true, nil
	default:
		return false, []error{invalidValue("ui.theme", string(t), ErrInvalidTheme,
			ThemeDefault, ThemeCharm, ThemeDracula, ThemeBase16)}
	}
}

// String returns the string representation of the Theme.
func (t Theme) String() string { return string(t) }

// IsValid checks the fields that CUE cannot see once environment overrides
// have been applied.
func (c AWSConfig) IsValid() (bool, []error) {
	var errs []error
	if c.MaxAttempts < 1 || c.MaxAttempts > 10 {
		errs = append(errs, fmt.Errorf("aws.max_attempts: %d is outside [1, 10]", c.MaxAttempts))
	}
	if c.EndpointURL != "" && !strings.HasPrefix(c.EndpointURL, "http://") && !strings.HasPrefix(c.EndpointURL, "https://") {
		errs = append(errs, fmt.Errorf("aws.endpoint_url: %q must start with http:// or https://", c.EndpointURL))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidAWSConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.AWS.IsValid,
		c.Output.Format.IsValid,
		c.Confirm.Threshold.IsValid,
		c.UI.ColorScheme.IsValid,
		c.UI.Theme.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %q (valid: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// Unwrap returns the field's sentinel error.
func (e *InvalidValueError) Unwrap() error { return e.err }

// Error implements the error interface for InvalidAWSConfigError.
func (e *InvalidAWSConfigError) Error() string {
	return fmt.Sprintf("invalid aws config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidAWSConfig followed by the field errors.
func (e *InvalidAWSConfigError) Unwrap() []error {
	return append([]error{ErrInvalidAWSConfig}, e.FieldErrors...)
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so the
// sentinel of each failing field is reachable with errors.Is.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

func invalidValue[T ~string](field, value string, sentinel error, allowed ...T) error {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	return &InvalidValueError{Field: field, Value: value, Allowed: names, err: sentinel}
}
