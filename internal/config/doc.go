// SPDX-License-Identifier: MPL-2.0

// Package config handles rsctl configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/rsctl/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/rsctl/config.cue on macOS, %APPDATA%\rsctl\config.cue
// on Windows), or from an explicit --config path. It covers the AWS connection
// (region, profile, endpoint override, retry attempts), output format, the
// confirmation threshold and UI settings. Every key can be overridden with an
// RSCTL_ environment variable (RSCTL_AWS_REGION, RSCTL_OUTPUT_FORMAT, ...).
//
// Files are validated against the embedded CUE schema (config_schema.cue) before
// they are merged into Viper.
package config
