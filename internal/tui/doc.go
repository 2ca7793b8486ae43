// SPDX-License-Identifier: MPL-2.0

// Package tui provides the terminal prompts used by rsctl, built on
// charmbracelet/huh. It falls back to huh's accessible line-based mode when
// the input is not a terminal or accessibility is requested.
package tui
