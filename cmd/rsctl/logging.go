// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns the slog logger used by a run. Records are formatted by
// charmbracelet/log on w (stderr); debug records appear only when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "rsctl",
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}
