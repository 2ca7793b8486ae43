// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/invowk/rsctl/internal/invoke"
)

// ErrCancelled is returned when the user aborts a prompt (Ctrl+C or Esc).
var ErrCancelled = errors.New("user aborted")

type (
	// ConfirmOptions configures the Confirm component.
	ConfirmOptions struct {
		// Title is the question/prompt to display.
		Title string
		// Description provides additional context below the title.
		Description string
		// Config holds common TUI configuration.
		Config Config
	}

	// Confirmer asks for confirmation of mutating operations with a huh
	// yes/no prompt. The answer defaults to no.
	Confirmer struct {
		Config Config
	}
)

// Confirm prompts the user to confirm an action (yes/no).
// Returns true for affirmative, false for negative, or ErrCancelled.
func Confirm(ctx context.Context, opts ConfirmOptions) (bool, error) {
	var result bool
	field := huh.NewConfirm().
		Title(opts.Title).
		Description(opts.Description).
		Affirmative("Yes").
		Negative("No").
		Value(&result)

	cfg := opts.Config
	out := cfg.output()
	if cfg.Accessible && opts.Description != "" {
		// Accessible mode only prints the title line.
		if _, err := fmt.Fprintln(out, opts.Description); err != nil {
			return false, err
		}
	}

	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(getHuhTheme(cfg.Theme)).
		WithAccessible(cfg.Accessible).
		WithInput(cfg.input()).
		WithOutput(out).
		WithShowHelp(!cfg.Accessible).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ErrCancelled
	}
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return result, nil
}

// NewConfirmer returns a Confirmer using cfg.
func NewConfirmer(cfg Config) *Confirmer {
	return &Confirmer{Config: cfg}
}

// Confirm implements invoke.Confirmer. Aborting the prompt counts as
// declining.
func (c *Confirmer) Confirm(ctx context.Context, p invoke.Prompt) (bool, error) {
	ok, err := Confirm(ctx, ConfirmOptions{
		Title:       p.Title(),
		Description: p.Description(),
		Config:      c.Config,
	})
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	return ok, err
}

var _ invoke.Confirmer = (*Confirmer)(nil)
