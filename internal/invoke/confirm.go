// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"context"
	"fmt"
	"strings"
)

const (
	// ImpactNone marks read-only operations; they never prompt.
	ImpactNone Impact = iota
	// ImpactLow marks mutating operations that are easily reversed.
	ImpactLow
	// ImpactMedium marks mutating operations (modify, authorize, reject, ...).
	ImpactMedium
	// ImpactHigh marks destructive operations (delete, pause, ...).
	ImpactHigh
)

type (
	// Impact classifies how disruptive an operation is. A host prompts for
	// operations whose impact is at or above its threshold.
	Impact int

	// Prompt describes the pending call shown to the user by a Confirmer.
	Prompt struct {
		Operation string
		Command   string
		Target    string
		Impact    Impact
	}

	// Confirmer is the host-provided confirmation facility.
	Confirmer interface {
		Confirm(ctx context.Context, p Prompt) (bool, error)
	}

	// ConfirmFunc adapts a function to the Confirmer interface.
	ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)
)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// String returns the lower-case impact name.
func (i Impact) String() string {
	switch i {
	case ImpactNone:
		return "none"
	case ImpactLow:
		return "low"
	case ImpactMedium:
		return "medium"
	case ImpactHigh:
		return "high"
	default:
		return fmt.Sprintf("Impact(%d)", int(i))
	}
}

// ParseImpact parses an impact name as used in configuration.
func ParseImpact(s string) (Impact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ImpactNone, nil
	case "low":
		return ImpactLow, nil
	case "medium", "":
		return ImpactMedium, nil
	case "high":
		return ImpactHigh, nil
	default:
		return ImpactNone, fmt.Errorf("unknown impact level %q (expected none, low, medium or high)", s)
	}
}

// Title is the question shown to the user.
func (p Prompt) Title() string {
	return fmt.Sprintf("Are you sure you want to perform %s?", p.Operation)
}

// Description names the command and its target.
func (p Prompt) Description() string {
	if p.Target == "" {
		return fmt.Sprintf("Performing the operation %q (%s).", p.Command, p.Operation)
	}
	return fmt.Sprintf("Performing the operation %q (%s) on target %q.", p.Command, p.Operation, p.Target)
}

// needsConfirmation reports whether an operation of the given impact must be
// confirmed under threshold. A threshold of ImpactNone disables prompting.
func needsConfirmation(impact, threshold Impact) bool {
	if impact == ImpactNone || threshold == ImpactNone {
		return false
	}
	return impact >= threshold
}
