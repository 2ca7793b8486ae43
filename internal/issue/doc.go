// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. The issue catalog maps well-known failure classes
// (missing parameters, service faults, connectivity, configuration) to
// Markdown guidance rendered with glamour below the error.
package issue
