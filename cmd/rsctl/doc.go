// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the rsctl command tree: one command per bound Redshift
// operation, grouped by resource, plus configuration, listing and scripting
// commands.
package cmd
