// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles user-supplied CUE documents against an embedded
// schema definition and reports failures with JSON-path style locations
// (e.g. "config.cue: aws.max_attempts: invalid value 0").
package cueutil
