// SPDX-License-Identifier: MPL-2.0

// Package awsclient builds the shared Redshift client from the standard AWS
// configuration chain, overlaid with rsctl's region, profile, endpoint and
// retry settings. SDK log output is routed onto log/slog.
package awsclient
