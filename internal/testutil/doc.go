// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that isolate tests from the user's
// environment: the AWS shared configuration, credentials and region, and the
// rsctl configuration directory.
package testutil
