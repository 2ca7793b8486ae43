// SPDX-License-Identifier: MPL-2.0

// Package redshiftops binds the Amazon Redshift control-plane operations
// (clusters, usage limits, datashares and IAM Identity Center applications)
// to the generic invocation wrapper in internal/invoke.
//
// Each operation is a table: request parameters with their constraints,
// response fields usable as selectors, and a dispatch through API. The
// tables are the only per-operation code; everything else is shared.
package redshiftops
