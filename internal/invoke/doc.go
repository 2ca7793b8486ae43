// SPDX-License-Identifier: MPL-2.0

// Package invoke implements the command invocation wrapper shared by every
// bound control-plane operation.
//
// An Operation pairs a static descriptor (request parameter table, response
// field table, impact level) with a single dispatch function against a client
// of type C. Invoke runs one invocation through a fixed sequence:
//
//	unvalidated -> validated -> (skipped | dispatched) -> (succeeded | failed)
//
// Parameters are bound through setter closures that write into the SDK request
// struct, so no reflection is involved and unbound optional fields stay nil.
// Exactly one call reaches the client per non-declined invocation; retries and
// pagination belong to the transport and to the caller respectively.
package invoke
