// SPDX-License-Identifier: MPL-2.0

// Package render prints invocation results as JSON, YAML, a table or plain
// text, optionally filtered through a JMESPath expression.
package render
