// SPDX-License-Identifier: MPL-2.0

// Package vshell runs POSIX shell scripts with mvdan.cc/sh, routing the
// "rsctl" command to an in-process handler so scripts share one client and
// configuration. Every other command falls through to the host.
package vshell
