// SPDX-License-Identifier: MPL-2.0

// Command rsctl runs Amazon Redshift control-plane operations.
package main

import cmd "github.com/invowk/rsctl/cmd/rsctl"

func main() {
	cmd.Execute()
}
