// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/eraflo/compass/cmd/compass"

func main() {
	cmd.Execute()
}
