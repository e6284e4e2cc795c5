// SPDX-License-Identifier: MIT
package main

import "github.com/skaphos/testapp/cmd/testapp"

// execute is overridable in tests.
var execute = testapp.Execute

func main() {
	execute()
}
