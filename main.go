// ./main.go
package main

import (
	"github.com/xkilldash9x/relic-cli/cmd"
)

// main is the entry point for the relic CLI.
func main() {
	cmd.Execute()
}
