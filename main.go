// Command icnsim is the entrypoint for the Cobra CLI, delegating to the root
// command in cmd/root.go.
package main

import (
	"github.com/icnsim/icnsim/cmd"
)

func main() {
	cmd.Execute()
}
