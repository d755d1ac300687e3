// pngmsg hides, reveals and removes messages stored in PNG chunks.
package main

import (
	"fmt"
	"os"

	"github.com/docker/pngmsg/cmd/pngmsg/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
