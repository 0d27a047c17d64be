// Command swarmbot runs one agent of a proximity-aware robot swarm.
package main

import (
	"os"

	"github.com/Iron-Ham/swarmbot/internal/cmd"
)

func main() {
	// cobra has already printed "Error: ..." to stderr
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
