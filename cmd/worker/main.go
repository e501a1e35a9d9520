// worker runs the background side of project matching.
package main

import (
	"os"

	"github.com/collabhub/project-match/cmd/worker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
