// Command tweenctl validates, samples, simulates and previews scroll-driven
// keyframe timelines.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/scrolltween/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tweenctl: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
