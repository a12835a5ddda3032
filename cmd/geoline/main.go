// geoline draws GeoJSON polylines as constant-width ribbons.
package main

import (
	"fmt"
	"os"

	// Registers the "gl" line feature.
	_ "github.com/Faultbox/geoline/internal/feature/line"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
