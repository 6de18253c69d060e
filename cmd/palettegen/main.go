// Palettegen - an interactive colour palette generator
//
// Palettegen extracts dominant colour palettes from photographs using
// k-means clustering and presents them through a local web UI.
package main

import (
	"os"

	"github.com/ssokvathika-ui/palettegen/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
