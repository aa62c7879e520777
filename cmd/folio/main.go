// @MX:ANCHOR: [AUTO] main is the folio CLI entry point; it exits 1 on any command error.
// @MX:REASON: sole entry point of the binary; delegates to cli.Execute
package main

import (
	"os"

	"github.com/itson-folio/folio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
