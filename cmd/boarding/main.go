// Command boarding orders bus bookings so passengers seated furthest from
// the front door board first.
//
// Usage:
//
//	boarding [--json] generate FILE [-o OUT]
//	boarding [--json] interactive
//	boarding sample [FILE]
package main

import (
	"fmt"
	"os"

	"github.com/Domenick1991/busboarding/internal/cli"
)

// version is set with -ldflags at build time.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
