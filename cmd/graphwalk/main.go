// graphwalk draws a random grid graph and asks you to walk it from source
// to sink in as few steps as possible.
//
// Run: go run ./cmd/graphwalk/ [play|generate|stats]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
