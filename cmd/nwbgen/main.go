// nwbgen builds an NWB container graph from a TOML session manifest,
// writes it through the in-memory backend, and prints the resulting
// hierarchy. It exists to exercise and inspect the render/write
// pipeline without a format backend attached.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
