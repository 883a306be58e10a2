// Command precompute builds the offline inputs of the solver server: the
// per-guess feedback tables and the opening-move starter cache.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
