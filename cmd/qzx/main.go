// Command qzx draws Pauli gadget circuits as ZX diagrams.
package main

import (
	"fmt"
	"io"
	"os"

	"qtermzx/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints err followed by any hints attached to it.
func report(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
