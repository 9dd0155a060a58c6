// Command mlinql is an interactive shell for a small schema-definition
// language. Databases are JSON documents in the working directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless the shell has already shown it.
func reportError(w io.Writer, err error) {
	var shown shownError
	if errors.As(err, &shown) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}
