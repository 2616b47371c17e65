package main

import (
	"fmt"
	"os"

	"github.com/ashfield-dev/xmldiff/pkg/xmldiff"
)

// Version information - can be overridden at build time using ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	root := xmldiff.NewRootCommand()
	root.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)

	if err := root.Execute(); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(xmldiff.ExitCode(err))
	}
}
