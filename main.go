package main

import (
	"fmt"
	"os"

	"github.com/steveswinsburg/git-tools/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the git-tools command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
