package main

import (
	"fmt"
	"os"

	"github.com/temirov/winopen/cmd/cli"
)

const (
	exitErrorTemplateConstant = "winopen: %v\n"
	exitCodeFailureConstant   = 1
)

func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}
	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(exitCodeFailureConstant)
}
