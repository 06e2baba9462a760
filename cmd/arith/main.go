// Command arith runs validated arithmetic operations, CUE batches and YAML
// conformance scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/arith/internal/cli"
	"github.com/roach88/arith/internal/config"
)

func main() {
	cnf, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}

	err = cli.NewRootCommand(cnf).Execute()
	os.Exit(cli.HandleError(err, os.Stderr))
}
