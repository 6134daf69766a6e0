// Command blockbench enumerates and runs storage-engine benchmarks.
package main

import (
	"fmt"
	"os"

	"github.com/hweber/blockbench/internal/cli"

	// Register the shipped benchmark suites.
	_ "github.com/hweber/blockbench/pkg/suites"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
