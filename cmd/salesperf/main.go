// Package main is the entry point for salesperf.
package main

import (
	"fmt"
	"os"

	"github.com/MBMer22/Sales-Performance-Analysis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
