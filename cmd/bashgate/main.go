// Package main is the bashgate entry point. All real work lives in
// internal/cli; main only translates the result into an exit code.
package main

import (
	"os"

	"github.com/Cyclone1070/bashgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
