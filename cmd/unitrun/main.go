// Package main is the entry point for the unitrun CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/unitrun/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
