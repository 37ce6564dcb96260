// Package main is the entry point for the sqltext CLI binary.
package main

import (
	"os"

	cli "sqltext/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
