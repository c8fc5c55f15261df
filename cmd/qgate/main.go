// Package main is the entry point for the qgate CLI.
package main

import (
	"os"

	"github.com/thoreinstein/qgate/cmd/qgate/commands"
	"github.com/thoreinstein/qgate/internal/errors"
)

func main() {
	err := commands.Execute()
	commands.PrintError(os.Stderr, err)
	os.Exit(errors.ExitCode(err))
}
