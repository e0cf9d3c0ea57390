package main

import (
	"os"

	"github.com/pluqqy/pluqqy-account/cmd/commands"
	"github.com/pluqqy/pluqqy-account/internal/cli"
)

// Version is set during build with -ldflags
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		cli.PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
