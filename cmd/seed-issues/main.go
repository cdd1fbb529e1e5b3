package main

import (
	"os"

	"stackit.dev/seedissues/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.HandleError(os.Stderr, err))
	}
}
