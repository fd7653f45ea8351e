// Command bonsai inspects, compares and converts green syntax trees.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/bonsai/internal/cli"
	"github.com/yaklabco/bonsai/internal/logging"
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date}).Execute()

	// diff has already printed the difference.
	if err != nil && !errors.Is(err, cli.ErrTreesDiffer) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCodeFromError(err)
}
