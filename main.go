package main

import (
	"os"

	"github.com/hyperterse/seeder/core/cli"
	"github.com/hyperterse/seeder/core/cli/cmd"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// Version can be set at build time using -ldflags
var Version = "dev"

func init() {
	cmd.SetVersion(Version)
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(apperrors.ExitCode(err))
	}
}
