package cli

import (
	"github.com/hyperterse/seeder/core/cli/cmd"
	"github.com/hyperterse/seeder/core/logger"
)

// Execute runs the CLI
func Execute() error {
	if err := cmd.Execute(); err != nil {
		logger.New(logger.ErrorTagOr(err, "cli")).Error(err.Error())
		return err
	}
	return nil
}
