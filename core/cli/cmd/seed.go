package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hyperterse/seeder/core/infrastructure/di"
)

// seedCmd groups the two data stages
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed users and products, or the reviews and orders that depend on them",
}

var seedCoreCmd = &cobra.Command{
	Use:   "core",
	Short: "Replace users and products and create their unique and text indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
			_, err := c.Seeder.SeedCore(ctx)
			return err
		})
	},
}

var seedDependentsCmd = &cobra.Command{
	Use:   "dependents",
	Short: "Replace reviews and orders for the users and products already stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
			_, err := c.Seeder.SeedDependents(ctx)
			return err
		})
	},
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Ensure the performance indexes on every collection and list them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
			_, err := c.Seeder.VerifyIndexes(ctx)
			return err
		})
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the core, dependents and index stages in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
			_, err := c.Seeder.RunAll(ctx)
			return err
		})
	},
}

func init() {
	seedCmd.AddCommand(seedCoreCmd, seedDependentsCmd)
	rootCmd.AddCommand(seedCmd, indexesCmd, allCmd)
}
