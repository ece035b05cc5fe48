package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/hyperterse/seeder/core/infrastructure/di"
	"github.com/hyperterse/seeder/core/logger"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

var setupHints = []any{
	"Create a .env file with your MongoDB connection string:",
	"  MONGODB_URI=mongodb+srv://<user>:<password>@<cluster>/",
	"  DB_NAME=ecommerce",
	"or pass --uri on the command line.",
}

var troubleshootingHints = []any{
	"Troubleshooting:",
	"  1. Check MONGODB_URI in your .env file",
	"  2. Ensure your IP is allowed by the cluster's network access list",
	"  3. Verify username and password are correct",
	"  4. Check your internet connection",
}

// pingCmd tests connectivity and lists the database's collections
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the MongoDB connection and list collections",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	log := logger.New("ping")

	cfg, err := loadConfig(cmd, false)
	if err != nil {
		if apperrors.IsConfiguration(err) {
			log.Multiline(setupHints)
		}
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gw, err := di.OpenStore(ctx, cfg)
	if err != nil {
		log.Multiline(troubleshootingHints)
		return log.Errorf("connection failed: %w", err)
	}
	defer closeStore(log, gw)
	log.Successf("Connected to %s", gw.Name())

	names, err := gw.ListCollections(ctx)
	if err != nil {
		log.Multiline(troubleshootingHints)
		return log.Errorf("listing collections failed: %w", err)
	}

	log.Infof("Database: %s", cfg.Database)
	log.Infof("Collections found: %d", len(names))
	if len(names) == 0 {
		log.Infof("No collections yet. They will be created when data is inserted.")
	}
	for _, name := range names {
		log.Infof("  - %s", name)
	}
	log.Successf("Connection test successful")
	return nil
}

// closeStore releases the connection, warning instead of failing the command.
func closeStore(log *logger.Logger, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close connection: %v", err)
	}
}
