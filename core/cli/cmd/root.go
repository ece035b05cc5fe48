package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyperterse/seeder/core/config"
	"github.com/hyperterse/seeder/core/infrastructure/di"
	"github.com/hyperterse/seeder/core/logger"
)

// version stores the version string, set via SetVersion()
var version = "dev"

// SetVersion sets the version string (called from main.init())
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version string
func GetVersion() string {
	return version
}

var (
	configFile  string
	uri         string
	database    string
	users       int
	orders      int
	seed        uint64
	catalogFile string
	dryRun      bool
	metricsFile string
	logLevel    string
	verbose     bool
	logTags     string
	logFile     string
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:               "seeder",
	Short:             "Seeder\nPopulate a MongoDB database with a linked e-commerce dataset",
	SilenceUsage:      true,
	SilenceErrors:     true, // Errors are logged once by cli.Execute
	PersistentPreRunE: setupLogging,
}

// completionCmd generates shell completions and is hidden from help
var completionCmd = &cobra.Command{
	Use:          "completion [bash|zsh|fish|powershell]",
	Short:        "Generate shell completion script",
	Hidden:       true,
	ValidArgs:    []string{"bash", "zsh", "fish", "powershell"},
	Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletion(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer logger.CloseLogFile()
	return rootCmd.Execute()
}

// Root exposes the command tree to tests.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.AddCommand(completionCmd)
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print the installed version and exit")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Path to a YAML seed profile (default ./"+config.DefaultProfile+" when present)")
	flags.StringVar(&uri, "uri", "", "MongoDB connection string (overrides MONGODB_URI)")
	flags.StringVar(&database, "db", "", "Database name (overrides DB_NAME, default ecommerce)")
	flags.IntVar(&users, "users", 0, "Number of users to generate (overrides SEED_USERS_COUNT)")
	flags.IntVar(&orders, "orders", 0, "Number of orders to generate (overrides SEED_ORDERS_COUNT)")
	flags.Uint64Var(&seed, "seed", 0, "Random seed for a reproducible dataset (0 draws from entropy)")
	flags.StringVar(&catalogFile, "catalog", "", "YAML product catalog replacing the built-in one")
	flags.BoolVar(&dryRun, "dry-run", false, "Run against an in-memory store instead of MongoDB")
	flags.StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus textfile format (overrides SEEDER_METRICS_FILE)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: error, warn, info, debug or 1-4 (overrides SEEDER_LOG_LEVEL)")
	flags.BoolVar(&verbose, "verbose", false, "Enable verbose logging (sets log level to DEBUG)")
	flags.StringVar(&logTags, "log-tags", "", "Filter logs by tags (comma-separated, use -tag to exclude). Overrides SEEDER_LOG_TAGS env var")
	flags.StringVar(&logFile, "log-file", "", "Also write logs to this file")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		}
		return cmd.Help()
	}
}

// setupLogging applies the logging flags before any command runs. The
// configured level from env or profile is applied later by loadConfig.
func setupLogging(cmd *cobra.Command, args []string) error {
	switch {
	case verbose:
		logger.SetLogLevel(logger.LogLevelDebug)
	case logLevel != "":
		level, err := logger.ParseLogLevel(logLevel)
		if err != nil {
			return logger.New("cli").Errorf("invalid --log-level: %w", err)
		}
		logger.SetLogLevel(level)
	default:
		logger.SetLogLevel(logger.LogLevelInfo)
	}

	tagFilter := logTags
	if tagFilter == "" {
		tagFilter = os.Getenv("SEEDER_LOG_TAGS")
	}
	if tagFilter != "" {
		logger.SetTagFilter(tagFilter)
	}

	if logFile != "" {
		if err := logger.SetLogFile(logFile); err != nil {
			return logger.New("cli").Errorf("failed to initialize log file: %w", err)
		}
	}
	return nil
}

// loadConfig resolves configuration from the profile, env and flags.
// forceDry marks commands that never touch a real store.
func loadConfig(cmd *cobra.Command, forceDry bool) (*config.Config, error) {
	o := config.Overrides{
		Profile:     configFile,
		URI:         uri,
		Database:    database,
		Catalog:     catalogFile,
		MetricsFile: metricsFile,
		DryRun:      dryRun || forceDry,
	}
	flags := cmd.Flags()
	if flags.Changed("users") {
		o.Users = &users
	}
	if flags.Changed("orders") {
		o.Orders = &orders
	}
	if flags.Changed("seed") {
		o.Seed = &seed
	}

	cfg, err := config.Load(o)
	if err != nil {
		return nil, err
	}
	if !verbose && logLevel == "" && cfg.LogLevel != "" {
		if level, err := logger.ParseLogLevel(cfg.LogLevel); err == nil {
			logger.SetLogLevel(level)
		}
	}
	if cfg.Profile != "" {
		logger.New("cli").Debugf("Profile: %s", cfg.Profile)
	}
	return cfg, nil
}

// withContainer loads config, wires a container, runs fn and writes the
// metrics file. The container is closed on every path.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *di.Container) error) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := di.NewContainer(ctx, cfg, version)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			logger.New("cli").Warnf("Failed to release resources: %v", closeErr)
		}
	}()

	if err := fn(ctx, c); err != nil {
		return err
	}
	if err := c.WriteMetrics(); err != nil {
		return logger.New("cli").Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
