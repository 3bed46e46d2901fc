package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/pwcdb/pwcdb/internal/iofs"
	"github.com/pwcdb/pwcdb/internal/iologger"
	"github.com/pwcdb/pwcdb/pkg/config"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s",
		pwcdb.Version, pwcdb.Build),
	Use:   "pwcdb",
	Short: "pwcdb builds SQLite databases from Papers with Code snapshots",
	Long: `pwcdb manages the lifecycle of the Papers with Code SQLite databases:
schema creation, snapshot ingestion, relationship rebuilding, spam
removal, indexing and statistics.

Databases are built from the published JSON snapshot files placed in
the ingest data directory. Two targets exist: 'main' holds the paper,
method and dataset catalog, 'eval' the benchmark leaderboards.

Configuration precedence (highest to lowest):
  1. CLI flags (--targets, --apply, etc.)
  2. Environment variables (PWCDB_*)
  3. Config file (~/.config/pwcdb/config.yaml)
  4. Built-in defaults`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults. Will be reconfigured
	// later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded.
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings.
	err = iologger.Init(config.LogDir(homeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))
	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Bind env variables manually so the allowed set stays explicit.
	// These match the fields included in config.ToOptions(), the
	// persistent configuration that can live in config.yaml.
	v.SetEnvPrefix("PWCDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("database.dir", "DATABASE_DIR")
	v.BindEnv("database.main_file", "DATABASE_MAIN_FILE")
	v.BindEnv("database.eval_file", "DATABASE_EVAL_FILE")
	v.BindEnv("database.batch_size", "DATABASE_BATCH_SIZE")
	v.BindEnv("database.stage_timeout_min", "DATABASE_STAGE_TIMEOUT_MIN")

	v.BindEnv("ingest.data_dir", "INGEST_DATA_DIR")

	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}

// dbPath returns the database file location of a target.
func dbPath(target string) (string, error) {
	switch target {
	case "main":
		return filepath.Join(cfg.Database.Dir, cfg.Database.MainFile), nil
	case "eval":
		return filepath.Join(cfg.Database.Dir, cfg.Database.EvalFile), nil
	}
	return "", fmt.Errorf("unknown target %q, expected 'main' or 'eval'",
		target)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for pwcdb")

	rootCmd.AddCommand(getBuildCmd())
	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getRelinkCmd())
	rootCmd.AddCommand(getCleanCmd())
	rootCmd.AddCommand(getEnhanceCmd())
	rootCmd.AddCommand(getStatsCmd())
}
