// bonanza is a terminal adventure game: solve each level's puzzle by typing
// the right shell-style command.
//
// Usage:
//
//	bonanza list                 - List installed campaigns
//	bonanza play [campaign]      - Play a campaign (default: browser-bash)
//	bonanza menu                 - Pick a campaign interactively
//	bonanza levels <campaign>    - Show the missions of a campaign
//	bonanza validate <file>...   - Check campaign files
//	bonanza scores <campaign>    - Show the best runs of a campaign
//	bonanza serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.bonanza/config.yaml)
//	--db <path>         - Runs database (default: ~/.bonanza/runs.db)
//	--campaigns <dir>   - Extra campaign directory (default: ~/.bonanza/campaigns)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/adventure/levels"
	"github.com/vovakirdan/bash-bonanza/internal/config"
	"github.com/vovakirdan/bash-bonanza/internal/storage"
	"github.com/vovakirdan/bash-bonanza/internal/telemetry"
)

var (
	// Global flags
	flagConfig      string
	flagDBPath      string
	flagCampaignDir string
	flagLogLevel    string
)

// app holds what every subcommand shares. It is filled in by setup.
var app struct {
	cfg      config.Config
	logger   *log.Logger
	shutdown func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bonanza",
	Short: "Bash Bonanza - a terminal adventure game",
	Long: `Bash Bonanza is a terminal adventure game. Each level gives you a
mission; solve it by typing the right command to earn points and move on.

Available commands:
  list      - Show installed campaigns
  play      - Play a campaign
  menu      - Interactive campaign picker
  levels    - Show the missions of a campaign
  validate  - Check campaign files
  scores    - View the best runs
  serve     - Start SSH server for remote play

Examples:
  bonanza play
  bonanza play browser-bash --plain
  bonanza menu
  bonanza serve --ssh :2222
  bonanza scores browser-bash`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagCampaignDir, "campaigns", "", "Directory with extra campaign files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration, builds the logger, starts tracing and
// registers user campaigns. Flags override the environment, which
// overrides the config file.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	app.cfg = cfg

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bonanza",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger.SetLevel(level)
	app.logger = logger

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry.ServiceName)
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			app.shutdown = shutdown
		}
	}

	dir, err := config.ExpandHome(cfg.CampaignDir)
	if err != nil {
		return err
	}
	added, err := levels.NewLoader(dir).RegisterAll()
	if err != nil {
		logger.Warn("some campaigns were not loaded", "dir", dir, "error", err)
	}
	if len(added) > 0 {
		logger.Debug("loaded campaigns", "dir", dir, "ids", added)
	}

	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("campaigns") {
		cfg.CampaignDir = flagCampaignDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
}

// teardown flushes pending spans.
func teardown(_ *cobra.Command, _ []string) error {
	if app.shutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.shutdown(ctx)
}

// engineOptions returns the options shared by every engine the CLI creates.
func engineOptions() []adventure.Option {
	return []adventure.Option{
		adventure.WithFollowupDelay(app.cfg.FollowupDelay),
		adventure.WithTracer(telemetry.Tracer("adventure")),
		adventure.WithLogger(app.logger.WithPrefix("engine")),
	}
}

// openStore opens the runs database. Play continues without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(app.cfg.DBPath)
	if err != nil {
		app.logger.Warn("could not open runs database, runs will not be saved", "error", err)
		return nil
	}
	return store
}

// playerName returns the configured player, falling back to the login name.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if app.cfg.Player != "" {
		return app.cfg.Player
	}
	return os.Getenv("USER")
}
