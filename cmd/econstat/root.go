package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vic2tools/econstat/config"
	"github.com/vic2tools/econstat/logging"
)

// rootFlags holds flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "econstat",
		Short: "Economic statistics from Victoria 2 save files",
		Long: `econstat watches a Victoria 2 campaign, collects its autosaves and
processes them into per-country and global economic time series.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "econstat.yaml", "configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format: text or json")

	cmd.AddCommand(
		newProcessCommand(flags),
		newWatchCommand(flags),
		newSectionsCommand(flags),
		newVersionCommand(),
	)

	return cmd
}

// loadConfig reads the configuration file and resolves the effective log
// level, with the command line taking precedence over the file.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	return cfg, nil
}

// newLogger builds the logger used by short-lived commands.
func (f *rootFlags) newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(logging.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: f.logFormat,
	}, os.Stderr)
}
