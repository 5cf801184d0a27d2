package main

import (
	"time"

	"github.com/spf13/cobra"

	econstat "github.com/vic2tools/econstat"
	"github.com/vic2tools/econstat/watcher"
)

func newWatchCommand(flags *rootFlags) *cobra.Command {
	var (
		saveDir      string
		outputDir    string
		autosaveName string
		debounce     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the game's autosave and collect dated copies",
		Long: `Watch observes the game's save directory and copies each fresh
autosave into the collection directory under its in-game date, so a whole
campaign accumulates as one file per autosave interval. Runs until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			wcfg := watcher.Config{
				SaveDir:      cfg.WatchSaveDir(),
				OutputDir:    cfg.SavesDir,
				AutosaveName: cfg.Watch.AutosaveName,
				Debounce:     cfg.Debounce(),
			}

			if cmd.Flags().Changed("save-dir") {
				wcfg.SaveDir = saveDir
			}

			if cmd.Flags().Changed("output-dir") {
				wcfg.OutputDir = outputDir
			}

			if cmd.Flags().Changed("autosave-name") {
				wcfg.AutosaveName = autosaveName
			}

			if cmd.Flags().Changed("debounce") {
				wcfg.Debounce = debounce
			}

			app := econstat.NewApp(
				econstat.WithLogLevel(cfg.LogLevel),
				econstat.WithLogFormat(flags.logFormat),
				econstat.WithModules(watcher.NewModule(wcfg)),
			)

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVar(&saveDir, "save-dir", "", "game save directory to watch")
	cmd.Flags().StringVar(&outputDir, "output-dir", "saves", "directory receiving dated copies")
	cmd.Flags().StringVar(&autosaveName, "autosave-name", watcher.DefaultAutosaveName, "autosave filename to react to")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "window suppressing duplicate events")

	return cmd
}
