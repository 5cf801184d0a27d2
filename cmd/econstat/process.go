package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vic2tools/econstat/pipeline"
)

func newProcessCommand(flags *rootFlags) *cobra.Command {
	var (
		savesDir       string
		outputDir      string
		limit          int
		resume         bool
		batchSize      int
		workers        int
		majorCountries int
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process collected save files into time series",
		Long: `Process parses every collected save file chronologically and writes
JSON time series and CSV summaries to the output directory. Interrupted
runs can continue with --resume.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				SavesDir:       cfg.SavesDir,
				OutputDir:      cfg.OutputDir,
				Limit:          limit,
				Resume:         resume,
				BatchSize:      cfg.BatchSize,
				Workers:        cfg.Workers,
				MajorCountries: cfg.MajorCountries,
			}

			if cmd.Flags().Changed("saves-dir") {
				opts.SavesDir = savesDir
			}

			if cmd.Flags().Changed("output-dir") {
				opts.OutputDir = outputDir
			}

			if cmd.Flags().Changed("batch-size") {
				opts.BatchSize = batchSize
			}

			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			if cmd.Flags().Changed("major-countries") {
				opts.MajorCountries = majorCountries
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return pipeline.New(opts, flags.newLogger(cfg)).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&savesDir, "saves-dir", "saves", "directory holding collected save files")
	cmd.Flags().StringVar(&outputDir, "output-dir", "output", "directory receiving generated output")
	cmd.Flags().IntVar(&limit, "limit", 0, "process only the first N saves (0 = all)")
	cmd.Flags().BoolVar(&resume, "resume", false, "continue an interrupted run")
	cmd.Flags().IntVar(&batchSize, "batch-size", 50, "saves between progress writes")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = one per CPU)")
	cmd.Flags().IntVar(&majorCountries, "major-countries", 20, "countries covered by the CSV summary")

	return cmd
}
