package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vic2tools/econstat/savefile"
)

func newSectionsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections FILE NAME...",
		Short: "Extract named top-level sections from a save file",
		Long: `Sections reads one save file and prints each requested top-level
section as JSON, without parsing the rest of the file. Useful for
inspecting saves by hand.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			log := flags.newLogger(cfg)

			text, err := savefile.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading save: %w", err)
			}

			out := cmd.OutOrStdout()

			for _, name := range args[1:] {
				value, ok := savefile.ExtractSection(text, name)
				if !ok {
					log.Warn("section not found", "name", name)

					continue
				}

				data, err := json.MarshalIndent(value, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding section %q: %w", name, err)
				}

				fmt.Fprintf(out, "%s=%s\n", name, data)
			}

			return nil
		},
	}

	return cmd
}
