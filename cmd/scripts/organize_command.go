package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/scripts/pkg/organize"
)

func newOrganizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "organize [folder]",
		Short: "Sort a folder's files into category subfolders",
		Long:  "Sort the files directly inside a folder into category subfolders (Images, Documents, Videos, ...) chosen by file extension. Subfolders, hidden files and OS junk are left alone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cfg, cmd)
			if err != nil {
				return err
			}

			stats, moves, err := organize.Run(args[0], organize.Options{
				Categories: cfg.Organize.Categories,
				SkipNames:  cfg.Organize.SkipNames,
				DryRun:     opts.dryRun,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			if opts.dryRun {
				cmd.Println("[dry run] planned moves:")
			}
			for _, m := range moves {
				cmd.Printf("  %s -> %s/\n", m.Source, m.Category)
			}

			cmd.Println(renderSummary([][2]string{
				{"Files found", strconv.Itoa(stats.Found)},
				{"Moved", strconv.Itoa(stats.Moved)},
				{"Uncategorized", strconv.Itoa(stats.Uncategorized)},
				{"Skipped", strconv.Itoa(stats.Skipped)},
				{"Failed", strconv.Itoa(stats.Failed)},
			}))

			if stats.Failed > 0 {
				return fmt.Errorf("%d files failed", stats.Failed)
			}
			return nil
		},
	}
}
