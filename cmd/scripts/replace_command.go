package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/scripts/pkg/replace"
)

func newReplaceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replace [path] [search] [replacement]",
		Short: "Replace a string in file contents, file names and directory names",
		Long:  "Recursively replace every occurrence of a string under a path: inside text file contents, in file names and in directory names. Binary files are left untouched.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cfg, cmd)
			if err != nil {
				return err
			}

			stats, finalRoot, err := replace.Run(args[0], args[1], args[2], replace.Options{
				DryRun: opts.dryRun,
				Logger: logger,
			})
			if err != nil {
				return err
			}

			if opts.dryRun {
				cmd.Println("[dry run] no changes were made")
			} else if finalRoot != args[0] {
				cmd.Printf("root renamed to %s\n", finalRoot)
			}

			cmd.Println(renderSummary([][2]string{
				{"Contents modified", strconv.Itoa(stats.ContentsModified)},
				{"Files renamed", strconv.Itoa(stats.FilesRenamed)},
				{"Directories renamed", strconv.Itoa(stats.DirsRenamed)},
				{"Failed", strconv.Itoa(stats.Failed)},
			}))

			if stats.Failed > 0 {
				return fmt.Errorf("%d paths failed", stats.Failed)
			}
			return nil
		},
	}
}
