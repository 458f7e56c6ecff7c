package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/scripts/pkg/photosort"
)

func newPhotosortCmd(opts *options) *cobra.Command {
	var copyFiles bool

	cmd := &cobra.Command{
		Use:   "photosort [source] [destination]",
		Short: "Sort photos into a year/month/day tree",
		Long:  "Sort photos from a source directory into destination/YYYY/MM/DD folders, dated from EXIF metadata when present and file modification time otherwise.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cfg, cmd)
			if err != nil {
				return err
			}

			stats, moves, err := photosort.Run(args[0], args[1], photosort.Options{
				Extensions: cfg.PhotoSort.Extensions,
				Copy:       copyFiles,
				DryRun:     opts.dryRun,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			if opts.dryRun {
				cmd.Println("[dry run] planned moves:")
				for _, m := range moves {
					cmd.Printf("  %s -> %s (%s)\n", m.Source, m.Destination, m.Date.Source)
				}
			}

			cmd.Println(renderSummary([][2]string{
				{"Files found", strconv.Itoa(stats.Found)},
				{"Routed", strconv.Itoa(stats.Routed)},
				{"Dated from EXIF", strconv.Itoa(stats.ExifDated)},
				{"Dated from mtime", strconv.Itoa(stats.ModTimeDated)},
				{"Unsupported", strconv.Itoa(stats.Unsupported)},
				{"Failed", strconv.Itoa(stats.Failed)},
			}))

			if stats.Failed > 0 {
				return fmt.Errorf("%d files failed", stats.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyFiles, "copy", false, "copy files instead of moving them")

	return cmd
}
