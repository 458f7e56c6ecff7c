package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/scripts/pkg/calendar"
)

func newIcsCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "csv-to-ics [events.csv]",
		Short: "Convert a CSV of events into an iCalendar file",
		Long:  "Convert a CSV with Event,Date,StartTime,EndTime columns into an .ics calendar. Rows that fail to parse are skipped and reported.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer in.Close()

			// Parse before touching the output path so a bad CSV never
			// leaves an empty .ics behind.
			events, rowErrs, err := calendar.ParseCSV(in)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], ".csv") + ".ics"
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer out.Close()

			if err := calendar.Build(events, calendar.Options{}).SerializeTo(out); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			for _, re := range rowErrs {
				cmd.PrintErrf("skipped %v\n", re)
			}
			cmd.Printf("wrote %d events to %s\n", len(events), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output .ics path (default: input with .ics extension)")

	return cmd
}
