package main

import (
	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/scripts/pkg/icnsexport"
)

func newIcnsCmd(opts *options) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "icns-export [icon.icns]",
		Short: "Export an ICNS icon's renditions as PNG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exported, err := icnsexport.Export(args[0], outDir)
			if err != nil {
				return err
			}
			for _, e := range exported {
				cmd.Printf("exported %s (%dx%d)\n", e.Path, e.Width, e.Height)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory for the PNG files")

	return cmd
}
