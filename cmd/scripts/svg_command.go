package main

import (
	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/scripts/pkg/svgrender"
)

func newSvgCmd(opts *options) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "svg-to-png [input.svg] [output.png]",
		Short: "Rasterize an SVG to a PNG",
		Long:  "Rasterize an SVG file to PNG. Without explicit dimensions the document's view box size is used.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svgrender.RenderFile(args[0], args[1], width, height); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "output width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "output height in pixels")

	return cmd
}
