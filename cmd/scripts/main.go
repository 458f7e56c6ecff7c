// Command scripts bundles a handful of personal file utilities behind one
// binary: a photo sorter, a downloads organizer, a recursive find/replace,
// an ICNS exporter, a CSV-to-ICS converter and an SVG rasterizer.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pawel-mazurkiewicz/scripts/pkg/config"
	"github.com/pawel-mazurkiewicz/scripts/pkg/logging"
)

const version = "0.2.0"

type options struct {
	verbose    bool
	dryRun     bool
	configPath string
}

// loadConfig reads the optional config file named by --config.
func (o *options) loadConfig() (config.Config, error) {
	return config.Load(o.configPath)
}

// logger builds the run logger; --verbose forces debug level.
func (o *options) logger(cfg config.Config, cmd *cobra.Command) (*slog.Logger, error) {
	level := cfg.Logging.Level
	if o.verbose {
		level = "debug"
	}
	return logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Format: cfg.Logging.Format})
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "scripts",
		Short:         "A grab bag of file utilities",
		Long:          "Scripts is a collection of small file utilities: sort photos by capture date, organize a folder by file type, find and replace across a tree, and convert between a few formats.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would be done without doing it")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")

	rootCmd.AddCommand(newPhotosortCmd(opts))
	rootCmd.AddCommand(newOrganizeCmd(opts))
	rootCmd.AddCommand(newReplaceCmd(opts))
	rootCmd.AddCommand(newIcnsCmd(opts))
	rootCmd.AddCommand(newIcsCmd(opts))
	rootCmd.AddCommand(newSvgCmd(opts))

	return rootCmd
}
