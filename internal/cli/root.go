// Package cli provides the Cobra command structure for mdhtml.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdhtml/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdhtml command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string
	flags := &renderFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdhtml [file...]",
		Short: "Translate Markdown to an HTML fragment",
		Long: `mdhtml translates a Markdown document to a semantically equivalent
HTML fragment on standard output.

The translator is a pure function of its input: the same bytes in
always produce the same bytes out. Malformed constructs never fail the
run; they degrade to literal text. With no arguments (or with "-"),
mdhtml reads standard input.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize help output: auto, always, never")

	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write output to file (atomically) instead of stdout")

	// Add subcommands.
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
