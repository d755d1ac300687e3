// Package commands implements the pngmsg CLI commands.
package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/docker/pngmsg/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	logJSON bool

	log = logging.Discard()
)

// NewRootCmd returns the pngmsg command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pngmsg",
		Short: "Hide messages inside PNG chunks",
		Long: `pngmsg stores text in an extra chunk of a PNG file, reads it back and
removes it again. The image itself is left untouched.

Example:
  pngmsg encode cat.png ruSt "meet at noon"
  pngmsg decode cat.png ruSt
  pngmsg remove cat.png ruSt`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help and version commands
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			log = logging.New(logging.Options{
				Verbose: verbose,
				JSON:    logJSON,
				Output:  cmd.ErrOrStderr(),
			}).WithField("component", "pngmsg")

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newRemoveCmd(),
		newPrintCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	// Setup context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return NewRootCmd().ExecuteContext(ctx)
}
