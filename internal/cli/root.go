// Package cli provides the command-line interface for palettegen.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ssokvathika-ui/palettegen/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "palettegen",
	Short: "Extract colour palettes from photographs",
	Long: `Palettegen extracts a small palette of dominant colours from a photograph
using k-means clustering.

Run the interactive web UI with "palettegen serve", or extract a palette
directly on the command line with "palettegen extract".`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// NewRootCmd returns the configured root command.
// This is called by main.main().
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(serveCmd)
}

// loggerFromFlags builds the application logger from the global flags.
func loggerFromFlags(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = hclog.Error
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "palettegen",
		Level:  level,
		Output: os.Stderr,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
