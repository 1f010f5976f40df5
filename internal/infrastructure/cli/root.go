package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var verbose bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "dailyread",
	Version: Version,
	Short:   "Generate and distribute sequencing project status reports",
	Long: `Dailyread is a scheduled batch job that reports sequencing project
status to principal investigators. Each invocation performs one
reconciliation pass: it reads project status files from a version-controlled
data repository, joins them against live orders from the order portal, and
renders one HTML report per PI, optionally uploading it back to the portal.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
