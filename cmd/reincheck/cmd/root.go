package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "reincheck",
	Short: "Install, upgrade, and version-check AI coding harnesses",
	Long: `Reincheck manages a catalog of AI coding-assistant CLIs ("harnesses").

Pick an installation strategy (preset), let reincheck resolve one
concrete install method per harness, review the plan, and apply it.
Dependency scanning tells you up front which package managers are
missing, and 'check' reports which harnesses have updates available.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// debugEnabled is set by the persistent --debug flag.
var debugEnabled bool

// debugf prints diagnostic chatter to stderr when --debug is set.
func debugf(format string, args ...any) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "debug: "+format+"\n", args...)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reincheck %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "Print diagnostic output to stderr")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
