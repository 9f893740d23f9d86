package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/barysiuk/reincheck/internal/notes"
)

var releaseNotesCmd = &cobra.Command{
	Use:   "release-notes <harness>",
	Short: "Show release notes for a harness",
	Long: `Fetch and render release information for a harness.

Harnesses published to npm are looked up in the npm registry; others
fall back to the latest GitHub release. Set GITHUB_TOKEN to raise the
GitHub API rate limit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		harness, ok := d.registry.Harness(args[0])
		if !ok {
			return fmt.Errorf("unknown harness %q. Hint: run 'reincheck list' to see available harnesses", args[0])
		}

		markdown, err := notes.NewFetcher().ForHarness(harness)
		if err != nil {
			return err
		}

		rendered, err := notes.Render(markdown)
		if err != nil {
			return err
		}

		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			rendered = ansi.Strip(rendered)
		}
		fmt.Fprint(os.Stdout, rendered)
		return nil
	},
}

func init() {
	releaseNotesCmd.Flags().Bool("plain", false, "Strip styling from the output")
	rootCmd.AddCommand(releaseNotesCmd)
}
