package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orizehavi/listingforge/internal/errors"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create one listing end to end",
	Long: `Create runs the full pipeline for a single listing: concept, image
prompt, artwork, SEO copy, print sizes, mockups, and a final organized
listing directory. You approve or reject the concept and the artwork as they
are produced.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("concept", "", "direction for the concept (style, theme, audience)")
	createCmd.Flags().Bool("auto-approve", false, "approve every candidate without prompting")
	createCmd.Flags().Bool("plain", false, "use plain y/n prompts instead of the interactive UI")
	createCmd.Flags().Bool("keep-sources", false, "keep staged source files after organizing")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	brief, _ := cmd.Flags().GetString("concept")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	plain, _ := cmd.Flags().GetBool("plain")
	keepSources, _ := cmd.Flags().GetBool("keep-sources")

	ctx := cmd.Context()
	runner, cleanup, err := buildRunner(ctx, runnerOptions{
		autoApprove: autoApprove,
		plain:       plain,
		keepSources: keepSources,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := runner.Run(ctx, brief)
	if err != nil {
		if stage := errors.Stage(err); stage != "" {
			return fmt.Errorf("run aborted at %s stage: %w", stage, err)
		}
		return err
	}

	fmt.Printf("Listing complete: %s\n", result.Dir)
	fmt.Printf("  title:   %s\n", result.Record.Metadata.Title)
	fmt.Printf("  prints:  %d\n", len(result.Record.Assets.Prints))
	fmt.Printf("  mockups: %d\n", len(result.Record.Assets.Mockups))
	return nil
}
