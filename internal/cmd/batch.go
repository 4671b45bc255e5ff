package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Create several listings unattended",
	Long: `Batch runs multiple listings through a bounded worker pool with
every approval gate set to auto-approve. Failed runs are reported at the end
without stopping the rest of the batch.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntP("count", "n", 1, "number of listings to create")
	batchCmd.Flags().IntP("workers", "w", 0, "worker pool size (default from config)")
	batchCmd.Flags().String("concept", "", "direction applied to every concept")
	batchCmd.Flags().Bool("keep-sources", false, "keep staged source files after organizing")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	count, _ := cmd.Flags().GetInt("count")
	workers, _ := cmd.Flags().GetInt("workers")
	brief, _ := cmd.Flags().GetString("concept")
	keepSources, _ := cmd.Flags().GetBool("keep-sources")

	if workers < 1 {
		workers = viper.GetInt("batch.workers")
	}

	ctx := cmd.Context()
	// Interactive gates cannot be shared between concurrent workers, so
	// batch always auto-approves.
	runner, cleanup, err := buildRunner(ctx, runnerOptions{
		autoApprove: true,
		keepSources: keepSources,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	result := runner.RunBatch(ctx, count, workers, brief)
	for _, res := range result.Results {
		fmt.Printf("Listing complete: %s\n", res.Dir)
	}
	if result.Err != nil {
		return fmt.Errorf("%d of %d runs failed: %w",
			count-len(result.Results), count, result.Err)
	}
	return nil
}
