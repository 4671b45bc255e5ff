package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orizehavi/listingforge/internal/listing"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "Show the print sizes and mockup templates per orientation",
	RunE:  runSizes,
}

func init() {
	rootCmd.AddCommand(sizesCmd)
}

func runSizes(_ *cobra.Command, _ []string) error {
	for _, ratio := range []listing.AspectRatio{listing.AspectPortrait, listing.AspectLandscape} {
		fmt.Printf("%s (%d DPI):\n", ratio, listing.PrintDPI)
		for _, size := range listing.PrintSizes(ratio) {
			fmt.Printf("  %-6s %d x %d px\n", size.Name, size.WidthPx, size.HeightPx)
		}
		fmt.Println("  templates:")
		for _, template := range listing.Templates(ratio) {
			fmt.Printf("    %s\n", template)
		}
		fmt.Println()
	}
	return nil
}
