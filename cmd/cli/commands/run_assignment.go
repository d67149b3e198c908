package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jortega/tlmkt-assign/pkg/core/services"
)

// RunAssignmentCmd creates the runAssignment command
func RunAssignmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runAssignment",
		Short: "Run the daily lead assignment batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")
			dateArg, _ := cmd.Flags().GetString("date")

			date := time.Now()
			if dateArg != "" {
				parsed, err := time.Parse("2006-01-02", dateArg)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateArg, err)
				}
				date = parsed
			}

			result, err := services.RunDailyAssignment(app.Ctx, app.Warehouse, app.SheetsClient, app.Cfg, app.Logger, services.RunOptions{
				Date:   date,
				DryRun: dryRun,
				Force:  force,
			})
			if err != nil {
				return err
			}

			if result.SkipReason != "" {
				fmt.Printf("\nRun skipped: %s\n", result.SkipReason)
				return nil
			}

			if dryRun {
				fmt.Printf("\n✓ Dry run completed for %s (nothing persisted)\n\n", result.Date.Format("2006-01-02"))
			} else {
				fmt.Printf("\n✓ Assignment completed for %s\n\n", result.Date.Format("2006-01-02"))
			}

			fmt.Printf("Assigned leads: %d\n", len(result.Records))
			fmt.Printf("Leftover leads: %d\n", result.LeftoverCount)
			if result.Diagnostics.SkippedOperators > 0 {
				fmt.Printf("Operators without quota: %d\n", result.Diagnostics.SkippedOperators)
			}
			for _, campaign := range result.Diagnostics.MissingPools {
				fmt.Printf("No leads available for campaign: %s\n", campaign)
			}
			fmt.Println()

			fmt.Printf("Per operator:\n")
			for _, total := range result.OperatorTotals {
				fmt.Printf("  %-25s %4d\n", total.Operator, total.Count)
			}
			fmt.Println()

			fmt.Printf("Per campaign:\n")
			for _, total := range result.CampaignTotals {
				fmt.Printf("  %-20s %-25s %4d\n", total.Campaign, total.Operator, total.Count)
			}
			fmt.Println()

			if result.ExportPath != "" {
				fmt.Printf("Exported to: %s\n\n", result.ExportPath)
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run the allocation without persisting or exporting")
	cmd.Flags().Bool("force", false, "Run even on a day outside the configured schedule")
	cmd.Flags().String("date", "", "Assignment date (YYYY-MM-DD, defaults to today)")

	return cmd
}
