package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jortega/tlmkt-assign/pkg/core/services"
)

// ViewAssignmentsCmd creates the viewAssignments command
func ViewAssignmentsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewAssignments [date]",
		Short: "View the assignments stored for a date (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) > 0 {
				parsed, err := time.Parse("2006-01-02", args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", args[0], err)
				}
				date = parsed
			}

			view, err := services.ViewAssignments(app.Ctx, app.Warehouse, app.Logger, date)
			if err != nil {
				return err
			}

			if len(view.Records) == 0 {
				fmt.Printf("\nNo assignments stored for %s\n\n", view.Date.Format("2006-01-02"))
				return nil
			}

			fmt.Printf("\n%d assignments for %s\n\n", len(view.Records), view.Date.Format("2006-01-02"))

			fmt.Printf("Per operator:\n")
			for _, total := range view.OperatorTotals {
				fmt.Printf("  %-25s %4d\n", total.Operator, total.Count)
			}
			fmt.Println()

			fmt.Printf("Per campaign:\n")
			for _, total := range view.CampaignTotals {
				fmt.Printf("  %-20s %-25s %4d\n", total.Campaign, total.Operator, total.Count)
			}
			fmt.Println()

			return nil
		},
	}
}
