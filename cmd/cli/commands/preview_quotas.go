package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jortega/tlmkt-assign/pkg/core/services"
)

// PreviewQuotasCmd creates the previewQuotas command
func PreviewQuotasCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "previewQuotas",
		Short: "Show how the per-operator base count splits across campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			preview, err := services.PreviewQuotas(app.SheetsClient, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nTotal quota: %d leads\n", preview.TotalQuota)
			if preview.SkippedOperators > 0 {
				fmt.Printf("Operators without quota (unsupported campaign count): %d\n", preview.SkippedOperators)
			}
			fmt.Println()

			for _, campaign := range preview.Campaigns {
				fmt.Printf("%s:\n", campaign.Campaign)
				for _, quota := range campaign.Quotas {
					fmt.Printf("  %-25s %4d\n", quota.Operator, quota.Quota)
				}
				fmt.Println()
			}

			return nil
		},
	}
}
