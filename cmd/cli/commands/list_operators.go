package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jortega/tlmkt-assign/pkg/core/model"
)

// ListOperatorsCmd creates the listOperators command
func ListOperatorsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listOperators",
		Short: "List the active telesales operators from the roster sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			operators, err := app.SheetsClient.ListOperators(app.Cfg.RosterSheetID, app.Cfg.RosterTab)
			if err != nil {
				return fmt.Errorf("failed to list operators: %w", err)
			}

			app.Logger.Info("Operators fetched successfully", zap.Int("count", len(operators)))

			fmt.Printf("\nFound %d active operators:\n\n", len(operators))
			for _, op := range operators {
				campaigns := make([]string, 0, len(op.Campaigns))
				for _, code := range op.Campaigns {
					campaigns = append(campaigns, model.CampaignDisplayName(code))
				}
				fmt.Printf("- %s (%s) - %s\n", op.Name, op.PanelUser, strings.Join(campaigns, ", "))
			}
			fmt.Println()

			return nil
		},
	}
}
