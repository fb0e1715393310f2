package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/v1alpha1"
)

var rollBonus int

var rollCmd = &cobra.Command{
	Use:   "roll ID",
	Short: "Roll a stored ability's power roll",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoll,
}

func init() {
	rollCmd.Flags().IntVar(&rollBonus, "bonus", 0, "characteristic bonus added to the roll")
}

func runRoll(cmd *cobra.Command, args []string) error {
	req, err := v1alpha1.RollRequest(args[0], rollBonus)
	if err != nil {
		return err
	}

	return call(cmd.Context(), func(ctx context.Context, client v1alpha1.CatalogServiceClient) error {
		resp, err := client.RollAbility(ctx, req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, resp)
		}

		res, err := v1alpha1.DecodeRollResult(resp)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s: 2d10 %v %+d = %d\n", res.AbilityID, res.Dice, res.Bonus, res.Total)
		if res.Critical {
			fmt.Fprintln(w, "Critical!")
		}
		fmt.Fprintf(w, "Tier: %s\n", res.TierName)
		if res.Tier != nil {
			fmt.Fprintf(w, "  %s\n", tierText(*res.Tier))
		}
		return nil
	})
}
