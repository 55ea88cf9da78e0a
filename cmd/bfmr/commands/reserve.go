package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/domain/service/conversation"
)

func newReserveCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reserve <deal-id> <item-id> <quantity>",
		Short: "Reserves quantity of a deal item.",
		Args:  cobra.ExactArgs(3), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := global.credentials()
			if err != nil {
				return err
			}

			qty, err := conversation.ParseQuantity(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[2], err)
			}

			client := global.client(cmd)

			result, err := client.Reserve(cmd.Context(), creds, entity.Reservation{
				DealID:   args[0],
				ItemID:   args[1],
				Quantity: qty,
			})
			if err != nil {
				return fmt.Errorf("reserve: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: deal %s, item %s, quantity %d\n", result.Message, args[0], args[1], qty)

			return nil
		},
	}
}
