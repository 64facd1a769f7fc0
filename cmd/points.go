package cmd

import (
	"context"
	"fmt"
	"strconv"

	"streambot/bot/common"
	"streambot/config"
	"streambot/domain/entities"
	"streambot/domain/interfaces"
	"streambot/domain/services"

	"github.com/spf13/cobra"
)

func newPointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Inspect or correct point balances",
	}

	cmd.AddCommand(newPointsGetCmd())
	cmd.AddCommand(newPointsSetCmd())

	return cmd
}

func newPointsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <discordID>",
		Short: "Show a balance and the store it is read from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd.Context(), cfg, func(ledger interfaces.PointsLedger) error {
				printAccount(cmd, ledger.GetAccount(cmd.Context(), args[0]))
				return nil
			})
		},
	}
}

func newPointsSetCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "set <discordID> <amount>",
		Short: "Overwrite a balance in whichever store it lives in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			return withLedger(cmd.Context(), cfg, func(ledger interfaces.PointsLedger) error {
				if _, err := ledger.SetBalance(cmd.Context(), args[0], amount, reason); err != nil {
					return err
				}
				printAccount(cmd, ledger.GetAccount(cmd.Context(), args[0]))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "admin", "Reason recorded with the change")

	return cmd
}

// withLedger opens the configured stores for the duration of fn
func withLedger(ctx context.Context, cfg *config.Config, fn func(interfaces.PointsLedger) error) error {
	stores, err := openLedgerStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	backbone, err := openEventBackbone(ctx, cfg)
	if err != nil {
		return err
	}
	defer backbone.Close()

	return fn(services.NewPointsLedger(stores.links, stores.profiles, stores.local, backbone.publisher))
}

func printAccount(cmd *cobra.Command, account *entities.PointsAccount) {
	cmd.Printf("Discord ID: %s\n", account.DiscordID)
	if account.IsLinked() {
		cmd.Printf("Linked to:  %s\n", account.ChatUsername)
	}
	cmd.Printf("Store:      %s\n", account.Store)
	cmd.Printf("Balance:    %s\n", common.PluralPoints(account.Balance))
}
