package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"bookie/config"
	"bookie/events"
	"bookie/repository"
	"bookie/service"

	"github.com/spf13/cobra"
)

// operatorID marks actions taken from the command line rather than Discord
const operatorID = "cli"

// openServices loads the ledger for a one-shot command
func openServices(ctx context.Context, cfg *config.Config) (service.OfferService, service.AdminService, func(), error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	ledger, err := repository.NewLedger(ctx, store)
	if err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	uowFactory := repository.NewUnitOfWorkFactory(ledger, events.NewBus())
	cleanup := func() { store.Close() }
	return service.NewOfferService(uowFactory, cfg), service.NewAdminService(uowFactory, cfg), cleanup, nil
}

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [dir]",
		Short: "Write a timestamped backup of the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, admin, cleanup, err := openServices(cmd.Context(), config.Get())
			if err != nil {
				return err
			}
			defer cleanup()

			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			result, err := admin.Backup(cmd.Context(), operatorID, dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d users, %d offers)\n", result.Path, result.UserCount, result.OfferCount)
			return nil
		},
	}
}

func newOffersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offers",
		Short: "List open and locked offers",
		RunE: func(cmd *cobra.Command, args []string) error {
			offers, _, cleanup, err := openServices(cmd.Context(), config.Get())
			if err != nil {
				return err
			}
			defer cleanup()

			active, err := offers.ListOpenOrLocked(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MATCH\tTEAMS\tPROFIT\tSTATUS\tBETS\tPOOL")
			for _, o := range active {
				fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\t%d\t%d\n", o.MatchID, o.Description(), o.ProfitPercent, o.Status, o.BetCount, o.TotalPool())
			}
			return w.Flush()
		},
	}
}
