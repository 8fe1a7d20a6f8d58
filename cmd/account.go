package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/bookit/internal/service/accounts"
	"github.com/m04kA/bookit/internal/service/accounts/models"
)

func newAccountCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountProvisionCmd(opts))
	return cmd
}

func newAccountProvisionCmd(opts *rootOptions) *cobra.Command {
	var req models.ProvisionRequest

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create or overwrite an account, optionally as a protected admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer log.Close()

			ctx := cmd.Context()
			store, err := openBackend(ctx, cfg, commandMetrics(cfg), log)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := accounts.NewService(store.accounts, store.reservations, cfg.Storage.CallTimeout(), log)
			acc, err := svc.Provision(ctx, &req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "provisioned %s (%s, type=%s, protected=%t)\n",
				acc.ID, acc.Email, acc.Type, acc.Protected)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ID, "id", "", "account ID (identity provider subject)")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().BoolVar(&req.Admin, "admin", false, "grant the admin role")
	cmd.Flags().BoolVar(&req.Protected, "protected", false, "mark as protected admin (requires --admin)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
