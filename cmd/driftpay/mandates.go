package main

import (
	"context"

	"github.com/spf13/cobra"

	driftpay "github.com/driftpay/driftpay-go"
)

func mandatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mandates",
		Short: "Manage mandates",
	}

	cmd.AddCommand(mandatesListCmd())
	cmd.AddCommand(mandatesGetCmd())
	cmd.AddCommand(mandatesCancelCmd())

	return cmd
}

func mandatesListCmd() *cobra.Command {
	var customer string
	var status []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mandates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			params := driftpay.MandateListParams{Customer: customer}
			for _, s := range status {
				params.Status = append(params.Status, driftpay.MandateStatus(s))
			}

			ctx := context.Background()
			it := client.Mandates.All(params)
			for it.Next(ctx) {
				if err := printJSON(it.Value()); err != nil {
					return err
				}
			}
			return it.Err()
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "filter by customer id")
	cmd.Flags().StringSliceVar(&status, "status", nil, "filter by status (active, cancelled, ...)")

	return cmd
}

func mandatesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one mandate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			mandate, err := client.Mandates.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(mandate)
		},
	}
}

func mandatesCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [id]",
		Short: "Cancel a mandate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			mandate, err := client.Mandates.Cancel(context.Background(), args[0], driftpay.MandateCancelParams{})
			if err != nil {
				return err
			}
			return printJSON(mandate)
		},
	}
}
