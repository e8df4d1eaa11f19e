package main

import (
	"context"

	"github.com/spf13/cobra"

	driftpay "github.com/driftpay/driftpay-go"
)

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Manage payments",
	}

	cmd.AddCommand(paymentsListCmd())
	cmd.AddCommand(paymentsGetCmd())
	cmd.AddCommand(paymentsCreateCmd())

	return cmd
}

func paymentsListCmd() *cobra.Command {
	var mandate, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			it := client.Payments.All(driftpay.PaymentListParams{
				Mandate: mandate,
				Status:  driftpay.PaymentStatus(status),
			})
			for it.Next(ctx) {
				if err := printJSON(it.Value()); err != nil {
					return err
				}
			}
			return it.Err()
		},
	}

	cmd.Flags().StringVar(&mandate, "mandate", "", "filter by mandate id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

func paymentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			payment, err := client.Payments.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(payment)
		},
	}
}

func paymentsCreateCmd() *cobra.Command {
	var amount int64
	var currency, mandate, description, idempotencyKey string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment against a mandate",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			params := driftpay.PaymentCreateParams{
				Amount:      amount,
				Currency:    currency,
				Description: description,
				Links:       driftpay.PaymentCreateLinks{Mandate: mandate},
			}

			var opts []driftpay.RequestOption
			if idempotencyKey != "" {
				opts = append(opts, driftpay.WithIdempotencyKey(idempotencyKey))
			}

			payment, err := client.Payments.Create(context.Background(), params, opts...)
			if err != nil {
				return err
			}
			return printJSON(payment)
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in the smallest denomination")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code")
	cmd.Flags().StringVar(&mandate, "mandate", "", "mandate id to charge")
	cmd.Flags().StringVar(&description, "description", "", "payment description")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "idempotency key, generated when omitted")

	return cmd
}
