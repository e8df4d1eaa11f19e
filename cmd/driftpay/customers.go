package main

import (
	"context"

	"github.com/spf13/cobra"

	driftpay "github.com/driftpay/driftpay-go"
)

func customersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers",
	}

	cmd.AddCommand(customersListCmd())
	cmd.AddCommand(customersGetCmd())
	cmd.AddCommand(customersCreateCmd())
	cmd.AddCommand(customersRemoveCmd())

	return cmd
}

func customersListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			it := client.Customers.All(driftpay.CustomerListParams{
				ListParams: driftpay.ListParams{Limit: limit},
			})
			for it.Next(ctx) {
				if err := printJSON(it.Value()); err != nil {
					return err
				}
			}
			return it.Err()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "page size")

	return cmd
}

func customersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			customer, err := client.Customers.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(customer)
		},
	}
}

func customersCreateCmd() *cobra.Command {
	var email, givenName, familyName, companyName, countryCode string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			customer, err := client.Customers.Create(context.Background(), driftpay.CustomerCreateParams{
				Email:       email,
				GivenName:   givenName,
				FamilyName:  familyName,
				CompanyName: companyName,
				CountryCode: countryCode,
			})
			if err != nil {
				return err
			}
			return printJSON(customer)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&givenName, "given-name", "", "given name")
	cmd.Flags().StringVar(&familyName, "family-name", "", "family name")
	cmd.Flags().StringVar(&companyName, "company-name", "", "company name")
	cmd.Flags().StringVar(&countryCode, "country-code", "", "ISO 3166-1 country code")

	return cmd
}

func customersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove an unused customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			return client.Customers.Remove(context.Background(), args[0])
		},
	}
}
