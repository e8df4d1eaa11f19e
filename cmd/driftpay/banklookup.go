package main

import (
	"context"

	"github.com/spf13/cobra"

	driftpay "github.com/driftpay/driftpay-go"
)

func bankLookupCmd() *cobra.Command {
	var accountNumber, branchCode, countryCode, iban string

	cmd := &cobra.Command{
		Use:   "bank-lookup",
		Short: "Check which debit schemes a bank account supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			lookup, err := client.BankDetailsLookups.Create(context.Background(), driftpay.BankDetailsLookupParams{
				AccountNumber: accountNumber,
				BranchCode:    branchCode,
				CountryCode:   countryCode,
				IBAN:          iban,
			})
			if err != nil {
				return err
			}
			return printJSON(lookup)
		},
	}

	cmd.Flags().StringVar(&accountNumber, "account-number", "", "local account number")
	cmd.Flags().StringVar(&branchCode, "branch-code", "", "local branch code (sort code, BLZ, ...)")
	cmd.Flags().StringVar(&countryCode, "country-code", "", "ISO 3166-1 country code")
	cmd.Flags().StringVar(&iban, "iban", "", "IBAN, alternative to local details")

	return cmd
}
