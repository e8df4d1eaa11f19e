package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "driftpay",
		Short:   "driftpay - command line access to the Driftpay API",
		Version: Version,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "driftpay.yaml", "path to the yaml configuration file")

	rootCmd.AddCommand(customersCmd())
	rootCmd.AddCommand(mandatesCmd())
	rootCmd.AddCommand(paymentsCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(bankLookupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
