package main

import (
	"context"

	"github.com/spf13/cobra"

	driftpay "github.com/driftpay/driftpay-go"
)

func eventsCmd() *cobra.Command {
	var resourceType, action string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			it := client.Events.All(driftpay.EventListParams{
				ResourceType: resourceType,
				Action:       action,
			})
			for it.Next(ctx) {
				if err := printJSON(it.Value()); err != nil {
					return err
				}
			}
			return it.Err()
		},
	}

	cmd.Flags().StringVar(&resourceType, "resource-type", "", "filter by resource type (payments, mandates, ...)")
	cmd.Flags().StringVar(&action, "action", "", "filter by action")

	return cmd
}
