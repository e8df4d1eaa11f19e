package driftpay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventsList(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{
				"events": [{
					"id": "EV123",
					"resource_type": "mandates",
					"action": "cancelled",
					"details": {"origin": "bank", "cause": "bank_account_closed", "scheme": "bacs"},
					"links": {"mandate": "MD123"}
				}],
				"meta": {"cursors": {"after": null}}
			}`},
		},
	}
	client := newTestClient(t, stub)

	list, err := client.Events.List(context.Background(), EventListParams{
		ResourceType: "mandates",
		Action:       "cancelled",
	})

	require.NoError(t, err)
	require.Len(t, list.Events, 1)

	ev := list.Events[0]
	require.Equal(t, "mandates", ev.ResourceType)
	require.Equal(t, "bank_account_closed", ev.Details.Cause)
	require.Equal(t, "MD123", ev.Links.Mandate)
	require.Equal(t, testEndpoint+"/events?action=cancelled&resource_type=mandates", stub.calls[0].url)
}

func TestEventsGet(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{"events": {"id": "EV123", "resource_type": "payments", "action": "failed"}}`},
		},
	}
	client := newTestClient(t, stub)

	ev, err := client.Events.Get(context.Background(), "EV123")

	require.NoError(t, err)
	require.Equal(t, "failed", ev.Action)
	require.Equal(t, testEndpoint+"/events/EV123", stub.calls[0].url)
}
