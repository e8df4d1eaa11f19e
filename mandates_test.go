package driftpay

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMandatesCreate(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 201, body: `{"mandates": {
				"id": "MD123",
				"reference": "REF-123",
				"scheme": "bacs",
				"status": "pending_submission",
				"links": {"customer_bank_account": "BA123", "creditor": "CR123"}
			}}`},
		},
	}
	client := newTestClient(t, stub)

	mandate, err := client.Mandates.Create(context.Background(), MandateCreateParams{
		Scheme: "bacs",
		Links:  MandateCreateLinks{CustomerBankAccount: "BA123"},
	})

	require.NoError(t, err)
	require.Equal(t, "MD123", mandate.ID)
	require.Equal(t, MandateStatusPendingSubmission, mandate.Status)
	require.Equal(t, "BA123", mandate.Links.CustomerBankAccount)
	require.NotEmpty(t, stub.calls[0].idempotencyKey)
}

func TestMandatesListByStatus(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{"mandates": [{"id": "MD1", "status": "active"}], "meta": {"cursors": {}}}`},
		},
	}
	client := newTestClient(t, stub)

	list, err := client.Mandates.List(context.Background(), MandateListParams{
		Customer: "CU123",
		Status:   []MandateStatus{MandateStatusActive, MandateStatusSubmitted},
	})

	require.NoError(t, err)
	require.Len(t, list.Mandates, 1)
	require.Equal(t, testEndpoint+"/mandates?customer=CU123&status=active&status=submitted", stub.calls[0].url)
}

func TestMandatesCancel(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{"mandates": {"id": "MD123", "status": "cancelled"}}`},
		},
	}
	client := newTestClient(t, stub)

	mandate, err := client.Mandates.Cancel(context.Background(), "MD123", MandateCancelParams{
		Metadata: map[string]string{"requested_by": "support"},
	})

	require.NoError(t, err)
	require.Equal(t, MandateStatusCancelled, mandate.Status)

	call := stub.calls[0]
	require.Equal(t, http.MethodPost, call.method)
	require.Equal(t, testEndpoint+"/mandates/MD123/actions/cancel", call.url)
	require.NotEmpty(t, call.idempotencyKey)

	body, ok := call.body.(mandateCancelRequest)
	require.True(t, ok)
	require.Equal(t, "support", body.Data.Metadata["requested_by"])
}

func TestMandatesCancelAlreadyCancelled(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 422, body: `{"error": {
				"message": "Mandate is already cancelled",
				"type": "invalid_state",
				"code": 422,
				"errors": [{"reason": "cancellation_failed", "message": "Mandate is already cancelled"}]
			}}`},
		},
	}
	client := newTestClient(t, stub)

	mandate, err := client.Mandates.Cancel(context.Background(), "MD123", MandateCancelParams{})

	require.Nil(t, mandate)
	require.True(t, IsInvalidStateError(err))
}

func TestMandatesReinstate(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{"mandates": {"id": "MD123", "status": "submitted"}}`},
		},
	}
	client := newTestClient(t, stub)

	mandate, err := client.Mandates.Reinstate(context.Background(), "MD123", MandateReinstateParams{})

	require.NoError(t, err)
	require.Equal(t, MandateStatusSubmitted, mandate.Status)
	require.Equal(t, testEndpoint+"/mandates/MD123/actions/reinstate", stub.calls[0].url)
}
