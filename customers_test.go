package driftpay

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomersCreate(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 201, body: `{"customers": {"id": "CU123", "email": "frank@example.com", "country_code": "GB"}}`},
		},
	}
	client := newTestClient(t, stub)

	customer, err := client.Customers.Create(context.Background(), CustomerCreateParams{
		Email:       "frank@example.com",
		GivenName:   "Frank",
		FamilyName:  "Osborne",
		CountryCode: "GB",
	})

	require.NoError(t, err)
	require.Equal(t, "CU123", customer.ID)
	require.Equal(t, "frank@example.com", customer.Email)

	require.Len(t, stub.calls, 1)
	call := stub.calls[0]
	require.Equal(t, http.MethodPost, call.method)
	require.Equal(t, testEndpoint+"/customers", call.url)
	require.NotEmpty(t, call.idempotencyKey, "creations must always carry an idempotency key")

	body, ok := call.body.(customerCreateRequest)
	require.True(t, ok)
	require.Equal(t, "frank@example.com", body.Customers.Email)
}

func TestCustomersCreateUsesSuppliedIdempotencyKey(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 201, body: `{"customers": {"id": "CU123"}}`},
		},
	}
	client := newTestClient(t, stub)

	_, err := client.Customers.Create(context.Background(), CustomerCreateParams{}, WithIdempotencyKey("my-key-1"))

	require.NoError(t, err)
	require.Equal(t, "my-key-1", stub.calls[0].idempotencyKey)
}

func TestCustomersCreateReturnsExistingOnConflict(t *testing.T) {
	conflictBody := `{"error": {
		"message": "A resource has already been created with this idempotency key",
		"type": "invalid_state",
		"code": 409,
		"errors": [{
			"reason": "idempotent_creation_conflict",
			"message": "A resource has already been created with this idempotency key",
			"links": {"conflicting_resource_id": "CU999"}
		}]
	}}`

	stub := &stubCaller{
		responses: []stubResponse{
			{status: 409, body: conflictBody},
			{status: 200, body: `{"customers": {"id": "CU999", "email": "first@example.com"}}`},
		},
	}
	client := newTestClient(t, stub)

	customer, err := client.Customers.Create(context.Background(), CustomerCreateParams{Email: "first@example.com"})

	require.NoError(t, err)
	require.Equal(t, "CU999", customer.ID)

	require.Len(t, stub.calls, 2)
	require.Equal(t, http.MethodGet, stub.calls[1].method)
	require.Equal(t, testEndpoint+"/customers/CU999", stub.calls[1].url)
}

func TestCustomersCreateValidationFailure(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 422, body: `{"error": {
				"message": "Validation failed",
				"type": "validation_failed",
				"code": 422,
				"request_id": "RQ0001",
				"errors": [{"message": "must be provided", "field": "country_code", "request_pointer": "/customers/country_code"}]
			}}`},
		},
	}
	client := newTestClient(t, stub)

	customer, err := client.Customers.Create(context.Background(), CustomerCreateParams{})

	require.Nil(t, customer)
	require.True(t, IsValidationError(err))

	apiErr := AsAPIError(err)
	require.Equal(t, "RQ0001", apiErr.RequestID)
	require.Len(t, apiErr.Errors, 1)
	require.Equal(t, "country_code", apiErr.Errors[0].Field)
}

func TestCustomersGet(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{"customers": {"id": "CU123", "given_name": "Frank"}}`},
		},
	}
	client := newTestClient(t, stub)

	customer, err := client.Customers.Get(context.Background(), "CU123")

	require.NoError(t, err)
	require.Equal(t, "Frank", customer.GivenName)
	require.Equal(t, http.MethodGet, stub.calls[0].method)
	require.Equal(t, testEndpoint+"/customers/CU123", stub.calls[0].url)
	require.Empty(t, stub.calls[0].idempotencyKey)
}

func TestCustomersGetNotFound(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 404, body: `{"error": {"message": "Resource not found", "type": "invalid_api_usage", "code": 404}}`},
		},
	}
	client := newTestClient(t, stub)

	customer, err := client.Customers.Get(context.Background(), "CU404")

	require.Nil(t, customer)
	require.True(t, IsNotFoundError(err))
}

func TestCustomersUpdate(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{"customers": {"id": "CU123", "email": "new@example.com"}}`},
		},
	}
	client := newTestClient(t, stub)

	customer, err := client.Customers.Update(context.Background(), "CU123", CustomerUpdateParams{Email: "new@example.com"})

	require.NoError(t, err)
	require.Equal(t, "new@example.com", customer.Email)
	require.Equal(t, http.MethodPut, stub.calls[0].method)
	require.Equal(t, testEndpoint+"/customers/CU123", stub.calls[0].url)
}

func TestCustomersList(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{
				"customers": [{"id": "CU1"}, {"id": "CU2"}],
				"meta": {"cursors": {"before": null, "after": "CU2"}, "limit": 2}
			}`},
		},
	}
	client := newTestClient(t, stub)

	list, err := client.Customers.List(context.Background(), CustomerListParams{
		ListParams: ListParams{Limit: 2},
	})

	require.NoError(t, err)
	require.Len(t, list.Customers, 2)
	require.Equal(t, "CU2", list.Meta.Cursors.After)
	require.Equal(t, testEndpoint+"/customers?limit=2", stub.calls[0].url)
}

func TestCustomersAllFollowsCursors(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{
				"customers": [{"id": "CU1"}, {"id": "CU2"}],
				"meta": {"cursors": {"after": "CU2"}, "limit": 2}
			}`},
			{status: 200, body: `{
				"customers": [{"id": "CU3"}],
				"meta": {"cursors": {"after": null}, "limit": 2}
			}`},
		},
	}
	client := newTestClient(t, stub)

	ctx := context.Background()
	it := client.Customers.All(CustomerListParams{ListParams: ListParams{Limit: 2}})

	var ids []string
	for it.Next(ctx) {
		ids = append(ids, it.Value().ID)
	}

	require.NoError(t, it.Err())
	require.Equal(t, []string{"CU1", "CU2", "CU3"}, ids)
	require.Len(t, stub.calls, 2)
	require.Equal(t, testEndpoint+"/customers?limit=2", stub.calls[0].url)
	require.Equal(t, testEndpoint+"/customers?after=CU2&limit=2", stub.calls[1].url)
}

func TestCustomersAllDropsBeforeCursor(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 200, body: `{
				"customers": [{"id": "CU5"}],
				"meta": {"cursors": {"after": "CU5"}, "limit": 1}
			}`},
			{status: 200, body: `{
				"customers": [],
				"meta": {"cursors": {}, "limit": 1}
			}`},
		},
	}
	client := newTestClient(t, stub)

	ctx := context.Background()
	it := client.Customers.All(CustomerListParams{ListParams: ListParams{Before: "CU9", After: "CU4"}})

	var ids []string
	for it.Next(ctx) {
		ids = append(ids, it.Value().ID)
	}

	require.NoError(t, it.Err())
	require.Equal(t, []string{"CU5"}, ids)
	require.Len(t, stub.calls, 2)
	require.Equal(t, testEndpoint+"/customers?after=CU4", stub.calls[0].url)
	require.Equal(t, testEndpoint+"/customers?after=CU5", stub.calls[1].url)
}

func TestCustomersRemove(t *testing.T) {
	stub := &stubCaller{
		responses: []stubResponse{
			{status: 204},
		},
	}
	client := newTestClient(t, stub)

	err := client.Customers.Remove(context.Background(), "CU123")

	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, stub.calls[0].method)
	require.Equal(t, testEndpoint+"/customers/CU123", stub.calls[0].url)
}
