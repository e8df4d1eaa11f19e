package driftpay

import (
	"context"
	"encoding/json"
	"testing"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	"github.com/stretchr/testify/require"

	"github.com/driftpay/driftpay-go/internal/transport"
)

type stubCall struct {
	method         string
	url            string
	body           interface{}
	idempotencyKey string
}

type stubResponse struct {
	status int
	body   string
	err    error
}

// stubCaller replaces the HTTP client chain in tests. Responses are consumed
// in order; the last one repeats.
type stubCaller struct {
	responses []stubResponse
	calls     []stubCall
}

func (s *stubCaller) Perform(ctx context.Context, method string, requestUrl string, requestBody interface{}, response *aurestclientapi.ParsedResponse) error {
	s.calls = append(s.calls, stubCall{
		method:         method,
		url:            requestUrl,
		body:           requestBody,
		idempotencyKey: transport.IdempotencyKeyFromContext(ctx),
	})

	if len(s.responses) == 0 {
		response.Status = 200
		return nil
	}

	idx := len(s.calls) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	r := s.responses[idx]

	if r.err != nil {
		return r.err
	}
	response.Status = r.status
	if response.Body != nil && r.body != "" {
		if err := json.Unmarshal([]byte(r.body), response.Body); err != nil {
			return err
		}
	}
	return nil
}

const testEndpoint = "http://localhost:8080"

func newTestClient(t *testing.T, stub *stubCaller) *Client {
	t.Helper()

	client, err := New(Config{
		Endpoint: testEndpoint,
		Client:   stub,
	})
	require.NoError(t, err)

	return client
}
