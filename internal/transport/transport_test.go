package transport

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/driftpay/driftpay-go/internal/logging"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	r, err := http.NewRequest(http.MethodGet, "http://localhost/customers", nil)
	require.NoError(t, err)
	return r
}

func TestBearerTokenRequestManipulator(t *testing.T) {
	manipulator := BearerTokenRequestManipulator("live_token_1234", "2024-05-21")

	r := newRequest(t)
	manipulator(context.Background(), r)

	require.Equal(t, "Bearer live_token_1234", r.Header.Get("Authorization"))
	require.Equal(t, "2024-05-21", r.Header.Get(VersionHeader))
	require.Empty(t, r.Header.Get(IdempotencyKeyHeader))
	require.Empty(t, r.Header.Get(middleware.RequestIDHeader))
}

func TestManipulatorForwardsIdempotencyKey(t *testing.T) {
	manipulator := BearerTokenRequestManipulator("live_token_1234", "2024-05-21")

	ctx := ContextWithIdempotencyKey(context.Background(), "key-1")
	r := newRequest(t)
	manipulator(ctx, r)

	require.Equal(t, "key-1", r.Header.Get(IdempotencyKeyHeader))
}

func TestManipulatorForwardsRequestID(t *testing.T) {
	manipulator := BearerTokenRequestManipulator("live_token_1234", "2024-05-21")

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	r := newRequest(t)
	manipulator(ctx, r)

	require.Equal(t, "req-42", r.Header.Get(middleware.RequestIDHeader))
}

func TestIdempotencyKeyFromContext(t *testing.T) {
	require.Empty(t, IdempotencyKeyFromContext(context.Background()))

	ctx := ContextWithIdempotencyKey(context.Background(), "key-1")
	require.Equal(t, "key-1", IdempotencyKeyFromContext(ctx))
}
