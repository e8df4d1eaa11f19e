// Package transport assembles the HTTP client chain used for every call to
// the Driftpay API: plain http client, request logging, circuit breaker.
package transport

import (
	"context"
	"net/http"
	"time"

	aurestbreaker "github.com/StephanHCB/go-autumn-restclient-circuitbreaker/implementation/breaker"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	auresthttpclient "github.com/StephanHCB/go-autumn-restclient/implementation/httpclient"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-http-utils/headers"

	"github.com/driftpay/driftpay-go/internal/logging"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	VersionHeader        = "Driftpay-Version"
)

type ctxKey int

const idempotencyKeyKey ctxKey = 0

func ContextWithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyKey, key)
}

func IdempotencyKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(idempotencyKeyKey).(string); ok {
		return key
	}
	return ""
}

// BearerTokenRequestManipulator authenticates every request with the fixed
// access token and version, and picks the per-request values (idempotency
// key, request id) out of the context.
func BearerTokenRequestManipulator(accessToken string, version string) aurestclientapi.RequestManipulatorCallback {
	return func(ctx context.Context, r *http.Request) {
		r.Header.Set(headers.Authorization, "Bearer "+accessToken)
		r.Header.Set(VersionHeader, version)
		if key := IdempotencyKeyFromContext(ctx); key != "" {
			r.Header.Set(IdempotencyKeyHeader, key)
		}
		if reqID := logging.RequestIDFromContext(ctx); reqID != "" {
			r.Header.Set(middleware.RequestIDHeader, reqID)
		}
	}
}

func ClientWith(requestManipulator aurestclientapi.RequestManipulatorCallback, circuitBreakerName string, requestTimeout time.Duration, fallbackLogger logging.Logger) (aurestclientapi.Client, error) {
	httpClient, err := auresthttpclient.New(requestTimeout, nil, requestManipulator)
	if err != nil {
		return nil, err
	}

	requestLoggingClient := NewRequestLoggingWrapper(httpClient, fallbackLogger)

	circuitBreakerClient := aurestbreaker.New(requestLoggingClient,
		circuitBreakerName,
		10,
		2*time.Minute,
		30*time.Second,
		15*time.Second,
	)

	return circuitBreakerClient, nil
}
