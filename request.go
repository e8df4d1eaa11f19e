package driftpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	"github.com/google/uuid"

	"github.com/driftpay/driftpay-go/internal/logging"
	"github.com/driftpay/driftpay-go/internal/transport"
)

func contextWithIdempotencyKey(ctx context.Context, key string) context.Context {
	return transport.ContextWithIdempotencyKey(ctx, key)
}

// ContextWithRequestID attaches a correlation id to the context. It is sent
// on every outgoing request so API calls can be matched to the caller's own
// request handling.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return logging.ContextWithRequestID(ctx, requestID)
}

// ContextWithLogger attaches a per-request logger, overriding the Config
// logger for calls made with this context.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// RequestOption adjusts a single API call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for a Create call
// instead of the generated one. Keys are scoped per resource type and expire
// server-side after 24 hours.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *requestOptions) {
		o.idempotencyKey = key
	}
}

func applyRequestOptions(opts []RequestOption) requestOptions {
	o := requestOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// apiEnvelope is implemented by every response envelope via errorEnvelope.
type apiEnvelope interface {
	apiError() *APIError
}

// errorEnvelope decodes the error branch of a response body. Response
// envelopes embed it next to their resource field.
type errorEnvelope struct {
	Err *APIError `json:"error"`
}

func (e *errorEnvelope) apiError() *APIError {
	return e.Err
}

// url builds an absolute request url, path-escaping each parameter.
func (c *Client) url(format string, pathParams ...string) string {
	escaped := make([]interface{}, len(pathParams))
	for i, p := range pathParams {
		escaped[i] = url.PathEscape(p)
	}
	return c.endpoint + fmt.Sprintf(format, escaped...)
}

func withQuery(requestUrl string, query url.Values) string {
	if len(query) > 0 {
		return requestUrl + "?" + query.Encode()
	}
	return requestUrl
}

// do performs a request and maps the outcome: transport failures become
// ErrTransportUnavailable, non-2xx responses become the decoded *APIError.
func (c *Client) do(ctx context.Context, method string, requestUrl string, requestBody interface{}, out apiEnvelope) error {
	response := aurestclientapi.ParsedResponse{
		Body: out,
	}
	err := c.caller.Perform(ctx, method, requestUrl, requestBody, &response)
	return errByStatus(err, response.Status, out)
}

// post is do for creations and actions: it guarantees an idempotency key is
// present on the request.
func (c *Client) post(ctx context.Context, requestUrl string, requestBody interface{}, out apiEnvelope, opts ...RequestOption) error {
	o := applyRequestOptions(opts)
	if o.idempotencyKey == "" {
		o.idempotencyKey = uuid.NewString()
	}
	ctx = contextWithIdempotencyKey(ctx, o.idempotencyKey)
	return c.do(ctx, http.MethodPost, requestUrl, requestBody, out)
}

func errByStatus(err error, status int, out apiEnvelope) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
	}
	if status >= 300 {
		if apiErr := out.apiError(); apiErr != nil {
			if apiErr.Code == 0 {
				apiErr.Code = status
			}
			return apiErr
		}
		return ErrTransportUnavailable
	}
	return nil
}
