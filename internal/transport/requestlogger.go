package transport

import (
	"context"
	"time"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/driftpay/driftpay-go/internal/logging"
)

// custom implementation because this library isn't using go-autumn-logging

type RequestLoggingImpl struct {
	Wrapped  aurestclientapi.Client
	Fallback logging.Logger
}

func NewRequestLoggingWrapper(wrapped aurestclientapi.Client, fallback logging.Logger) aurestclientapi.Client {
	return &RequestLoggingImpl{
		Wrapped:  wrapped,
		Fallback: fallback,
	}
}

func (c *RequestLoggingImpl) Perform(ctx context.Context, method string, requestUrl string, requestBody interface{}, response *aurestclientapi.ParsedResponse) error {
	logger := logging.LoggerFromContext(ctx, c.Fallback)
	before := time.Now()
	err := c.Wrapped.Perform(ctx, method, requestUrl, requestBody, response)
	millis := time.Now().Sub(before).Milliseconds()
	if err != nil {
		logger.Warn("api %s %s -> %d FAILED (%d ms): %s", method, requestUrl, response.Status, millis, err.Error())
	} else {
		logger.Debug("api %s %s -> %d OK (%d ms)", method, requestUrl, response.Status, millis)
	}
	return err
}
