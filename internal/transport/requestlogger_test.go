package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) log(level string, format string, v ...interface{}) {
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Debug(format string, v ...interface{}) { l.log("DEBUG", format, v...) }
func (l *recordingLogger) Info(format string, v ...interface{})  { l.log("INFO", format, v...) }
func (l *recordingLogger) Warn(format string, v ...interface{})  { l.log("WARN", format, v...) }
func (l *recordingLogger) Error(format string, v ...interface{}) { l.log("ERROR", format, v...) }

type fakeClient struct {
	status int
	err    error
}

func (c *fakeClient) Perform(ctx context.Context, method string, requestUrl string, requestBody interface{}, response *aurestclientapi.ParsedResponse) error {
	response.Status = c.status
	return c.err
}

func TestRequestLoggingSuccess(t *testing.T) {
	logger := &recordingLogger{}
	client := NewRequestLoggingWrapper(&fakeClient{status: 200}, logger)

	response := aurestclientapi.ParsedResponse{}
	err := client.Perform(context.Background(), http.MethodGet, "http://localhost/customers", nil, &response)

	require.NoError(t, err)
	require.Len(t, logger.lines, 1)
	require.True(t, strings.HasPrefix(logger.lines[0], "DEBUG: api GET http://localhost/customers -> 200 OK"))
}

func TestRequestLoggingFailure(t *testing.T) {
	logger := &recordingLogger{}
	client := NewRequestLoggingWrapper(&fakeClient{status: 0, err: errors.New("connection refused")}, logger)

	response := aurestclientapi.ParsedResponse{}
	err := client.Perform(context.Background(), http.MethodPost, "http://localhost/payments", nil, &response)

	require.Error(t, err)
	require.Len(t, logger.lines, 1)
	require.True(t, strings.HasPrefix(logger.lines[0], "WARN: api POST http://localhost/payments -> 0 FAILED"))
	require.Contains(t, logger.lines[0], "connection refused")
}
