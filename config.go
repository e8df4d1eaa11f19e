package driftpay

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/driftpay/driftpay-go/internal/logging"
)

const (
	// LiveEndpoint is the production API.
	LiveEndpoint = "https://api.driftpay.com"
	// SandboxEndpoint is the testing environment. Sandbox data never touches
	// a real banking scheme.
	SandboxEndpoint = "https://api-sandbox.driftpay.com"

	// DefaultVersion is the API version the client pins unless overridden.
	DefaultVersion = "2024-05-21"
)

// Logger is the logging interface the client writes to. Implementations must
// be safe for concurrent use.
type Logger = logging.Logger

// NewLogger returns a Logger writing zerolog JSON lines to stdout.
func NewLogger() Logger {
	return logging.NewLogger()
}

type Config struct {
	// Endpoint is the API base url, without a trailing slash.
	// Defaults to LiveEndpoint.
	Endpoint string

	// AccessToken authenticates all requests. Required.
	AccessToken string

	// Version overrides the pinned API version header. Defaults to
	// DefaultVersion.
	Version string

	// RequestTimeout bounds each individual HTTP request. Zero means the
	// underlying http client default.
	RequestTimeout time.Duration

	// Logger receives request logging. Nil disables logging.
	Logger Logger

	// Client replaces the default HTTP client chain. When set, Endpoint is
	// still used for URL building but AccessToken, Version and
	// RequestTimeout are ignored. Intended for tests and for callers that
	// need their own interceptors.
	Client aurestclientapi.Client
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = LiveEndpoint
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	return c
}

const endpointPattern = "^https?://.*[^/]$"

func validateConfig(conf Config) error {
	errs := url.Values{}
	if violatesPattern(endpointPattern, conf.Endpoint) {
		errs.Add("endpoint", "base url must start with http:// or https:// and may not end in a /")
	}
	if conf.Client == nil {
		checkLength(&errs, 1, 4096, "access_token", conf.AccessToken)
	}

	if len(errs) > 0 {
		var keys []string
		for key := range errs {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		details := make([]string, 0, len(keys))
		for _, k := range keys {
			details = append(details, fmt.Sprintf("%s: %s", k, errs[k][0]))
		}
		return errors.New("client configuration failed to validate: " + strings.Join(details, ", "))
	}

	return nil
}

func violatesPattern(pattern string, value string) bool {
	matched, err := regexp.MatchString(pattern, value)
	if err != nil {
		return true
	}
	return !matched
}

func checkLength(errs *url.Values, min int, max int, key string, value string) {
	if len(value) < min || len(value) > max {
		errs.Add(key, fmt.Sprintf("%s field must be at least %d and at most %d characters long", key, min, max))
	}
}
