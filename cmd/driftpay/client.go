package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	driftpay "github.com/driftpay/driftpay-go"
	"github.com/driftpay/driftpay-go/internal/config"
	"github.com/driftpay/driftpay-go/internal/logging"
)

// newClient loads and validates the configuration file and builds the API
// client. The access token can be overridden with DRIFTPAY_ACCESS_TOKEN so
// tokens don't have to live in the config file.
func newClient() (*driftpay.Client, error) {
	conf, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	if token := os.Getenv("DRIFTPAY_ACCESS_TOKEN"); token != "" {
		conf.API.AccessToken = token
	}

	logger := logging.NewLoggerWithSeverity(conf.Logging.Severity)
	if err := config.Validate(conf, logger.Error); err != nil {
		return nil, err
	}

	return driftpay.New(driftpay.Config{
		Endpoint:       conf.API.Endpoint,
		AccessToken:    conf.API.AccessToken,
		Version:        conf.API.Version,
		RequestTimeout: time.Duration(conf.API.RequestTimeoutSeconds) * time.Second,
		Logger:         logger,
	})
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
