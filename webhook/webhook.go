// Package webhook parses and verifies Driftpay webhook deliveries.
//
// Webhook bodies are signed with HMAC-SHA256 over the raw payload, using the
// endpoint's secret; the hex digest arrives in the Webhook-Signature header.
// Always verify before acting on the events:
//
//	events, err := webhook.ParseRequest(body, r.Header.Get(webhook.SignatureHeader), secret)
//	if errors.Is(err, webhook.ErrInvalidSignature) {
//		w.WriteHeader(http.StatusForbidden)
//		return
//	}
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	driftpay "github.com/driftpay/driftpay-go"
)

// SignatureHeader carries the hex HMAC-SHA256 digest of the request body.
const SignatureHeader = "Webhook-Signature"

// ErrInvalidSignature means the body was not signed with the given secret.
// The payload must not be trusted.
var ErrInvalidSignature = errors.New("webhook signature does not match the payload")

type eventsEnvelope struct {
	Events []driftpay.Event `json:"events"`
}

// ParseRequest verifies the signature of a webhook body and returns the
// events it carries. The body must be the raw bytes as received; any
// re-serialization breaks the signature.
func ParseRequest(body []byte, signature string, secret string) ([]driftpay.Event, error) {
	if !validSignature(body, signature, secret) {
		return nil, ErrInvalidSignature
	}

	env := eventsEnvelope{}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse webhook body: %w", err)
	}
	return env.Events, nil
}

func validSignature(body []byte, signature string, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
