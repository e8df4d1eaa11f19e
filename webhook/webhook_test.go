package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSecret = "ED7D658C-D8EB-4941-948B-3973214F2D49"

func sign(t *testing.T, body []byte, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestParseRequest(t *testing.T) {
	body := []byte(`{"events": [
		{"id": "EV1", "resource_type": "payments", "action": "confirmed", "links": {"payment": "PM123"}},
		{"id": "EV2", "resource_type": "mandates", "action": "cancelled", "details": {"origin": "bank", "cause": "mandate_cancelled"}}
	]}`)

	events, err := ParseRequest(body, sign(t, body, testSecret), testSecret)

	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "EV1", events[0].ID)
	require.Equal(t, "PM123", events[0].Links.Payment)
	require.Equal(t, "mandate_cancelled", events[1].Details.Cause)
}

func TestParseRequestRejectsBadSignature(t *testing.T) {
	body := []byte(`{"events": []}`)

	tests := []struct {
		name      string
		signature string
	}{
		{name: "Should reject an empty signature", signature: ""},
		{name: "Should reject a garbage signature", signature: "not-a-digest"},
		{name: "Should reject a signature for a different secret", signature: sign(t, body, "wrong-secret")},
		{name: "Should reject a signature for a different body", signature: sign(t, []byte(`{"events": [{}]}`), testSecret)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events, err := ParseRequest(body, tc.signature, testSecret)
			require.ErrorIs(t, err, ErrInvalidSignature)
			require.Nil(t, events)
		})
	}
}

func TestParseRequestRejectsTamperedBody(t *testing.T) {
	body := []byte(`{"events": [{"id": "EV1"}]}`)
	signature := sign(t, body, testSecret)

	tampered := []byte(`{"events": [{"id": "EV2"}]}`)
	events, err := ParseRequest(tampered, signature, testSecret)

	require.ErrorIs(t, err, ErrInvalidSignature)
	require.Nil(t, events)
}

func TestParseRequestInvalidJSON(t *testing.T) {
	body := []byte(`{"events": `)

	events, err := ParseRequest(body, sign(t, body, testSecret), testSecret)

	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidSignature)
	require.Nil(t, events)
}
