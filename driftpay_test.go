package driftpay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name        string
		conf        Config
		expectedErr string
	}{
		{
			name:        "Should reject missing access token",
			conf:        Config{},
			expectedErr: "access_token",
		},
		{
			name: "Should reject endpoint with trailing slash",
			conf: Config{
				Endpoint:    "https://api.example.com/",
				AccessToken: "live_token_1234",
			},
			expectedErr: "endpoint",
		},
		{
			name: "Should reject endpoint without scheme",
			conf: Config{
				Endpoint:    "api.example.com",
				AccessToken: "live_token_1234",
			},
			expectedErr: "endpoint",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, err := New(tc.conf)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.expectedErr)
			require.Nil(t, client)
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	client, err := New(Config{AccessToken: "live_token_1234"})
	require.NoError(t, err)
	require.Equal(t, LiveEndpoint, client.endpoint)
}

func TestNewWiresAllServices(t *testing.T) {
	client := newTestClient(t, &stubCaller{})

	require.NotNil(t, client.Customers)
	require.NotNil(t, client.CustomerBankAccounts)
	require.NotNil(t, client.Creditors)
	require.NotNil(t, client.Mandates)
	require.NotNil(t, client.Payments)
	require.NotNil(t, client.Refunds)
	require.NotNil(t, client.Payouts)
	require.NotNil(t, client.Subscriptions)
	require.NotNil(t, client.Events)
	require.NotNil(t, client.RedirectFlows)
	require.NotNil(t, client.BankDetailsLookups)
}

func TestURLEscapesPathParams(t *testing.T) {
	client := newTestClient(t, &stubCaller{})

	requestUrl := client.url("/customers/%s", "CU123/../x")
	require.Equal(t, testEndpoint+"/customers/CU123%2F..%2Fx", requestUrl)
}
