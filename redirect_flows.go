package driftpay

import (
	"context"
	"net/http"
)

// RedirectFlow is the hosted payment-pages journey: create a flow, send the
// customer to its RedirectURL, then complete the flow when they return. On
// completion the API creates the customer, bank account and mandate and
// links them on the flow.
type RedirectFlow struct {
	ID                 string            `json:"id"`
	CreatedAt          string            `json:"created_at"`
	Description        string            `json:"description,omitempty"`
	Scheme             string            `json:"scheme,omitempty"`
	SessionToken       string            `json:"session_token,omitempty"`
	SuccessRedirectURL string            `json:"success_redirect_url,omitempty"`
	RedirectURL        string            `json:"redirect_url,omitempty"`
	ConfirmationURL    string            `json:"confirmation_url,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	Links              RedirectFlowLinks `json:"links"`
}

type RedirectFlowLinks struct {
	Creditor            string `json:"creditor,omitempty"`
	Customer            string `json:"customer,omitempty"`
	CustomerBankAccount string `json:"customer_bank_account,omitempty"`
	Mandate             string `json:"mandate,omitempty"`
}

// RedirectFlowPrefilledCustomer pre-populates the payment pages form.
type RedirectFlowPrefilledCustomer struct {
	Email        string `json:"email,omitempty"`
	GivenName    string `json:"given_name,omitempty"`
	FamilyName   string `json:"family_name,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	AddressLine3 string `json:"address_line3,omitempty"`
	City         string `json:"city,omitempty"`
	Region       string `json:"region,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
	Language     string `json:"language,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

type RedirectFlowCreateParams struct {
	Description string `json:"description,omitempty"`
	Scheme      string `json:"scheme,omitempty"`
	// SessionToken identifies the customer's session; the same token must
	// be presented on Complete.
	SessionToken       string                         `json:"session_token"`
	SuccessRedirectURL string                         `json:"success_redirect_url"`
	PrefilledCustomer  *RedirectFlowPrefilledCustomer `json:"prefilled_customer,omitempty"`
	Metadata           map[string]string              `json:"metadata,omitempty"`
	Links              RedirectFlowCreateLinks        `json:"links,omitempty"`
}

type RedirectFlowCreateLinks struct {
	Creditor string `json:"creditor,omitempty"`
}

type RedirectFlowsService interface {
	Create(ctx context.Context, params RedirectFlowCreateParams, opts ...RequestOption) (*RedirectFlow, error)
	Get(ctx context.Context, id string) (*RedirectFlow, error)

	// Complete finishes the flow after the customer returned to
	// SuccessRedirectURL. Completing twice fails with invalid_state.
	Complete(ctx context.Context, id string, sessionToken string, opts ...RequestOption) (*RedirectFlow, error)
}

type redirectFlowsService struct {
	client *Client
}

type redirectFlowEnvelope struct {
	errorEnvelope
	RedirectFlow *RedirectFlow `json:"redirect_flows"`
}

type redirectFlowCreateRequest struct {
	RedirectFlows RedirectFlowCreateParams `json:"redirect_flows"`
}

type redirectFlowCompleteRequest struct {
	Data redirectFlowCompleteData `json:"data"`
}

type redirectFlowCompleteData struct {
	SessionToken string `json:"session_token"`
}

func (s *redirectFlowsService) Create(ctx context.Context, params RedirectFlowCreateParams, opts ...RequestOption) (*RedirectFlow, error) {
	env := redirectFlowEnvelope{}
	err := s.client.post(ctx, s.client.url("/redirect_flows"), redirectFlowCreateRequest{RedirectFlows: params}, &env, opts...)
	if err != nil {
		if IsIdempotentCreationConflict(err) {
			if id := ConflictingResourceID(err); id != "" {
				return s.Get(ctx, id)
			}
		}
		return nil, err
	}
	return env.RedirectFlow, nil
}

func (s *redirectFlowsService) Get(ctx context.Context, id string) (*RedirectFlow, error) {
	env := redirectFlowEnvelope{}
	err := s.client.do(ctx, http.MethodGet, s.client.url("/redirect_flows/%s", id), nil, &env)
	if err != nil {
		return nil, err
	}
	return env.RedirectFlow, nil
}

func (s *redirectFlowsService) Complete(ctx context.Context, id string, sessionToken string, opts ...RequestOption) (*RedirectFlow, error) {
	env := redirectFlowEnvelope{}
	body := redirectFlowCompleteRequest{Data: redirectFlowCompleteData{SessionToken: sessionToken}}
	err := s.client.post(ctx, s.client.url("/redirect_flows/%s/actions/complete", id), body, &env, opts...)
	if err != nil {
		return nil, err
	}
	return env.RedirectFlow, nil
}
